package handlers

import (
	"strconv"

	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/interfaces/http/middleware"
	"crowdfund.backend/internal/interfaces/http/response"
	"crowdfund.backend/internal/usecases"
	"crowdfund.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func paramID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, ok := utils.ParseUUID(c.Param(name))
	if !ok {
		response.Error(c, domainerrors.BadRequest("invalid "+label+" id"))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return false
	}
	return true
}

func actor(c *gin.Context) (*usecases.Actor, bool) {
	a := middleware.CurrentActor(c)
	if a == nil {
		response.Error(c, domainerrors.Unauthorized("authentication required").WithCode(domainerrors.CodeAuthRequired))
		return nil, false
	}
	return a, true
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}
