package response

import (
	"crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var debug bool

// SetDebug exposes wrapped error text in 5xx bodies. Development only.
func SetDebug(enabled bool) {
	debug = enabled
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Anything that is not an AppError is a 500.
func Error(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.InternalError(err)
	}

	body := gin.H{}
	for k, v := range appErr.Details {
		body[k] = v
	}
	body["code"] = appErr.Code
	body["message"] = appErr.Message
	body["error"] = appErr.Message

	if appErr.Status >= 500 {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
		if debug && err != nil {
			body["debug"] = err.Error()
		}
	}

	c.AbortWithStatusJSON(appErr.Status, body)
}

// ErrorWithError sends an error response with a specific status and code
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    code,
		"message": message,
		"error":   message,
	})
}
