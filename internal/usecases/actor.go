package usecases

import (
	"crowdfund.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID uuid.UUID
	Role   entities.UserRole
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == entities.UserRoleAdmin
}
