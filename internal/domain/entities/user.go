package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleInvestor UserRole = "investor"
	UserRoleCompany  UserRole = "company"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleInvestor, UserRoleCompany:
		return true
	}
	return false
}

// SelfRegistrable reports whether the role may be chosen at sign-up.
// Admins are provisioned out of band.
func (r UserRole) SelfRegistrable() bool {
	return r == UserRoleInvestor || r == UserRoleCompany
}

// User represents a user entity
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Phone         string    `json:"phone,omitempty"`
	Role          UserRole  `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	PhoneVerified bool      `json:"phoneVerified"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required"`
	FirstName   string   `json:"firstName" binding:"required,max=100"`
	LastName    string   `json:"lastName" binding:"required,max=100"`
	Phone       string   `json:"phone"`
	Role        UserRole `json:"role" binding:"required"`
	CompanyName string   `json:"companyName"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}
