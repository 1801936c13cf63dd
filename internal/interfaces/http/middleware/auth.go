package middleware

import (
	"context"
	"errors"
	"strings"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/interfaces/http/response"
	"crowdfund.backend/internal/usecases"
	"crowdfund.backend/pkg/jwt"
	"crowdfund.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionHeader carries a server side session id instead of a bearer token
	SessionHeader = "X-Session-Id"
	// TokenCookie is set by the login handler for browser clients
	TokenCookie = "token"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
)

// Authenticator resolves sessions and reloads the caller on every request.
type Authenticator interface {
	ResolveSession(ctx context.Context, sessionID string) (string, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

var errNoToken = domainerrors.Unauthorized("authentication required").WithCode(domainerrors.CodeNoToken)

// AuthMiddleware creates a new authentication middleware
func AuthMiddleware(jwtService *jwt.JWTService, auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, jwtService, auth)
		if err != nil {
			logger.Info(c.Request.Context(), "Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			response.Error(c, err)
			return
		}
		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth identifies the caller when credentials are usable and
// otherwise lets the request through anonymously.
func OptionalAuth(jwtService *jwt.JWTService, auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := authenticate(c, jwtService, auth); err == nil {
			setUser(c, user)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, jwtService *jwt.JWTService, auth Authenticator) (*entities.User, error) {
	ctx := c.Request.Context()

	tokenString := ""
	if sessionID := c.GetHeader(SessionHeader); sessionID != "" {
		token, err := auth.ResolveSession(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		tokenString = token
	} else if header := c.GetHeader(AuthorizationHeader); header != "" {
		if !strings.HasPrefix(header, BearerPrefix) {
			return nil, domainerrors.Unauthorized("invalid authorization format, use: Bearer <token>").
				WithCode(domainerrors.CodeInvalidToken)
		}
		tokenString = strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	} else if cookie, err := c.Cookie(TokenCookie); err == nil {
		tokenString = cookie
	}
	if tokenString == "" {
		return nil, errNoToken
	}

	claims, err := jwtService.ValidateAccessToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.Unauthorized("token has expired").WithCode(domainerrors.CodeTokenExpired)
		}
		return nil, domainerrors.Unauthorized("invalid token").WithCode(domainerrors.CodeInvalidToken)
	}

	user, err := auth.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if appErr, ok := domainerrors.AsAppError(err); ok && appErr.Code == domainerrors.CodeUserNotFound {
			return nil, domainerrors.Unauthorized("user no longer exists").WithCode(domainerrors.CodeUserNotFound)
		}
		return nil, err
	}
	if err := usecases.CheckAccountUsable(user); err != nil {
		return nil, err
	}
	return user, nil
}

func setUser(c *gin.Context, user *entities.User) {
	c.Set(UserIDKey, user.ID)
	c.Set(UserEmailKey, user.Email)
	c.Set(UserRoleKey, string(user.Role))
	ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, user.ID.String())
	c.Request = c.Request.WithContext(ctx)
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmail gets the user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	s, ok := role.(string)
	return s, ok
}

// CurrentActor returns the authenticated caller, or nil for anonymous requests.
func CurrentActor(c *gin.Context) *usecases.Actor {
	id, ok := GetUserID(c)
	if !ok {
		return nil
	}
	role, _ := GetUserRole(c)
	return &usecases.Actor{UserID: id, Role: entities.UserRole(role)}
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			response.Error(c, domainerrors.Unauthorized("authentication required").WithCode(domainerrors.CodeAuthRequired))
			return
		}

		for _, role := range roles {
			if userRole == string(role) {
				c.Next()
				return
			}
		}

		allowed := make([]string, len(roles))
		for i, r := range roles {
			allowed[i] = string(r)
		}
		response.Error(c, domainerrors.Forbidden("insufficient permissions").
			WithCode(domainerrors.CodeInsufficientPermissions).
			WithDetail("requiredRoles", allowed))
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			response.Error(c, domainerrors.Unauthorized("authentication required").WithCode(domainerrors.CodeAuthRequired))
			return
		}
		if userRole != string(entities.UserRoleAdmin) {
			response.Error(c, domainerrors.Forbidden("admin access required").WithCode(domainerrors.CodeAdminRequired))
			return
		}
		c.Next()
	}
}
