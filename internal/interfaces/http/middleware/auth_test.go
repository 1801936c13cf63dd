package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authStub struct {
	users    map[uuid.UUID]*entities.User
	sessions map[string]string
	userErr  error
}

func (a *authStub) ResolveSession(_ context.Context, sessionID string) (string, error) {
	token, ok := a.sessions[sessionID]
	if !ok {
		return "", domainerrors.Unauthorized("session expired or unknown").WithCode(domainerrors.CodeTokenExpired)
	}
	return token, nil
}

func (a *authStub) GetUserByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	if a.userErr != nil {
		return nil, a.userErr
	}
	user, ok := a.users[id]
	if !ok {
		return nil, domainerrors.NotFound("user not found").WithCode(domainerrors.CodeUserNotFound)
	}
	return user, nil
}

func activeUser(role entities.UserRole) *entities.User {
	return &entities.User{
		ID:            uuid.New(),
		Email:         string(role) + "@example.com",
		Role:          role,
		EmailVerified: true,
		IsActive:      true,
	}
}

type authHarness struct {
	jwt    *jwt.JWTService
	auth   *authStub
	router *gin.Engine
}

func newAuthHarness(t *testing.T) *authHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := &authHarness{
		jwt:  jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour),
		auth: &authStub{users: map[uuid.UUID]*entities.User{}, sessions: map[string]string{}},
	}
	r := gin.New()
	me := func(c *gin.Context) {
		actor := CurrentActor(c)
		if actor == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		email, _ := GetUserEmail(c)
		c.JSON(http.StatusOK, gin.H{"id": actor.UserID.String(), "role": string(actor.Role), "email": email})
	}
	r.GET("/me", AuthMiddleware(h.jwt, h.auth), me)
	r.GET("/public", OptionalAuth(h.jwt, h.auth), me)
	r.GET("/company", AuthMiddleware(h.jwt, h.auth), RequireRole(entities.UserRoleCompany), me)
	r.GET("/admin", AuthMiddleware(h.jwt, h.auth), RequireAdmin(), me)
	r.GET("/unauth-admin", RequireAdmin(), me)
	r.GET("/unauth-role", RequireRole(entities.UserRoleInvestor), me)
	h.router = r
	return h
}

func (h *authHarness) add(user *entities.User) string {
	h.auth.users[user.ID] = user
	pair, err := h.jwt.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		panic(err)
	}
	return pair.AccessToken
}

func (h *authHarness) do(t *testing.T, path string, headers map[string]string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func bearer(token string) map[string]string {
	return map[string]string{AuthorizationHeader: BearerPrefix + token}
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	h := newAuthHarness(t)

	code, body := h.do(t, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, domainerrors.CodeNoToken, body["code"])
}

func TestAuthMiddleware_BadFormatAndInvalidToken(t *testing.T) {
	h := newAuthHarness(t)

	code, body := h.do(t, "/me", map[string]string{AuthorizationHeader: "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, domainerrors.CodeInvalidToken, body["code"])

	code, body = h.do(t, "/me", bearer("not-a-jwt"))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, domainerrors.CodeInvalidToken, body["code"])
}

func TestAuthMiddleware_RefreshTokenIsNotAccepted(t *testing.T) {
	h := newAuthHarness(t)
	user := activeUser(entities.UserRoleInvestor)
	h.auth.users[user.ID] = user
	pair, err := h.jwt.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	code, body := h.do(t, "/me", bearer(pair.RefreshToken))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, domainerrors.CodeInvalidToken, body["code"])
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	h := newAuthHarness(t)
	user := activeUser(entities.UserRoleInvestor)
	h.auth.users[user.ID] = user
	expired := jwt.NewJWTService("test-secret", -time.Minute, time.Hour)
	pair, err := expired.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	code, body := h.do(t, "/me", bearer(pair.AccessToken))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, domainerrors.CodeTokenExpired, body["code"])
}

func TestAuthMiddleware_Success(t *testing.T) {
	h := newAuthHarness(t)
	user := activeUser(entities.UserRoleCompany)
	token := h.add(user)

	code, body := h.do(t, "/me", bearer(token))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, user.ID.String(), body["id"])
	assert.Equal(t, "company", body["role"])
	assert.Equal(t, user.Email, body["email"])
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	h := newAuthHarness(t)
	user := activeUser(entities.UserRoleInvestor)
	token := h.add(user)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_Session(t *testing.T) {
	h := newAuthHarness(t)
	user := activeUser(entities.UserRoleInvestor)
	h.auth.sessions["sess-1"] = h.add(user)

	code, body := h.do(t, "/me", map[string]string{SessionHeader: "sess-1"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, user.ID.String(), body["id"])

	code, body = h.do(t, "/me", map[string]string{SessionHeader: "gone"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, domainerrors.CodeTokenExpired, body["code"])
}

func TestAuthMiddleware_ReloadsUser(t *testing.T) {
	h := newAuthHarness(t)

	disabled := activeUser(entities.UserRoleInvestor)
	disabled.IsActive = false
	code, body := h.do(t, "/me", bearer(h.add(disabled)))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, domainerrors.CodeAccountDisabled, body["code"])

	unverified := activeUser(entities.UserRoleInvestor)
	unverified.EmailVerified = false
	code, body = h.do(t, "/me", bearer(h.add(unverified)))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, domainerrors.CodeEmailNotVerified, body["code"])

	deleted := activeUser(entities.UserRoleInvestor)
	token := h.add(deleted)
	delete(h.auth.users, deleted.ID)
	code, body = h.do(t, "/me", bearer(token))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, domainerrors.CodeUserNotFound, body["code"])
}

func TestOptionalAuth(t *testing.T) {
	h := newAuthHarness(t)

	_, body := h.do(t, "/public", nil)
	assert.Equal(t, true, body["anonymous"])

	_, body = h.do(t, "/public", bearer("garbage"))
	assert.Equal(t, true, body["anonymous"])

	admin := activeUser(entities.UserRoleAdmin)
	_, body = h.do(t, "/public", bearer(h.add(admin)))
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole(t *testing.T) {
	h := newAuthHarness(t)

	code, body := h.do(t, "/company", bearer(h.add(activeUser(entities.UserRoleInvestor))))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, domainerrors.CodeInsufficientPermissions, body["code"])
	assert.Equal(t, []interface{}{"company"}, body["requiredRoles"])

	code, _ = h.do(t, "/company", bearer(h.add(activeUser(entities.UserRoleCompany))))
	assert.Equal(t, http.StatusOK, code)

	code, body = h.do(t, "/unauth-role", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, domainerrors.CodeAuthRequired, body["code"])
}

func TestRequireAdmin(t *testing.T) {
	h := newAuthHarness(t)

	code, body := h.do(t, "/admin", bearer(h.add(activeUser(entities.UserRoleCompany))))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, domainerrors.CodeAdminRequired, body["code"])

	code, _ = h.do(t, "/admin", bearer(h.add(activeUser(entities.UserRoleAdmin))))
	assert.Equal(t, http.StatusOK, code)

	code, body = h.do(t, "/unauth-admin", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, domainerrors.CodeAuthRequired, body["code"])
}

func TestContextGettersWithoutValues(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)
	_, ok = GetUserEmail(c)
	assert.False(t, ok)
	_, ok = GetUserRole(c)
	assert.False(t, ok)
	assert.Nil(t, CurrentActor(c))
}
