package usecases

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/domain/repositories"
	"crowdfund.backend/pkg/crypto"
	"crowdfund.backend/pkg/jwt"
	"crowdfund.backend/pkg/logger"
	"crowdfund.backend/pkg/redis"
	"crowdfund.backend/pkg/verification"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionStore keeps token pairs behind opaque session ids. *redis.SessionStore satisfies it.
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

var (
	hashPassword      = crypto.HashPassword
	generateSessionID = crypto.GenerateSessionID
)

// AuthUsecase handles registration, login and token lifecycle
type AuthUsecase struct {
	uow          repositories.UnitOfWork
	userRepo     repositories.UserRepository
	investorRepo repositories.InvestorProfileRepository
	companyRepo  repositories.CompanyProfileRepository
	jwtService   *jwt.JWTService
	verifier     *verification.Service
	sessions     SessionStore
	sessionTTL   time.Duration
	notifier     Notifier
	metrics      MetricsRecorder
	appURL       string
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	investorRepo repositories.InvestorProfileRepository,
	companyRepo repositories.CompanyProfileRepository,
	jwtService *jwt.JWTService,
	verifier *verification.Service,
) *AuthUsecase {
	return &AuthUsecase{
		uow:          uow,
		userRepo:     userRepo,
		investorRepo: investorRepo,
		companyRepo:  companyRepo,
		jwtService:   jwtService,
		verifier:     verifier,
		notifier:     nopNotifier{},
		metrics:      nopMetrics{},
	}
}

// SetSessionStore enables session based login.
func (u *AuthUsecase) SetSessionStore(store SessionStore, ttl time.Duration) {
	u.sessions = store
	u.sessionTTL = ttl
}

func (u *AuthUsecase) SetNotifier(n Notifier) {
	if n != nil {
		u.notifier = n
	}
}

func (u *AuthUsecase) SetMetrics(m MetricsRecorder) {
	if m != nil {
		u.metrics = m
	}
}

// SetAppURL is the frontend base used to build verification links.
func (u *AuthUsecase) SetAppURL(appURL string) {
	u.appURL = strings.TrimRight(appURL, "/")
}

// Register creates the user and its role profile in one transaction and
// returns the email verification token.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var violations []violation
	if !input.Role.SelfRegistrable() {
		violations = append(violations, violation{domainerrors.CodeInvalidRole, "role", "role must be one of: investor, company"})
	}
	if problems := crypto.PasswordViolations(input.Password); len(problems) > 0 {
		violations = append(violations, violation{domainerrors.CodeWeakPassword, "password", "password " + strings.Join(problems, ", ")})
	}
	if len(violations) > 0 {
		return nil, "", validationFailed(violations)
	}

	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", errEmailExists()
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, "", domainerrors.InternalError(err)
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, "", domainerrors.InternalError(err)
	}

	user := &entities.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         input.Role,
		IsActive:     true,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		switch user.Role {
		case entities.UserRoleInvestor:
			return u.investorRepo.Create(txCtx, &entities.InvestorProfile{UserID: user.ID, KYCStatus: entities.KYCPending})
		case entities.UserRoleCompany:
			name := strings.TrimSpace(input.CompanyName)
			if name == "" {
				name = user.FullName()
			}
			return u.companyRepo.Create(txCtx, &entities.CompanyProfile{UserID: user.ID, CompanyName: name, KYCStatus: entities.KYCPending})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, "", errEmailExists()
		}
		return nil, "", domainerrors.InternalError(err)
	}

	token, err := u.verifier.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", domainerrors.InternalError(err)
	}

	u.metrics.RecordRegistration(string(user.Role))
	logger.Info(ctx, "User registered", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	publish(ctx, u.notifier, entities.DomainEvent{
		Type:      entities.EventUserRegistered,
		Recipient: user.Email,
		Subject:   "Confirm your email address",
		Message:   "Welcome " + user.FirstName + ", please confirm your email address: " + u.verificationLink(token),
		Data:      map[string]interface{}{"userId": user.ID.String(), "role": string(user.Role)},
	})
	return user, token, nil
}

// Login authenticates a user and returns tokens, or only a session id when requested
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, errInvalidCredentials()
		}
		return nil, domainerrors.InternalError(err)
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, errInvalidCredentials()
	}
	if err := CheckAccountUsable(user); err != nil {
		return nil, err
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	if input.UseSession && u.sessions != nil {
		sessionID, err := generateSessionID()
		if err != nil {
			return nil, domainerrors.InternalError(err)
		}
		data := &redis.SessionData{UserID: user.ID.String(), AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
		if err := u.sessions.CreateSession(ctx, sessionID, data, u.sessionTTL); err != nil {
			return nil, domainerrors.InternalError(err)
		}
		return &entities.AuthResponse{SessionID: sessionID, User: user}, nil
	}

	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// VerifyEmail marks the token's user as verified. Verifying twice is not an error.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, token string) (*entities.User, error) {
	claims, err := u.verifier.Verify(token)
	if err != nil {
		message := "invalid verification token"
		if errors.Is(err, verification.ErrExpiredToken) {
			message = "verification token has expired"
		}
		return nil, domainerrors.Validation(domainerrors.CodeInvalidVerificationToken, message)
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Validation(domainerrors.CodeInvalidVerificationToken, "invalid verification token")
		}
		return nil, domainerrors.InternalError(err)
	}
	if !strings.EqualFold(user.Email, claims.Email) {
		return nil, domainerrors.Validation(domainerrors.CodeInvalidVerificationToken, "verification token does not match this account")
	}
	if user.EmailVerified {
		return user, nil
	}

	if err := u.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	user.EmailVerified = true
	return user, nil
}

// RefreshToken issues a new pair from a refresh token for a still usable account
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, tokenError(err)
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("user no longer exists").WithCode(domainerrors.CodeUserNotFound)
		}
		return nil, domainerrors.InternalError(err)
	}
	if err := CheckAccountUsable(user); err != nil {
		return nil, err
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return pair, nil
}

// ResolveSession returns the access token stored under a session id.
func (u *AuthUsecase) ResolveSession(ctx context.Context, sessionID string) (string, error) {
	if u.sessions == nil {
		return "", domainerrors.Unauthorized("sessions are not enabled").WithCode(domainerrors.CodeInvalidToken)
	}
	data, err := u.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, redis.ErrSessionNotFound) {
			return "", domainerrors.Unauthorized("session expired or unknown").WithCode(domainerrors.CodeTokenExpired)
		}
		return "", domainerrors.InternalError(err)
	}
	return data.AccessToken, nil
}

// Logout drops the session. Token based clients simply discard their tokens.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if u.sessions == nil || sessionID == "" {
		return nil
	}
	if err := u.sessions.DeleteSession(ctx, sessionID); err != nil {
		return domainerrors.InternalError(err)
	}
	return nil
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found").WithCode(domainerrors.CodeUserNotFound)
		}
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

func (u *AuthUsecase) verificationLink(token string) string {
	return u.appURL + "/verify-email?token=" + url.QueryEscape(token)
}

// CheckAccountUsable rejects disabled and unverified accounts. Login, refresh
// and the auth middleware all apply it.
func CheckAccountUsable(user *entities.User) error {
	if !user.IsActive {
		return domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeAccountDisabled,
			"this account has been disabled", domainerrors.ErrAccountDisabled)
	}
	if !user.EmailVerified {
		return domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeEmailNotVerified,
			"please verify your email address before signing in", domainerrors.ErrEmailNotVerified)
	}
	return nil
}

func tokenError(err error) error {
	if errors.Is(err, jwt.ErrExpiredToken) {
		return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeTokenExpired, "token has expired", domainerrors.ErrTokenExpired)
	}
	return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidToken, "invalid token", domainerrors.ErrUnauthorized)
}

func errInvalidCredentials() error {
	return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials,
		"invalid email or password", domainerrors.ErrInvalidCredentials)
}

func errEmailExists() error {
	return domainerrors.Conflict("email already registered").WithCode(domainerrors.CodeEmailExists)
}
