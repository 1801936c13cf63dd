// Package verification issues and checks signed email verification tokens.
// The token carries everything needed to verify, so nothing is stored server side.
package verification

import (
	"errors"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/google/uuid"
)

const (
	issuer  = "crowdfund-backend"
	purpose = "email_verification"
)

var (
	ErrInvalidToken = errors.New("invalid verification token")
	ErrExpiredToken = errors.New("verification token has expired")
)

type purposeClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

// Claims is the verified content of a token.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// Service signs HS256 tokens with a shared secret.
type Service struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a compact token binding userID to email until the TTL elapses.
func (s *Service) Issue(userID uuid.UUID, email string) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: s.key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", err
	}

	now := s.now()
	std := jwt.Claims{
		Issuer:    issuer,
		Subject:   userID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Expiry:    jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.Signed(signer).Claims(std).Claims(purposeClaims{Email: email, Purpose: purpose}).CompactSerialize()
}

// Verify checks signature, issuer, purpose and expiry.
func (s *Service) Verify(raw string) (*Claims, error) {
	tok, err := jwt.ParseSigned(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if len(tok.Headers) != 1 || tok.Headers[0].Algorithm != string(jose.HS256) {
		return nil, ErrInvalidToken
	}

	var std jwt.Claims
	var custom purposeClaims
	if err := tok.Claims(s.key, &std, &custom); err != nil {
		return nil, ErrInvalidToken
	}

	if err := std.ValidateWithLeeway(jwt.Expected{Issuer: issuer, Time: s.now()}, 0); err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if custom.Purpose != purpose || custom.Email == "" {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(std.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, Email: custom.Email, ExpiresAt: std.Expiry.Time()}, nil
}
