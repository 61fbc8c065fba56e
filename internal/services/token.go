package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionDuration is how long issued tokens (and the cookie carrying them)
// stay valid. Expiry is the only invalidation mechanism.
const SessionDuration = 24 * time.Hour

// ErrInvalidToken is returned for expired, tampered or malformed session tokens.
var ErrInvalidToken = errors.New("invalid session token")

// sessionClaims carries the authenticated user's ID alongside the
// registered claims. The JSON field name matches what the frontend's
// existing tokens used.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenService issues and verifies stateless session tokens (HS256 JWTs).
// The signing secret and validity window are injected so key rotation and
// tests don't depend on process globals. There is no server-side session
// table: expiry is the only invalidation mechanism.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue signs a token binding userID, valid for the service's TTL from now.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(s.secret)
}

// Verify checks the token's signature and expiry and returns the bound
// user ID. Any failure maps to ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
