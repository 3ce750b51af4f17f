package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for malformed, mis-signed or expired tokens
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims are the claims carried by an api auth token
type TokenClaims struct {
	UserID    int
	Role      string
	ExpiresAt time.Time
}

// TokenService issues and verifies the HS256 tokens used by the api and the
// admin ajax relay. The signing secret is shared between the two apps so the
// relay can re-issue an expired token without a round trip to /auth.
type TokenService interface {
	Issue(userID int, role string) (string, error)
	Verify(token string) (*TokenClaims, error)
	// Refresh returns a fresh token carrying the same claims. The input must
	// be correctly signed but may be expired.
	Refresh(token string) (string, error)
	TTL() time.Duration
}

// tokenService implements TokenService interface
type tokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(secret string, ttl time.Duration) TokenService {
	return &tokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a new token for the given user
func (s *tokenService) Issue(userID int, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// Verify checks signature and expiry and returns the token claims
func (s *tokenService) Verify(token string) (*TokenClaims, error) {
	return s.parse(token, true)
}

// Refresh re-signs the claims of a valid-but-possibly-expired token
func (s *tokenService) Refresh(token string) (string, error) {
	claims, err := s.parse(token, false)
	if err != nil {
		return "", err
	}

	return s.Issue(claims.UserID, claims.Role)
}

// TTL returns the configured token lifetime
func (s *tokenService) TTL() time.Duration {
	return s.ttl
}

// parse verifies the signature and optionally the registered claims
func (s *tokenService) parse(token string, validateClaims bool) (*TokenClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if !validateClaims {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	tc := &TokenClaims{UserID: int(id), Role: role}
	if exp, ok := claims["exp"].(float64); ok {
		tc.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return tc, nil
}
