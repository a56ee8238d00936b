package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/taxease-service/internal/domain"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, malformed payload or expiry. Callers must not surface which.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	registerTT time.Duration
}

// NewTokenManager builds a new manager. TTLs default to an hour when unset.
func NewTokenManager(secret string, accessTTL, registerTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if registerTTL <= 0 {
		registerTTL = accessTTL
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, registerTT: registerTTL}
}

// Claims describes the JWT payload for an authenticated user.
type Claims struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject id carried by the token.
func (c *Claims) UserID() string {
	return c.Subject
}

// GenerateAccessToken signs a login-session token for the user.
func (tm *TokenManager) GenerateAccessToken(user *domain.User) (string, time.Time, error) {
	return tm.generate(user, tm.accessTTL)
}

// GenerateRegisterToken signs the longer-lived token handed out at registration.
func (tm *TokenManager) GenerateRegisterToken(user *domain.User) (string, time.Time, error) {
	return tm.generate(user, tm.registerTT)
}

func (tm *TokenManager) generate(user *domain.User, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates a token and returns its claims. The signing algorithm
// is pinned to HS256; an alg header inside the token is never trusted.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
