package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/realty-service/internal/domain"
)

// TokenPurpose differentiates session tokens from password-reset tokens so
// one can never be presented where the other is expected.
type TokenPurpose string

const (
	PurposeSession TokenPurpose = "SESSION"
	PurposeReset   TokenPurpose = "RESET"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

// NewTokenManager builds a new manager. TTLs fall back to sane defaults so
// tokens always expire.
func NewTokenManager(secret string, sessionTTLMinutes, resetTTLMinutes int) *TokenManager {
	if sessionTTLMinutes <= 0 {
		sessionTTLMinutes = 60
	}
	if resetTTLMinutes <= 0 {
		resetTTLMinutes = 60
	}
	return &TokenManager{
		secret:     []byte(secret),
		sessionTTL: time.Duration(sessionTTLMinutes) * time.Minute,
		resetTTL:   time.Duration(resetTTLMinutes) * time.Minute,
	}
}

// Claims describes JWT payload.
type Claims struct {
	Email   string       `json:"email,omitempty"`
	Name    string       `json:"name,omitempty"`
	Purpose TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject of the claims.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// GenerateSessionToken builds and signs a session JWT for the user.
func (tm *TokenManager) GenerateSessionToken(user *domain.User) (string, time.Time, error) {
	return tm.sign(&Claims{
		Email:   user.Email,
		Name:    user.Name,
		Purpose: PurposeSession,
	}, user.ID, tm.sessionTTL)
}

// GenerateResetToken builds and signs a short-lived password-reset JWT.
func (tm *TokenManager) GenerateResetToken(userID int64) (string, time.Time, error) {
	return tm.sign(&Claims{Purpose: PurposeReset}, userID, tm.resetTTL)
}

func (tm *TokenManager) sign(claims *Claims, userID int64, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates signature and expiry and returns the claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
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
