package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo describes what can be read from a token without a key.
type TokenInfo struct {
	JWT       bool
	Subject   string
	ExpiresAt time.Time
	Expired   bool
}

// Inspect reads the claims of a JWT without verifying its signature. Opaque
// tokens yield a zero TokenInfo. The result is informational only; an
// expired token still counts as a session.
func Inspect(token string, now time.Time) TokenInfo {
	if token == "" {
		return TokenInfo{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}
	}

	info := TokenInfo{JWT: true}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
		info.Expired = !now.Before(exp.Time)
	}
	return info
}
