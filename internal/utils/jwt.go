// Package utils provides helpers for password hashing and token issuance.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure value for token verification.
// Malformed, forged and expired tokens are indistinguishable to callers so
// that the API cannot be used as an oracle for which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// AccessToken is a signed short-lived assertion of identity and role. It is
// never persisted; possession plus a valid signature is sufficient, which
// also means it cannot be revoked before expiry.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// RefreshToken is a signed long-lived assertion of identity. Unlike access
// tokens it is persisted against the user record, and is only honored while
// it matches that stored value.
type RefreshToken struct {
	Token string
	Exp   time.Time
}

// TokenClaims is the decoded payload of a verified token. Role is empty for
// refresh tokens, which assert identity only.
type TokenClaims struct {
	UserID string
	Role   string
}

// NewAccessToken signs an HS256 JWT carrying the user id and role, expiring
// ttlMin minutes from now.
func NewAccessToken(secret, userID, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken signs an HS256 JWT carrying only the user id, expiring
// ttlDays days from now.
func NewRefreshToken(secret, userID string, ttlDays int) (RefreshToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{Token: signed, Exp: exp}, nil
}

// VerifyToken checks signature integrity and expiry and returns the decoded
// claims. Every failure mode collapses to ErrInvalidToken.
func VerifyToken(secret, raw string) (TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return TokenClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return TokenClaims{}, ErrInvalidToken
	}
	out := TokenClaims{UserID: sub}
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	}
	return out, nil
}
