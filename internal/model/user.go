package model

import (
	"errors"
	"strings"
	"time"
)

// Role is the closed set of account roles. Using a named type instead of
// raw strings keeps role dispatch in the guards and ownership checks
// exhaustive; an unknown role never makes it past ParseRole.
type Role string

const (
	RoleStudent     Role = "student"
	RoleStoreKeeper Role = "storekeeper"
)

// ErrUnknownRole is returned by ParseRole for any value outside the closed set.
var ErrUnknownRole = errors.New(`role must be "student" or "storekeeper"`)

// ParseRole normalizes and validates a role value received on the wire.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleStoreKeeper:
		return RoleStoreKeeper, nil
	}
	return "", ErrUnknownRole
}

// User is an identity record as persisted in the store document. The JSON
// tags describe the on-disk layout, so this struct must never be written to
// an HTTP response directly; handlers build sanitized response objects that
// exclude the password hash and refresh token.
//
// RefreshToken holds the single live refresh token for the user. Writing a
// new value invalidates any prior one; logout clears it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	Role         Role      `json:"role"`
	StoreName    string    `json:"storeName,omitempty"`
	Location     string    `json:"location,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
