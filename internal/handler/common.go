// Package handler defines the HTTP handlers for the campus merchandise
// store: credential lifecycle, product management and order placement.
package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated user id placed in context by the
// JWTAuth middleware.
func currentUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("no user_id in context")
}
