// Package middleware contains reusable HTTP middleware: the bearer-token
// auth guard, the role guard, and the redis-backed rate limiter and
// response cache.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campusmerch/store/internal/model"
	"github.com/campusmerch/store/internal/utils"
)

const bearerPrefix = "Bearer "

// JWTAuth returns middleware that validates a bearer access token and
// attaches the decoded identity to the request context under "user_id" and
// "role". The scheme is matched case-sensitively against the literal
// "Bearer " prefix and only the first space-delimited token after it is
// treated as the credential. A missing header is reported as such; every
// verification failure is a single uniform 401 so callers cannot tell a
// forged token from an expired one.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, bearerPrefix) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access token missing"})
			}
			raw := strings.TrimPrefix(auth, bearerPrefix)
			if i := strings.IndexByte(raw, ' '); i >= 0 {
				raw = raw[:i]
			}
			claims, err := utils.VerifyToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}
			role, err := model.ParseRole(claims.Role)
			if err != nil {
				// Tokens we issued always carry a known role; anything
				// else fails verification like any other bad token.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}
			c.Set("user_id", claims.UserID)
			c.Set("role", role)
			return next(c)
		}
	}
}
