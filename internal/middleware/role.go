package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusmerch/store/internal/model"
)

// RequireRole returns middleware enforcing that the authenticated identity
// holds one of the given roles. No identity in context means the request
// never passed JWTAuth and is rejected 401; a known identity with the wrong
// role is rejected 403. The two cases stay distinct: 401 is "we don't know
// who you are", 403 is "you may not do this".
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("role")
			if v == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			role, ok := v.(model.Role)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			if !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
