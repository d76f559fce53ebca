// Package router registers the HTTP routes and wires the guards onto them.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/campusmerch/store/internal/handler"
	"github.com/campusmerch/store/internal/middleware"
	"github.com/campusmerch/store/internal/model"
)

// RegisterRoutes registers routes that carry no authentication at all.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", handler.Health)
}

// RegisterUsers registers the credential lifecycle endpoints. None of them
// take a bearer token: signup/signin establish a session, refresh/logout
// authenticate by the refresh token in the body, and the profile lookup is
// deliberately open (see Profile).
func RegisterUsers(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/api/users")
	g.POST("/signup", a.Signup)
	g.POST("/signin", a.Signin)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	g.GET("/user/:id", a.Profile)
}

// RegisterProducts registers the catalog routes. Browsing is public and
// runs behind the response cache; mutations require a storekeeper bearer
// token, with ownership enforced inside the handlers.
func RegisterProducts(e *echo.Echo, p *handler.ProductHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	auth := middleware.JWTAuth(jwtSecret)
	keeper := middleware.RequireRole(model.RoleStoreKeeper)

	e.GET("/api/products", p.List, cache)
	e.GET("/api/products/:id", p.GetByID, cache)
	e.GET("/api/products/storekeeper/:storeKeeperId", p.ListByStoreKeeper, cache)
	e.POST("/api/products", p.Create, auth, keeper)
	e.PUT("/api/products/:id", p.Update, auth, keeper)
	e.DELETE("/api/products/:id", p.Delete, auth, keeper)
}

// RegisterOrders registers order placement (student bearer token required)
// and the open read endpoints.
func RegisterOrders(e *echo.Echo, o *handler.OrderHandler, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)
	student := middleware.RequireRole(model.RoleStudent)

	e.POST("/api/orders", o.Create, auth, student)
	e.GET("/api/orders", o.List)
	e.GET("/api/orders/:id", o.GetByID)
	e.GET("/api/orders/student/:studentId", o.ListByStudent)
	e.GET("/api/orders/storekeeper/:storeKeeperId", o.ListByStoreKeeper)
}
