// Package router maps HTTP routes onto handlers and their middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rpk6432/train-station-api/internal/handler"
	"github.com/rpk6432/train-station-api/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication endpoints.  Unauthenticated
// operations live under /v1/auth; the profile endpoints under /v1
// require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.POST("/auth/logout", a.Logout)
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateMe)
	auth.PATCH("/me", a.UpdateMe)
}
