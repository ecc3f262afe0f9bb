package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rpk6432/train-station-api/internal/handler"
	"github.com/rpk6432/train-station-api/internal/middleware"
)

// RegisterOrders registers order endpoints under /v1.  All routes
// require a valid JWT; both CUSTOMER and ADMIN may book, and each user
// sees only their own orders.  The rate limiter, when provided, guards
// order creation only.
func RegisterOrders(e *echo.Echo, h *handler.OrderHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "ADMIN"),
	)
	if limiter != nil {
		g.POST("/orders", h.Create, limiter)
	} else {
		g.POST("/orders", h.Create)
	}
	g.GET("/orders", h.List)
	g.GET("/orders/:id", h.Get)
}
