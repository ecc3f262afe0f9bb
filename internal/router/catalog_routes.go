package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rpk6432/train-station-api/internal/handler"
	"github.com/rpk6432/train-station-api/internal/middleware"
)

// RegisterCatalog registers the catalog endpoints under /v1.  Reads are
// public and may be served from the response cache; writes require a
// valid JWT with the ADMIN role.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	pub := e.Group("/v1")
	if cache != nil {
		pub.Use(cache)
	}
	pub.GET("/stations", h.ListStations)
	pub.GET("/stations/:id", h.GetStation)
	pub.GET("/routes", h.ListRoutes)
	pub.GET("/routes/:id", h.GetRoute)
	pub.GET("/train-types", h.ListTrainTypes)
	pub.GET("/train-types/:id", h.GetTrainType)
	pub.GET("/trains", h.ListTrains)
	pub.GET("/trains/:id", h.GetTrain)
	pub.GET("/crews", h.ListCrews)
	pub.GET("/crews/:id", h.GetCrew)
	pub.GET("/journeys", h.ListJourneys)
	pub.GET("/journeys/:id", h.GetJourney)

	admin := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	admin.POST("/stations", h.CreateStation)
	admin.PUT("/stations/:id", h.UpdateStation)
	admin.PATCH("/stations/:id", h.UpdateStation)
	admin.POST("/routes", h.CreateRoute)
	admin.PUT("/routes/:id", h.UpdateRoute)
	admin.PATCH("/routes/:id", h.UpdateRoute)
	admin.POST("/train-types", h.CreateTrainType)
	admin.PUT("/train-types/:id", h.UpdateTrainType)
	admin.PATCH("/train-types/:id", h.UpdateTrainType)
	admin.POST("/trains", h.CreateTrain)
	admin.PUT("/trains/:id", h.UpdateTrain)
	admin.PATCH("/trains/:id", h.UpdateTrain)
	admin.POST("/crews", h.CreateCrew)
	admin.PUT("/crews/:id", h.UpdateCrew)
	admin.PATCH("/crews/:id", h.UpdateCrew)
	admin.POST("/journeys", h.CreateJourney)
	admin.PUT("/journeys/:id", h.UpdateJourney)
	admin.PATCH("/journeys/:id", h.UpdateJourney)
}
