package handler // handler defines the HTTP layer on top of the repositories

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rpk6432/train-station-api/internal/repository"
)

// CatalogHandler bundles the repositories for the admin-managed catalog
// resources: stations, routes, train types, trains, crews and journeys.
type CatalogHandler struct {
	Stations   *repository.StationRepo
	Routes     *repository.RouteRepo
	TrainTypes *repository.TrainTypeRepo
	Trains     *repository.TrainRepo
	Crews      *repository.CrewRepo
	Journeys   *repository.JourneyRepo
}

// NewCatalogHandler constructs a CatalogHandler and panics if any
// dependency is nil.
func NewCatalogHandler(st *repository.StationRepo, rt *repository.RouteRepo, tt *repository.TrainTypeRepo, tr *repository.TrainRepo, cr *repository.CrewRepo, jr *repository.JourneyRepo) *CatalogHandler {
	if st == nil || rt == nil || tt == nil || tr == nil || cr == nil || jr == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{
		Stations:   st,
		Routes:     rt,
		TrainTypes: tt,
		Trains:     tr,
		Crews:      cr,
		Journeys:   jr,
	}
}

// getUserID extracts the user_id stored in context by the JWT middleware
// and converts it to uint64.  The sub claim round-trips through JSON, so
// the value may arrive as a float64 or a decimal string.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
