package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rpk6432/train-station-api/internal/model"
	"github.com/rpk6432/train-station-api/internal/repository"
)

type journeyReq struct {
	Route         uint64    `json:"route"`
	Train         uint64    `json:"train"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Crew          []uint64  `json:"crew"`
}

func (r journeyReq) validate() string {
	if r.Route == 0 || r.Train == 0 {
		return "route and train are required"
	}
	if r.DepartureTime.IsZero() || r.ArrivalTime.IsZero() {
		return "departure_time and arrival_time are required"
	}
	if !r.ArrivalTime.After(r.DepartureTime) {
		return "arrival_time must be after departure_time"
	}
	return ""
}

// CreateJourney handles POST /v1/journeys (admin only).
func (h *CatalogHandler) CreateJourney(c echo.Context) error {
	var body journeyReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	j := &model.Journey{
		RouteID:       body.Route,
		TrainID:       body.Train,
		DepartureTime: body.DepartureTime.UTC(),
		ArrivalTime:   body.ArrivalTime.UTC(),
	}
	if err := h.Journeys.Create(c.Request().Context(), j, body.Crew); err != nil {
		switch err {
		case repository.ErrRouteNotFound:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "route does not exist"})
		case repository.ErrTrainNotFound:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "train does not exist"})
		case repository.ErrCrewNotFound:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "crew member does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create journey"})
	}
	detail, err := h.Journeys.GetByID(c.Request().Context(), j.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, detail)
}

// ListJourneys handles GET /v1/journeys with optional ?source=<id>,
// ?destination=<id> and ?date=YYYY-MM-DD filters.
func (h *CatalogHandler) ListJourneys(c echo.Context) error {
	var f repository.JourneyFilter
	if raw := strings.TrimSpace(c.QueryParam("source")); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid source filter"})
		}
		f.SourceID = n
	}
	if raw := strings.TrimSpace(c.QueryParam("destination")); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid destination filter"})
		}
		f.DestinationID = n
	}
	if raw := strings.TrimSpace(c.QueryParam("date")); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		}
		f.Date = &d
	}
	items, err := h.Journeys.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// GetJourney handles GET /v1/journeys/:id.
func (h *CatalogHandler) GetJourney(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	detail, err := h.Journeys.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrJourneyNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "journey not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdateJourney handles PUT/PATCH /v1/journeys/:id (admin only).
func (h *CatalogHandler) UpdateJourney(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body journeyReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	j := &model.Journey{
		ID:            id,
		RouteID:       body.Route,
		TrainID:       body.Train,
		DepartureTime: body.DepartureTime.UTC(),
		ArrivalTime:   body.ArrivalTime.UTC(),
	}
	if err := h.Journeys.Update(c.Request().Context(), j, body.Crew); err != nil {
		switch err {
		case repository.ErrJourneyNotFound:
			return c.JSON(http.StatusNotFound, map[string]string{"error": "journey not found"})
		case repository.ErrRouteNotFound:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "route does not exist"})
		case repository.ErrTrainNotFound:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "train does not exist"})
		case repository.ErrCrewNotFound:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "crew member does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	detail, err := h.Journeys.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, detail)
}
