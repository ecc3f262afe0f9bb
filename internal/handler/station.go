package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rpk6432/train-station-api/internal/model"
	"github.com/rpk6432/train-station-api/internal/repository"
)

type stationReq struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type stationResp struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func stationToResp(s *model.Station) stationResp {
	return stationResp{ID: s.ID, Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude}
}

// CreateStation handles POST /v1/stations (admin only).
func (h *CatalogHandler) CreateStation(c echo.Context) error {
	var body stationReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	s := &model.Station{Name: name, Latitude: body.Latitude, Longitude: body.Longitude}
	if err := h.Stations.Create(c.Request().Context(), s); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, map[string]string{"error": "station name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create station"})
	}
	return c.JSON(http.StatusCreated, stationToResp(s))
}

// ListStations handles GET /v1/stations.
func (h *CatalogHandler) ListStations(c echo.Context) error {
	items, err := h.Stations.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	out := make([]stationResp, 0, len(items))
	for i := range items {
		out = append(out, stationToResp(&items[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": out})
}

// GetStation handles GET /v1/stations/:id.
func (h *CatalogHandler) GetStation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	s, err := h.Stations.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrStationNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "station not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, stationToResp(s))
}

// UpdateStation handles PUT/PATCH /v1/stations/:id (admin only).
func (h *CatalogHandler) UpdateStation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body stationReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	s := &model.Station{ID: id, Name: name, Latitude: body.Latitude, Longitude: body.Longitude}
	if err := h.Stations.Update(c.Request().Context(), s); err != nil {
		if err == repository.ErrStationNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "station not found"})
		}
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, map[string]string{"error": "station name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, stationToResp(s))
}
