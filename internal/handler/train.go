package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rpk6432/train-station-api/internal/model"
	"github.com/rpk6432/train-station-api/internal/repository"
)

type trainReq struct {
	Name          string `json:"name"`
	CargoNum      uint32 `json:"cargo_num"`
	PlacesInCargo uint32 `json:"places_in_cargo"`
	TrainType     uint64 `json:"train_type"`
}

func (r trainReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if r.CargoNum == 0 || r.PlacesInCargo == 0 {
		return "cargo_num and places_in_cargo must be positive"
	}
	if r.TrainType == 0 {
		return "train_type is required"
	}
	return ""
}

// CreateTrain handles POST /v1/trains (admin only).
func (h *CatalogHandler) CreateTrain(c echo.Context) error {
	var body trainReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	t := &model.Train{
		Name:          strings.TrimSpace(body.Name),
		CargoNum:      body.CargoNum,
		PlacesInCargo: body.PlacesInCargo,
		TrainTypeID:   body.TrainType,
	}
	if err := h.Trains.Create(c.Request().Context(), t); err != nil {
		if err == repository.ErrTrainTypeNotFound {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "train type does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create train"})
	}
	detail, err := h.Trains.GetByID(c.Request().Context(), t.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, detail)
}

// ListTrains handles GET /v1/trains with an optional ?type=<id> filter.
func (h *CatalogHandler) ListTrains(c echo.Context) error {
	var typeID uint64
	if raw := strings.TrimSpace(c.QueryParam("type")); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid type filter"})
		}
		typeID = n
	}
	items, err := h.Trains.List(c.Request().Context(), typeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// GetTrain handles GET /v1/trains/:id.
func (h *CatalogHandler) GetTrain(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	detail, err := h.Trains.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrTrainNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdateTrain handles PUT/PATCH /v1/trains/:id (admin only).  Shrinking
// the seat grid does not touch already sold tickets; it only narrows the
// bounds applied to future bookings.
func (h *CatalogHandler) UpdateTrain(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body trainReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	t := &model.Train{
		ID:            id,
		Name:          strings.TrimSpace(body.Name),
		CargoNum:      body.CargoNum,
		PlacesInCargo: body.PlacesInCargo,
		TrainTypeID:   body.TrainType,
	}
	if err := h.Trains.Update(c.Request().Context(), t); err != nil {
		if err == repository.ErrTrainNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "train not found"})
		}
		if err == repository.ErrTrainTypeNotFound {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "train type does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	detail, err := h.Trains.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, detail)
}
