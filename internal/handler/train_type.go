package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rpk6432/train-station-api/internal/model"
	"github.com/rpk6432/train-station-api/internal/repository"
)

type trainTypeResp struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CreateTrainType handles POST /v1/train-types (admin only).
func (h *CatalogHandler) CreateTrainType(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	tt := &model.TrainType{Name: name}
	if err := h.TrainTypes.Create(c.Request().Context(), tt); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, map[string]string{"error": "train type already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create train type"})
	}
	return c.JSON(http.StatusCreated, trainTypeResp{ID: tt.ID, Name: tt.Name})
}

// ListTrainTypes handles GET /v1/train-types.
func (h *CatalogHandler) ListTrainTypes(c echo.Context) error {
	items, err := h.TrainTypes.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	out := make([]trainTypeResp, 0, len(items))
	for _, tt := range items {
		out = append(out, trainTypeResp{ID: tt.ID, Name: tt.Name})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": out})
}

// GetTrainType handles GET /v1/train-types/:id.
func (h *CatalogHandler) GetTrainType(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	tt, err := h.TrainTypes.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrTrainTypeNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "train type not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, trainTypeResp{ID: tt.ID, Name: tt.Name})
}

// UpdateTrainType handles PUT/PATCH /v1/train-types/:id (admin only).
func (h *CatalogHandler) UpdateTrainType(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	tt := &model.TrainType{ID: id, Name: name}
	if err := h.TrainTypes.Update(c.Request().Context(), tt); err != nil {
		if err == repository.ErrTrainTypeNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "train type not found"})
		}
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, map[string]string{"error": "train type already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, trainTypeResp{ID: tt.ID, Name: tt.Name})
}
