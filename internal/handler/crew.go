package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rpk6432/train-station-api/internal/model"
	"github.com/rpk6432/train-station-api/internal/repository"
)

type crewReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type crewResp struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func crewToResp(cr *model.Crew) crewResp {
	return crewResp{ID: cr.ID, FirstName: cr.FirstName, LastName: cr.LastName, FullName: cr.FullName()}
}

// CreateCrew handles POST /v1/crews (admin only).
func (h *CatalogHandler) CreateCrew(c echo.Context) error {
	var body crewReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	first := strings.TrimSpace(body.FirstName)
	last := strings.TrimSpace(body.LastName)
	if first == "" || last == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "first_name and last_name are required"})
	}
	cr := &model.Crew{FirstName: first, LastName: last}
	if err := h.Crews.Create(c.Request().Context(), cr); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create crew member"})
	}
	return c.JSON(http.StatusCreated, crewToResp(cr))
}

// ListCrews handles GET /v1/crews.
func (h *CatalogHandler) ListCrews(c echo.Context) error {
	items, err := h.Crews.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	out := make([]crewResp, 0, len(items))
	for i := range items {
		out = append(out, crewToResp(&items[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": out})
}

// GetCrew handles GET /v1/crews/:id.
func (h *CatalogHandler) GetCrew(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	cr, err := h.Crews.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrCrewNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "crew member not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, crewToResp(cr))
}

// UpdateCrew handles PUT/PATCH /v1/crews/:id (admin only).
func (h *CatalogHandler) UpdateCrew(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body crewReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	first := strings.TrimSpace(body.FirstName)
	last := strings.TrimSpace(body.LastName)
	if first == "" || last == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "first_name and last_name are required"})
	}
	cr := &model.Crew{ID: id, FirstName: first, LastName: last}
	if err := h.Crews.Update(c.Request().Context(), cr); err != nil {
		if err == repository.ErrCrewNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "crew member not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, crewToResp(cr))
}
