package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rpk6432/train-station-api/internal/model"
	"github.com/rpk6432/train-station-api/internal/repository"
)

type routeReq struct {
	Source      uint64 `json:"source"`
	Destination uint64 `json:"destination"`
	Distance    uint32 `json:"distance"`
}

func (r routeReq) validate() string {
	if r.Source == 0 || r.Destination == 0 {
		return "source and destination are required"
	}
	if r.Source == r.Destination {
		return "source and destination must differ"
	}
	if r.Distance == 0 {
		return "distance must be positive"
	}
	return ""
}

// CreateRoute handles POST /v1/routes (admin only).
func (h *CatalogHandler) CreateRoute(c echo.Context) error {
	var body routeReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	rt := &model.Route{SourceID: body.Source, DestinationID: body.Destination, Distance: body.Distance}
	if err := h.Routes.Create(c.Request().Context(), rt); err != nil {
		if err == repository.ErrStationNotFound {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "source or destination station does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create route"})
	}
	detail, err := h.Routes.GetByID(c.Request().Context(), rt.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, detail)
}

// ListRoutes handles GET /v1/routes.
func (h *CatalogHandler) ListRoutes(c echo.Context) error {
	items, err := h.Routes.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// GetRoute handles GET /v1/routes/:id.
func (h *CatalogHandler) GetRoute(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	detail, err := h.Routes.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrRouteNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "route not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdateRoute handles PUT/PATCH /v1/routes/:id (admin only).
func (h *CatalogHandler) UpdateRoute(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body routeReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	rt := &model.Route{ID: id, SourceID: body.Source, DestinationID: body.Destination, Distance: body.Distance}
	if err := h.Routes.Update(c.Request().Context(), rt); err != nil {
		if err == repository.ErrRouteNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "route not found"})
		}
		if err == repository.ErrStationNotFound {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "source or destination station does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	detail, err := h.Routes.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, detail)
}
