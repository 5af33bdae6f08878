package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/pkg/actions"
	"github.com/Ramsey-B/clover/pkg/repositories"
)

// forecastListLimit caps the forecast rows returned to the manager view.
const forecastListLimit = 200

// ForecastHandler serves the delivery forecast view and its form actions.
type ForecastHandler struct {
	service  *actions.Service
	forecast repositories.ForecastRepo
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(service *actions.Service, forecast repositories.ForecastRepo) *ForecastHandler {
	return &ForecastHandler{
		service:  service,
		forecast: forecast,
	}
}

// RegisterRoutes registers the forecast routes
func (h *ForecastHandler) RegisterRoutes(g *echo.Group) {
	forecast := g.Group("/forecast")
	forecast.GET("", h.List)
	forecast.POST("", h.Add)
	forecast.PUT("/:id", h.Update)
	forecast.DELETE("/:id", h.Delete)
}

// List handles GET /forecast
func (h *ForecastHandler) List(c echo.Context) error {
	rows, err := h.forecast.List(c.Request().Context(), forecastListLimit)
	if err != nil {
		return err
	}

	return SuccessResponse(c, rows)
}

// Add handles POST /forecast
func (h *ForecastHandler) Add(c echo.Context) error {
	fields, err := FormFields(c)
	if err != nil {
		return err
	}

	result := h.service.AddForecastItem(c.Request().Context(), fields)
	return SuccessResponse(c, result)
}

// Update handles PUT /forecast/:id
func (h *ForecastHandler) Update(c echo.Context) error {
	fields, err := FormFields(c)
	if err != nil {
		return err
	}

	result := h.service.UpdateForecastItem(c.Request().Context(), c.Param("id"), fields)
	return SuccessResponse(c, result)
}

// Delete handles DELETE /forecast/:id
func (h *ForecastHandler) Delete(c echo.Context) error {
	result := h.service.DeleteForecastItem(c.Request().Context(), c.Param("id"))
	return SuccessResponse(c, result)
}
