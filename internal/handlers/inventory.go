package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/pkg/actions"
	"github.com/Ramsey-B/clover/pkg/repositories"
)

// InventoryHandler serves the inventory manager view and its form actions.
type InventoryHandler struct {
	service   *actions.Service
	inventory repositories.InventoryRepo
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service *actions.Service, inventory repositories.InventoryRepo) *InventoryHandler {
	return &InventoryHandler{
		service:   service,
		inventory: inventory,
	}
}

// RegisterRoutes registers the inventory routes
func (h *InventoryHandler) RegisterRoutes(g *echo.Group) {
	inventory := g.Group("/inventory")
	inventory.GET("", h.List)
	inventory.POST("", h.Add)
	inventory.PUT("/:id", h.Update)
	inventory.DELETE("/:id", h.Delete)
	inventory.POST("/:id/sell", h.Sell)
}

// List handles GET /inventory
func (h *InventoryHandler) List(c echo.Context) error {
	items, err := h.inventory.List(c.Request().Context())
	if err != nil {
		return err
	}

	return SuccessResponse(c, items)
}

// Add handles POST /inventory
func (h *InventoryHandler) Add(c echo.Context) error {
	fields, err := FormFields(c)
	if err != nil {
		return err
	}

	result := h.service.AddInventoryItem(c.Request().Context(), fields)
	return SuccessResponse(c, result)
}

// Update handles PUT /inventory/:id
func (h *InventoryHandler) Update(c echo.Context) error {
	fields, err := FormFields(c)
	if err != nil {
		return err
	}

	result := h.service.UpdateInventoryItem(c.Request().Context(), c.Param("id"), fields)
	return SuccessResponse(c, result)
}

// Delete handles DELETE /inventory/:id
func (h *InventoryHandler) Delete(c echo.Context) error {
	result := h.service.DeleteInventoryItem(c.Request().Context(), c.Param("id"))
	return SuccessResponse(c, result)
}

// Sell handles POST /inventory/:id/sell
func (h *InventoryHandler) Sell(c echo.Context) error {
	fields, err := FormFields(c)
	if err != nil {
		return err
	}

	result := h.service.SellInventoryItem(c.Request().Context(), c.Param("id"), fields.Get("amount"))
	return SuccessResponse(c, result)
}
