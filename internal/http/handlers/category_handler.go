package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fangji/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(cats)
}

// GET /api/stats
func (h *CategoryHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Catalog.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
