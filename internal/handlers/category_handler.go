package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"footshop/internal/services"
)

// CategoryHandler handles HTTP requests for the read-only categories resource.
type CategoryHandler struct {
	service *services.CatalogService
	dev     bool
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CatalogService, dev bool) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		dev:     dev,
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleListCategories)
}

// HandleListCategories retrieves all categories ordered by identifier.
func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return serverError(c, h.dev, "Could not retrieve categories", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(categories),
		"data":    categories,
	})
}
