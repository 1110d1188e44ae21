package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"footshop/internal/models"
	"footshop/internal/repositories"
	"footshop/internal/services"
)

// ProductHandler handles HTTP requests for the products resource.
type ProductHandler struct {
	service *services.CatalogService
	dev     bool
}

// NewProductHandler creates a new ProductHandler. dev controls whether raw
// error detail is included in 500 responses.
func NewProductHandler(service *services.CatalogService, dev bool) *ProductHandler {
	return &ProductHandler{
		service: service,
		dev:     dev,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts retrieves products, optionally filtered by exact
// category and/or a substring search over name and category.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return serverError(c, h.dev, "Could not retrieve products", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(products),
		"data":    products,
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "Product not found")
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, "Product not found")
		}
		log.Printf("Error getting product %d: %v", id, err)
		return serverError(c, h.dev, "Could not retrieve product", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleCreateProduct inserts a new product. Name, price, image and category
// are required; the new identifier is returned with a 201.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing create request body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	// IDs and timestamps are server-assigned.
	product.ID = 0
	product.CreatedAt = time.Time{}

	if err := h.service.CreateProduct(&product); err != nil {
		if errors.Is(err, services.ErrValidation) {
			// Covers both missing required fields and out-of-range values
			// such as a negative stock.
			return badRequest(c, "Product validation failed")
		}
		log.Printf("Error creating product: %v", err)
		return serverError(c, h.dev, "Could not create product", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"id":      product.ID,
	})
}

// HandleUpdateProduct replaces every mutable field of an existing product.
// A partial body nulls the omitted columns; see CatalogService.UpdateProduct.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "Product not found")
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing update request body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	product.ID = id

	if err := h.service.UpdateProduct(&product); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, "Product not found")
		}
		log.Printf("Error updating product %d: %v", id, err)
		return serverError(c, h.dev, "Could not update product", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
	})
}

// HandleDeleteProduct removes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "Product not found")
	}

	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, "Product not found")
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return serverError(c, h.dev, "Could not delete product", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// parseID reads the :id path parameter. A non-numeric id matches no row, so
// callers treat it as not found.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
