package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"fireguard/internal/common"
	"fireguard/internal/services"
)

// ProductHandler handles the public catalog endpoints.
type ProductHandler struct {
	service    *services.ProductService
	production bool
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, production bool) *ProductHandler {
	return &ProductHandler{service: service, production: production}
}

// RegisterRoutes registers the public product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Get("/:id", h.HandleGetByID)
}

// HandleList returns active products, optionally filtered by category and a
// search term.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	products, err := h.service.ListActive(c.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		return internalError(c, h.production, err, "Failed to fetch products")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(products),
		"products": products,
	})
}

// HandleGetByID returns a single product.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	product, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Product not found",
			})
		}
		return internalError(c, h.production, err, "Failed to fetch product")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}
