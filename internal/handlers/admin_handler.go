package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"fireguard/internal/common"
	"fireguard/internal/middleware"
	"fireguard/internal/models"
	"fireguard/internal/services"
)

// AdminHandler handles the admin login and all JWT-protected admin routes.
type AdminHandler struct {
	authService      *services.AuthService
	productService   *services.ProductService
	enquiryService   *services.EnquiryService
	analyticsService *services.AnalyticsService
	validate         *validator.Validate
	production       bool
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	authService *services.AuthService,
	productService *services.ProductService,
	enquiryService *services.EnquiryService,
	analyticsService *services.AnalyticsService,
	production bool,
) *AdminHandler {
	return &AdminHandler{
		authService:      authService,
		productService:   productService,
		enquiryService:   enquiryService,
		analyticsService: analyticsService,
		validate:         newValidator(),
		production:       production,
	}
}

// RegisterRoutes registers the admin routes. Everything past /login sits
// behind the admin token guard.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	admin := router.Group("/admin")
	admin.Post("/login", h.HandleLogin)

	// Registered after /login so the guard never sees the login request.
	admin.Use(middleware.AdminRequired(h.authService))
	admin.Get("/products", h.HandleListProducts)
	admin.Post("/products", h.HandleCreateProduct)
	admin.Put("/products/:id", h.HandleUpdateProduct)
	admin.Patch("/products/:id/disable", h.HandleDisableProduct)
	admin.Get("/enquiries", h.HandleListEnquiries)
	admin.Get("/reports/monthly", h.HandleMonthlyReport)
}

// AdminLoginRequest is the body for POST /api/admin/login.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates the configured admin and issues an admin token.
func (h *AdminHandler) HandleLogin(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"request": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessages(err))
	}

	token, err := h.authService.LoginAdmin(req.Email, req.Password)
	if err != nil {
		log.Warn().Str("email", req.Email).Msg("admin login rejected")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid credentials",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"admin":   fiber.Map{"email": req.Email, "role": "admin"},
	})
}

// HandleListProducts returns every product, disabled ones included.
func (h *AdminHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.productService.ListAll(c.Context())
	if err != nil {
		return internalError(c, h.production, err, "Failed to fetch products")
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(products),
		"products": products,
	})
}

// HandleCreateProduct appends a new product row.
func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, map[string]string{"request": "Invalid request body"})
	}
	if err := h.validate.Struct(product); err != nil {
		return badRequest(c, validationMessages(err))
	}

	created, err := h.productService.Create(c.Context(), &product)
	if err != nil {
		return internalError(c, h.production, err, "Failed to create product")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"product": created,
	})
}

// HandleUpdateProduct merges a patch onto a product and rewrites its row.
func (h *AdminHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, map[string]string{"request": "Invalid request body"})
	}

	updated, err := h.productService.Update(c.Context(), c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Product not found",
			})
		}
		return internalError(c, h.production, err, "Failed to update product")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"product": updated,
	})
}

// HandleDisableProduct soft-deletes a product.
func (h *AdminHandler) HandleDisableProduct(c *fiber.Ctx) error {
	product, err := h.productService.Disable(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Product not found",
			})
		}
		return internalError(c, h.production, err, "Failed to disable product")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product disabled",
		"product": product,
	})
}

// HandleListEnquiries returns enquiries with optional date and city filters.
func (h *AdminHandler) HandleListEnquiries(c *fiber.Ctx) error {
	filters := models.EnquiryFilters{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		City:      c.Query("city"),
	}

	enquiries, err := h.enquiryService.ListAll(c.Context(), filters)
	if err != nil {
		return internalError(c, h.production, err, "Failed to fetch enquiries")
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"count":     len(enquiries),
		"enquiries": enquiries,
	})
}

// HandleMonthlyReport returns the analytics rollup for a month
// (?month=YYYY-MM, defaulting to the current month).
func (h *AdminHandler) HandleMonthlyReport(c *fiber.Ctx) error {
	report, err := h.analyticsService.MonthlyReport(c.Context(), c.Query("month"))
	if err != nil {
		return internalError(c, h.production, err, "Failed to generate report")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"report":  report,
	})
}
