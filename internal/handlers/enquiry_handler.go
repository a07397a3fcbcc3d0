package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"fireguard/internal/models"
	"fireguard/internal/services"
)

// EnquiryHandler handles public enquiry submission.
type EnquiryHandler struct {
	service    *services.EnquiryService
	validate   *validator.Validate
	production bool
}

// NewEnquiryHandler creates a new EnquiryHandler.
func NewEnquiryHandler(service *services.EnquiryService, production bool) *EnquiryHandler {
	return &EnquiryHandler{
		service:    service,
		validate:   newValidator(),
		production: production,
	}
}

// RegisterRoutes registers the enquiry routes.
func (h *EnquiryHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/enquiry", h.HandleSubmit)
}

// HandleSubmit validates and stores a customer enquiry.
func (h *EnquiryHandler) HandleSubmit(c *fiber.Ctx) error {
	var input models.EnquiryInput
	if err := c.BodyParser(&input); err != nil {
		log.Warn().Err(err).Msg("failed to parse enquiry body")
		return badRequest(c, map[string]string{"request": "Invalid request body"})
	}

	if err := h.validate.Struct(input); err != nil {
		return badRequest(c, validationMessages(err))
	}

	// Attribution for analytics; the client does not control it explicitly.
	if input.SourcePage == "" {
		input.SourcePage = c.Get("Referer")
	}
	if input.SourcePage == "" {
		input.SourcePage = "Direct API"
	}

	enquiry, err := h.service.Submit(c.Context(), input)
	if err != nil {
		return internalError(c, h.production, err, "Failed to submit enquiry. Please try again.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"message":    "Thank you! Your enquiry has been submitted. Our team will contact you shortly.",
		"enquiry_id": enquiry.ID,
	})
}
