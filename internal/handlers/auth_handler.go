package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"fireguard/internal/common"
	"fireguard/internal/middleware"
	"fireguard/internal/services"
)

// AuthHandler handles customer registration and sign-in.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	production  bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, production bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
		production:  production,
	}
}

// RegisterRoutes registers the customer auth routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	auth := router.Group("/auth")
	auth.Post("/register", h.HandleRegister)
	auth.Post("/login", h.HandleLogin)
	auth.Post("/google", h.HandleGoogleSignIn)
	auth.Get("/me", middleware.UserRequired(h.authService), h.HandleMe)
}

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister creates a local account and issues a customer token.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"request": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessages(err))
	}

	user, token, err := h.authService.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "Email already registered",
			})
		}
		return internalError(c, h.production, err, "Registration failed. Please try again.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Account created successfully",
		"user":    user,
		"token":   token,
	})
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a local account.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"request": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessages(err))
	}

	user, token, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		log.Warn().Str("email", req.Email).Err(err).Msg("login failed")
		message := "Invalid email or password"
		if !errors.Is(err, common.ErrInvalidCredentials) {
			message = `This account uses Google sign-in. Please use "Sign in with Google".`
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   message,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// GoogleSignInRequest is the body for POST /api/auth/google, delivered by
// the frontend after its Google sign-in flow.
type GoogleSignInRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	GoogleID string `json:"googleId" validate:"required"`
}

// HandleGoogleSignIn signs a customer in through a Google identity. The
// google id is trusted as supplied by the frontend (no server-side
// verification), matching the existing contract.
func (h *AuthHandler) HandleGoogleSignIn(c *fiber.Ctx) error {
	var req GoogleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"request": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessages(err))
	}

	user, token, err := h.authService.GoogleSignIn(c.Context(), req.Name, req.Email, req.GoogleID)
	if err != nil {
		return internalError(c, h.production, err, "Google sign-in failed. Please try again.")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Google sign-in successful",
		"user":    user,
		"token":   token,
	})
}

// HandleMe resolves the verified token back to the account record.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	claims, ok := c.Locals(middleware.LocalsUser).(*services.UserClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid token.",
		})
	}

	user, err := h.authService.GetUser(c.Context(), claims.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "User not found",
			})
		}
		return internalError(c, h.production, err, "Failed to load account")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
