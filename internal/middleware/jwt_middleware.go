package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"fireguard/internal/common"
	"fireguard/internal/services"
)

// Context keys set by the guards for downstream handlers.
const (
	LocalsAdmin = "admin"
	LocalsUser  = "user"
)

// AdminRequired guards admin routes: it requires a Bearer token that
// verifies as the admin principal kind. All verification failures map to
// 401; the distinct causes only reach the log.
func AdminRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "Access denied. No token provided.")
		}

		claims, err := authService.VerifyAdminToken(token)
		if err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("admin token rejected")
			return unauthorized(c, tokenErrorMessage(err))
		}

		c.Locals(LocalsAdmin, claims)
		return c.Next()
	}
}

// UserRequired guards customer routes the same way for the user principal
// kind.
func UserRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "Access denied. No token provided.")
		}

		claims, err := authService.VerifyUserToken(token)
		if err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("user token rejected")
			return unauthorized(c, tokenErrorMessage(err))
		}

		c.Locals(LocalsUser, claims)
		return c.Next()
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		return "Token expired. Please login again."
	case errors.Is(err, common.ErrInvalidTokenType):
		return "Invalid token type."
	default:
		return "Invalid token."
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
