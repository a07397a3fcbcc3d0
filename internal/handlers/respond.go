package handlers

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

var mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// newValidator builds the shared validator with the 10-digit mobile rule
// used by enquiry submission. Error keys use the JSON field names clients
// actually send.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	// Registration only fails for an empty tag name.
	_ = v.RegisterValidation("inmobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	return v
}

// validationMessages flattens validator errors into per-field messages.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		messages["request"] = err.Error()
		return messages
	}
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages[e.Field()] = fmt.Sprintf("Field '%s' is required", e.Field())
		case "email":
			messages[e.Field()] = "Valid email is required"
		case "inmobile":
			messages[e.Field()] = "Valid 10-digit mobile number required"
		case "max":
			messages[e.Field()] = fmt.Sprintf("Field '%s' must be at most %s characters", e.Field(), e.Param())
		case "min":
			messages[e.Field()] = fmt.Sprintf("Field '%s' must be at least %s", e.Field(), e.Param())
		default:
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag())
		}
	}
	return messages
}

func badRequest(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"errors":  errors,
	})
}

// internalError logs the cause and answers 500. The caller's message is
// always safe to show; err detail is included outside production only.
func internalError(c *fiber.Ctx, production bool, err error, message string) error {
	log.Error().Err(err).Str("path", c.Path()).Msg(message)
	body := fiber.Map{
		"success": false,
		"error":   message,
	}
	if !production && err != nil {
		body["detail"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
