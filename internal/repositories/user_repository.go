package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"fireguard/internal/models"
)

// UserRepository defines the interface for customer account access. Email
// lookups are case-insensitive. The only mutation after Create is linking a
// google id to an existing account; accounts are never otherwise updated or
// deleted.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	LinkGoogleID(ctx context.Context, id, googleID string) error
}

// NewUserID generates a customer account id.
func NewUserID() string {
	return "USR-" + strings.ToUpper(uuid.New().String()[:8])
}
