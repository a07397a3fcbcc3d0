package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fireguard/internal/common"
	"fireguard/internal/models"
)

// MemoryUserRepository is the in-process fallback user store used when
// neither the Users sheet nor a database is configured. Data lives for the
// life of the process and is never persisted back anywhere.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by id
}

// NewMemoryUserRepository creates the fallback store, seeded with the
// development test account (password: "password").
func NewMemoryUserRepository() *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]models.User)}
	r.users["USR-001"] = models.User{
		ID:           "USR-001",
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi",
		Provider:     models.ProviderLocal,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	return r
}

// Create stores a new user, generating an id when absent.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = NewUserID()
	}
	user.Email = strings.ToLower(user.Email)
	if user.CreatedAt == "" {
		user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	r.users[user.ID] = *user
	return nil
}

// GetByEmail looks a user up by email, case-insensitively.
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(email)
	for _, u := range r.users {
		if strings.ToLower(u.Email) == needle {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, common.ErrNotFound)
}

// LinkGoogleID stores the google id on an existing account.
func (r *MemoryUserRepository) LinkGoogleID(_ context.Context, id, googleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}
	u.GoogleID = googleID
	r.users[id] = u
	return nil
}

// GetByID looks a user up by id.
func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}
	return &u, nil
}
