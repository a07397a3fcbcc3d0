package repositories_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fireguard/internal/common"
	"fireguard/internal/models"
	"fireguard/internal/repositories"
)

func TestNewUserID(t *testing.T) {
	id := repositories.NewUserID()
	assert.True(t, strings.HasPrefix(id, "USR-"))
	assert.Len(t, id, len("USR-")+8)
	assert.Equal(t, strings.ToUpper(id), id)
	assert.NotEqual(t, id, repositories.NewUserID())
}

func TestMemoryUserRepository_SeededAccount(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()

	user, err := repo.GetByEmail(context.Background(), "Test@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "USR-001", user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password")))

	byID, err := repo.GetByID(context.Background(), "USR-001")
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)
}

func TestMemoryUserRepository_Create(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()

	user := &models.User{Name: "New User", Email: "New@Example.com", Provider: models.ProviderLocal}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "new@example.com", user.Email, "emails are normalized to lowercase")
	assert.NotEmpty(t, user.CreatedAt)

	found, err := repo.GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = repo.GetByID(context.Background(), "USR-MISSING")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemoryUserRepository_LinkGoogleID(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()

	require.NoError(t, repo.LinkGoogleID(context.Background(), "USR-001", "google-7"))
	user, err := repo.GetByID(context.Background(), "USR-001")
	require.NoError(t, err)
	assert.Equal(t, "google-7", user.GoogleID)

	err = repo.LinkGoogleID(context.Background(), "USR-MISSING", "google-7")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSheetUserRepository_RoundTrip(t *testing.T) {
	store := newFakeStore()
	repo := repositories.NewSheetUserRepository(store)

	user := &models.User{
		Name:     "Sheet User",
		Email:    "Sheet@Example.com",
		Provider: models.ProviderGoogle,
		GoogleID: "google-42",
	}
	require.NoError(t, repo.Create(context.Background(), user))

	found, err := repo.GetByEmail(context.Background(), "SHEET@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "google-42", found.GoogleID)

	byID, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "sheet@example.com", byID.Email)
}

func TestSheetUserRepository_LinkGoogleID(t *testing.T) {
	store := newFakeStore()
	repo := repositories.NewSheetUserRepository(store)

	user := &models.User{Name: "Local User", Email: "local@example.com", Provider: models.ProviderLocal}
	require.NoError(t, repo.Create(context.Background(), user))

	require.NoError(t, repo.LinkGoogleID(context.Background(), user.ID, "google-7"))

	// The row was rewritten with the id filled in, other fields intact.
	found, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "google-7", found.GoogleID)
	assert.Equal(t, "local@example.com", found.Email)
	assert.Equal(t, models.ProviderLocal, found.Provider)

	err = repo.LinkGoogleID(context.Background(), "USR-MISSING", "google-7")
	assert.ErrorIs(t, err, common.ErrNotFound)

	nilRepo := repositories.NewSheetUserRepository(nil)
	err = nilRepo.LinkGoogleID(context.Background(), user.ID, "google-7")
	assert.ErrorIs(t, err, common.ErrStoreNotConfigured)
}

func TestSheetUserRepository_NoFallback(t *testing.T) {
	// Unlike products, user reads never fabricate data.
	repo := repositories.NewSheetUserRepository(nil)

	_, err := repo.GetByEmail(context.Background(), "test@example.com")
	assert.ErrorIs(t, err, common.ErrStoreNotConfigured)
	err = repo.Create(context.Background(), &models.User{Email: "x@y.com"})
	assert.ErrorIs(t, err, common.ErrStoreNotConfigured)

	store := newFakeStore()
	store.failNext = true
	repo = repositories.NewSheetUserRepository(store)
	_, err = repo.GetByEmail(context.Background(), "test@example.com")
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}
