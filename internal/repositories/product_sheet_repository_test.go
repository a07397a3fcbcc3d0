package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fireguard/internal/common"
	"fireguard/internal/models"
	"fireguard/internal/repositories"
)

func productRow(id, name, category, status string) []string {
	row := make([]string, models.ProductColumnCount)
	row[models.ProductColID] = id
	row[models.ProductColName] = name
	row[models.ProductColCategory] = category
	row[models.ProductColPrice] = "4500"
	row[models.ProductColStatus] = status
	row[models.ProductColCreatedAt] = "2024-01-15"
	return row
}

func seedProducts(store *fakeStore) {
	store.tabs["Products"] = [][]string{
		productRow("PROD-100", "ABC Extinguisher 6kg", "Extinguishers", models.ProductStatusActive),
		productRow("PROD-101", "CO2 Extinguisher 4.5kg", "Extinguishers", models.ProductStatusActive),
		productRow("PROD-102", "Old Smoke Detector", "Alarms", models.ProductStatusDisabled),
	}
}

func TestSheetProductRepository_GetAll(t *testing.T) {
	store := newFakeStore()
	seedProducts(store)
	repo := repositories.NewSheetProductRepository(store)

	active, err := repo.GetAll(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, p := range active {
		assert.Equal(t, models.ProductStatusActive, p.Status)
	}

	all, err := repo.GetAll(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSheetProductRepository_FallsBackToMocks(t *testing.T) {
	// Nil store serves the static catalog.
	repo := repositories.NewSheetProductRepository(nil)
	products, err := repo.GetAll(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, products, 5)
	assert.Equal(t, "PROD-001", products[0].ID)

	// A read failure degrades the same way instead of surfacing the error.
	store := newFakeStore()
	seedProducts(store)
	store.failNext = true
	repo = repositories.NewSheetProductRepository(store)
	products, err = repo.GetAll(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, products, 5)
}

func TestSheetProductRepository_GetByID(t *testing.T) {
	store := newFakeStore()
	seedProducts(store)
	repo := repositories.NewSheetProductRepository(store)

	product, err := repo.GetByID(context.Background(), "PROD-101")
	require.NoError(t, err)
	assert.Equal(t, "CO2 Extinguisher 4.5kg", product.Name)

	// Disabled products are still reachable by id.
	product, err = repo.GetByID(context.Background(), "PROD-102")
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusDisabled, product.Status)

	_, err = repo.GetByID(context.Background(), "PROD-999")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSheetProductRepository_Create(t *testing.T) {
	store := newFakeStore()
	repo := repositories.NewSheetProductRepository(store)

	created, err := repo.Create(context.Background(), &models.Product{
		Name:     "Fire Blanket 1.2m",
		Category: "Blankets",
		Price:    900,
	})
	require.NoError(t, err)
	assert.True(t, len(created.ID) > len("PROD-"), "id should be generated")
	assert.Equal(t, models.ProductStatusActive, created.Status)
	assert.NotEmpty(t, created.CreatedAt)

	rows := store.tabs["Products"]
	require.Len(t, rows, 1)
	assert.Equal(t, created.ID, rows[0][models.ProductColID])
}

func TestSheetProductRepository_CreateRequiresStore(t *testing.T) {
	repo := repositories.NewSheetProductRepository(nil)
	_, err := repo.Create(context.Background(), &models.Product{Name: "X"})
	assert.ErrorIs(t, err, common.ErrStoreNotConfigured)

	_, err = repo.Update(context.Background(), "PROD-100", models.ProductPatch{})
	assert.ErrorIs(t, err, common.ErrStoreNotConfigured)
}

func TestSheetProductRepository_Update(t *testing.T) {
	store := newFakeStore()
	seedProducts(store)
	repo := repositories.NewSheetProductRepository(store)

	newPrice := 4999.0
	newName := "ABC Extinguisher 6kg (rev 2)"
	updated, err := repo.Update(context.Background(), "PROD-100", models.ProductPatch{
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, newPrice, updated.Price)
	// Untouched fields survive the merge.
	assert.Equal(t, "Extinguishers", updated.Category)

	// The row was rewritten in place.
	assert.Equal(t, newName, store.tabs["Products"][0][models.ProductColName])
	assert.Equal(t, "4999", store.tabs["Products"][0][models.ProductColPrice])
}

func TestSheetProductRepository_UpdateNotFound(t *testing.T) {
	store := newFakeStore()
	seedProducts(store)
	repo := repositories.NewSheetProductRepository(store)

	name := "whatever"
	_, err := repo.Update(context.Background(), "PROD-999", models.ProductPatch{Name: &name})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSheetProductRepository_Disable(t *testing.T) {
	store := newFakeStore()
	seedProducts(store)
	repo := repositories.NewSheetProductRepository(store)

	disabled, err := repo.Disable(context.Background(), "PROD-100")
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusDisabled, disabled.Status)

	// Gone from the active listing, still visible by id.
	active, err := repo.GetAll(context.Background(), false)
	require.NoError(t, err)
	for _, p := range active {
		assert.NotEqual(t, "PROD-100", p.ID)
	}
	byID, err := repo.GetByID(context.Background(), "PROD-100")
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusDisabled, byID.Status)
}
