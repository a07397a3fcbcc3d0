package repositories

import (
	"context"

	"fireguard/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// Read operations degrade to the static mock catalog when the sheet store is
// absent or failing; write operations require a configured store and
// propagate failures.
type ProductRepository interface {
	// GetAll returns products, limited to status "active" unless
	// includeDisabled is set.
	GetAll(ctx context.Context, includeDisabled bool) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	// Disable soft-deletes a product. Rows are never physically removed.
	Disable(ctx context.Context, id string) (*models.Product, error)
}
