package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"fireguard/internal/common"
	"fireguard/internal/metrics"
	"fireguard/internal/models"
	"fireguard/pkg/sheets"
)

const (
	productsReadRange   = "Products!A2:K"
	productsAppendRange = "Products!A:K"
	productsIDColumn    = "Products!A:A"
)

// SheetProductRepository implements ProductRepository against the Products
// sheet, falling back to the static mock catalog on read-path store absence.
type SheetProductRepository struct {
	store sheets.RangeStore // nil when the store is not configured
}

// NewSheetProductRepository creates a SheetProductRepository. A nil store is
// valid and means "serve mock data, refuse writes".
func NewSheetProductRepository(store sheets.RangeStore) *SheetProductRepository {
	return &SheetProductRepository{store: store}
}

// GetAll reads every product row. Store absence or a read error both degrade
// to the mock catalog: the public catalog stays up even when the sheet is
// down (availability over consistency).
func (r *SheetProductRepository) GetAll(ctx context.Context, includeDisabled bool) ([]models.Product, error) {
	if r.store == nil {
		return MockProductSet(includeDisabled), nil
	}

	rows, err := r.store.ReadRange(ctx, productsReadRange)
	metrics.ObserveStoreCall("products", "read", err)
	if err != nil {
		log.Warn().Err(err).Msg("product read failed, serving mock catalog")
		return MockProductSet(includeDisabled), nil
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		p := rowToProduct(row)
		if !includeDisabled && p.Status != models.ProductStatusActive {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// GetByID scans the fetched rows for a matching id, with the same fallback
// policy as GetAll. Returns common.ErrNotFound when no row matches.
func (r *SheetProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	products, err := r.GetAll(ctx, true)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, common.ErrNotFound)
}

// Create appends a product row. The id, status and creation date are
// defaulted when absent.
func (r *SheetProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if r.store == nil {
		return nil, common.ErrStoreNotConfigured
	}

	if product.ID == "" {
		product.ID = fmt.Sprintf("PROD-%d", time.Now().UnixMilli())
	}
	if product.Status == "" {
		product.Status = models.ProductStatusActive
	}
	if product.CreatedAt == "" {
		product.CreatedAt = time.Now().UTC().Format("2006-01-02")
	}

	err := r.store.AppendRow(ctx, productsAppendRange, productToRow(product))
	metrics.ObserveStoreCall("products", "append", err)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Update locates the row by scanning the id column, merges the patch onto
// the current record, and rewrites the entire row in place.
//
// Hazard, kept for behavior parity with the existing sheet workflows: this is
// a read-modify-write without a version field, so two concurrent updates to
// the same id can silently lose one writer's change.
func (r *SheetProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if r.store == nil {
		return nil, common.ErrStoreNotConfigured
	}

	idRows, err := r.store.ReadRange(ctx, productsIDColumn)
	metrics.ObserveStoreCall("products", "read", err)
	if err != nil {
		return nil, err
	}

	rowIndex := -1
	for i, row := range idRows {
		if len(row) > 0 && row[0] == id {
			rowIndex = i
			break
		}
	}
	if rowIndex == -1 {
		return nil, fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(current)

	// idRows is zero-based over Products!A:A, which starts at the header
	// row, so sheet row number is index+1.
	target := fmt.Sprintf("Products!A%d:K%d", rowIndex+1, rowIndex+1)
	err = r.store.UpdateRange(ctx, target, productToRow(current))
	metrics.ObserveStoreCall("products", "update", err)
	if err != nil {
		return nil, err
	}
	return current, nil
}

// Disable marks a product disabled. Sugar for Update with a status patch.
func (r *SheetProductRepository) Disable(ctx context.Context, id string) (*models.Product, error) {
	status := models.ProductStatusDisabled
	return r.Update(ctx, id, models.ProductPatch{Status: &status})
}

func rowToProduct(row []string) models.Product {
	price, _ := strconv.ParseFloat(cell(row, models.ProductColPrice), 64)
	return models.Product{
		ID:               cell(row, models.ProductColID),
		Name:             cell(row, models.ProductColName),
		Category:         cell(row, models.ProductColCategory),
		Type:             cell(row, models.ProductColType),
		Capacity:         cell(row, models.ProductColCapacity),
		ShortDescription: cell(row, models.ProductColShortDescription),
		LongDescription:  cell(row, models.ProductColLongDescription),
		ImageURL:         cell(row, models.ProductColImageURL),
		Price:            price,
		Status:           cell(row, models.ProductColStatus),
		CreatedAt:        cell(row, models.ProductColCreatedAt),
	}
}

func productToRow(p *models.Product) []string {
	row := make([]string, models.ProductColumnCount)
	row[models.ProductColID] = p.ID
	row[models.ProductColName] = p.Name
	row[models.ProductColCategory] = p.Category
	row[models.ProductColType] = p.Type
	row[models.ProductColCapacity] = p.Capacity
	row[models.ProductColShortDescription] = p.ShortDescription
	row[models.ProductColLongDescription] = p.LongDescription
	row[models.ProductColImageURL] = p.ImageURL
	row[models.ProductColPrice] = strconv.FormatFloat(p.Price, 'f', -1, 64)
	row[models.ProductColStatus] = p.Status
	row[models.ProductColCreatedAt] = p.CreatedAt
	return row
}

// cell reads a column defensively: the Sheets API omits trailing empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
