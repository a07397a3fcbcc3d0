package services

import (
	"context"
	"strings"

	"fireguard/internal/models"
	"fireguard/internal/repositories"
)

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ListActive returns active products, optionally narrowed by an exact
// (case-insensitive) category and a substring search over name and short
// description.
func (s *ProductService) ListActive(ctx context.Context, category, search string) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}

	if category != "" {
		filtered := products[:0]
		for _, p := range products {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.ShortDescription), needle) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	return products, nil
}

// ListAll returns every product regardless of status (admin view).
func (s *ProductService) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx, true)
}

// GetByID retrieves a single product by its ID.
func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create creates a new product.
func (s *ProductService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	return s.repo.Create(ctx, product)
}

// Update applies a partial update to an existing product.
func (s *ProductService) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	return s.repo.Update(ctx, id, patch)
}

// Disable soft-deletes a product.
func (s *ProductService) Disable(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.Disable(ctx, id)
}
