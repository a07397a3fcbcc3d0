package repositories

import (
	"context"

	"fireguard/internal/models"
)

// EnquiryRepository defines the interface for enquiry data access. Enquiries
// are append only; there is no update or delete path, and no mock data is
// ever fabricated for reads.
type EnquiryRepository interface {
	Submit(ctx context.Context, input models.EnquiryInput) (*models.Enquiry, error)
	ListAll(ctx context.Context, filters models.EnquiryFilters) ([]models.Enquiry, error)
}
