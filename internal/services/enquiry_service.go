package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"fireguard/internal/metrics"
	"fireguard/internal/models"
	"fireguard/internal/repositories"
)

// EnquiryPublisher pushes enquiry events to the sales notification pipeline.
// Implemented by pkg/rabbitmq.Client.
type EnquiryPublisher interface {
	PublishEnquirySubmitted(event map[string]interface{}) error
}

// EnquiryService handles customer enquiry submissions and the admin listing.
type EnquiryService struct {
	repo      repositories.EnquiryRepository
	publisher EnquiryPublisher // nil when no broker is configured
}

// NewEnquiryService creates a new EnquiryService.
func NewEnquiryService(repo repositories.EnquiryRepository, publisher EnquiryPublisher) *EnquiryService {
	return &EnquiryService{repo: repo, publisher: publisher}
}

// Submit persists an enquiry and publishes an enquiry.submitted event.
// Publishing is best effort: a broker failure is logged, never surfaced to
// the submitting customer.
func (s *EnquiryService) Submit(ctx context.Context, input models.EnquiryInput) (*models.Enquiry, error) {
	enquiry, err := s.repo.Submit(ctx, input)
	if err != nil {
		return nil, err
	}
	metrics.EnquiriesSubmitted.Inc()

	if s.publisher != nil {
		event := map[string]interface{}{
			"event":            "enquiry.submitted",
			"enquiry_id":       enquiry.ID,
			"timestamp":        enquiry.Timestamp,
			"name":             enquiry.Name,
			"email":            enquiry.Email,
			"phone":            enquiry.Phone,
			"product_interest": enquiry.ProductInterest,
			"city":             enquiry.City,
		}
		if err := s.publisher.PublishEnquirySubmitted(event); err != nil {
			log.Warn().Err(err).Str("enquiry_id", enquiry.ID).Msg("failed to publish enquiry event")
		}
	}

	return enquiry, nil
}

// ListAll returns enquiries matching the filters, newest first.
func (s *EnquiryService) ListAll(ctx context.Context, filters models.EnquiryFilters) ([]models.Enquiry, error) {
	return s.repo.ListAll(ctx, filters)
}
