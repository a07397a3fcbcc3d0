package repositories

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"fireguard/internal/common"
	"fireguard/internal/metrics"
	"fireguard/internal/models"
	"fireguard/pkg/sheets"
)

const (
	enquiriesReadRange   = "Enquiries!A2:L"
	enquiriesAppendRange = "Enquiries!A:L"
)

// SheetEnquiryRepository implements EnquiryRepository against the Enquiries
// sheet.
type SheetEnquiryRepository struct {
	store sheets.RangeStore // nil when the store is not configured

	// allowUnpersisted keeps the dev-mode behavior of accepting a
	// submission without a configured store (log and report success).
	// Production forces this off, turning the same case into
	// common.ErrStoreNotConfigured.
	allowUnpersisted bool
}

// NewSheetEnquiryRepository creates a SheetEnquiryRepository.
func NewSheetEnquiryRepository(store sheets.RangeStore, allowUnpersisted bool) *SheetEnquiryRepository {
	return &SheetEnquiryRepository{store: store, allowUnpersisted: allowUnpersisted}
}

// Submit builds the full enquiry record (server-generated id and timestamp)
// and appends it.
func (r *SheetEnquiryRepository) Submit(ctx context.Context, input models.EnquiryInput) (*models.Enquiry, error) {
	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}
	sourcePage := input.SourcePage
	if sourcePage == "" {
		sourcePage = "Unknown"
	}

	enquiry := &models.Enquiry{
		ID:               fmt.Sprintf("ENQ-%d", time.Now().UnixMilli()),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		Name:             input.Name,
		Company:          input.Company,
		Email:            input.Email,
		Phone:            input.Phone,
		ProductInterest:  input.ProductInterest,
		UsageEnvironment: input.UsageEnvironment,
		Quantity:         quantity,
		City:             input.City,
		Notes:            input.Notes,
		SourcePage:       sourcePage,
	}

	if r.store == nil {
		if !r.allowUnpersisted {
			return nil, common.ErrStoreNotConfigured
		}
		log.Info().
			Str("enquiry_id", enquiry.ID).
			Str("email", enquiry.Email).
			Msg("store not configured, enquiry accepted without persistence")
		return enquiry, nil
	}

	err := r.store.AppendRow(ctx, enquiriesAppendRange, enquiryToRow(enquiry))
	metrics.ObserveStoreCall("enquiries", "append", err)
	if err != nil {
		return nil, err
	}
	return enquiry, nil
}

// ListAll reads every enquiry row, applies the optional filters, and returns
// the result sorted newest first. When the store is absent it returns an
// empty slice: enquiries are never fabricated.
func (r *SheetEnquiryRepository) ListAll(ctx context.Context, filters models.EnquiryFilters) ([]models.Enquiry, error) {
	if r.store == nil {
		return []models.Enquiry{}, nil
	}

	rows, err := r.store.ReadRange(ctx, enquiriesReadRange)
	metrics.ObserveStoreCall("enquiries", "read", err)
	if err != nil {
		log.Warn().Err(err).Msg("enquiry read failed, returning empty list")
		return []models.Enquiry{}, nil
	}

	enquiries := make([]models.Enquiry, 0, len(rows))
	for _, row := range rows {
		enquiries = append(enquiries, rowToEnquiry(row))
	}
	enquiries = applyEnquiryFilters(enquiries, filters)

	sort.SliceStable(enquiries, func(i, j int) bool {
		return parseEnquiryTime(enquiries[i].Timestamp).After(parseEnquiryTime(enquiries[j].Timestamp))
	})
	return enquiries, nil
}

func applyEnquiryFilters(enquiries []models.Enquiry, filters models.EnquiryFilters) []models.Enquiry {
	out := enquiries[:0]
	start, hasStart := parseFilterDate(filters.StartDate, false)
	end, hasEnd := parseFilterDate(filters.EndDate, true)
	city := strings.ToLower(filters.City)

	for _, e := range enquiries {
		ts := parseEnquiryTime(e.Timestamp)
		if hasStart && ts.Before(start) {
			continue
		}
		if hasEnd && ts.After(end) {
			continue
		}
		if city != "" && !strings.Contains(strings.ToLower(e.City), city) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func parseEnquiryTime(value string) time.Time {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	t, _ := time.Parse("2006-01-02", value)
	return t
}

// parseFilterDate accepts YYYY-MM-DD or RFC 3339 bounds. A bare end date is
// widened to the end of that day so the bound stays inclusive.
func parseFilterDate(value string, endOfDay bool) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, true
	}
	return time.Time{}, false
}

func rowToEnquiry(row []string) models.Enquiry {
	quantity, err := strconv.Atoi(cell(row, models.EnquiryColQuantity))
	if err != nil || quantity < 1 {
		quantity = 1
	}
	return models.Enquiry{
		ID:               cell(row, models.EnquiryColID),
		Timestamp:        cell(row, models.EnquiryColTimestamp),
		Name:             cell(row, models.EnquiryColName),
		Company:          cell(row, models.EnquiryColCompany),
		Email:            cell(row, models.EnquiryColEmail),
		Phone:            cell(row, models.EnquiryColPhone),
		ProductInterest:  cell(row, models.EnquiryColProductInterest),
		UsageEnvironment: cell(row, models.EnquiryColUsageEnvironment),
		Quantity:         quantity,
		City:             cell(row, models.EnquiryColCity),
		Notes:            cell(row, models.EnquiryColNotes),
		SourcePage:       cell(row, models.EnquiryColSourcePage),
	}
}

func enquiryToRow(e *models.Enquiry) []string {
	row := make([]string, models.EnquiryColumnCount)
	row[models.EnquiryColID] = e.ID
	row[models.EnquiryColTimestamp] = e.Timestamp
	row[models.EnquiryColName] = e.Name
	row[models.EnquiryColCompany] = e.Company
	row[models.EnquiryColEmail] = e.Email
	row[models.EnquiryColPhone] = e.Phone
	row[models.EnquiryColProductInterest] = e.ProductInterest
	row[models.EnquiryColUsageEnvironment] = e.UsageEnvironment
	row[models.EnquiryColQuantity] = strconv.Itoa(e.Quantity)
	row[models.EnquiryColCity] = e.City
	row[models.EnquiryColNotes] = e.Notes
	row[models.EnquiryColSourcePage] = e.SourcePage
	return row
}
