package repositories_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fireguard/internal/common"
	"fireguard/internal/models"
	"fireguard/internal/repositories"
)

func enquiryRow(id, timestamp, name, city string) []string {
	row := make([]string, models.EnquiryColumnCount)
	row[models.EnquiryColID] = id
	row[models.EnquiryColTimestamp] = timestamp
	row[models.EnquiryColName] = name
	row[models.EnquiryColEmail] = "test@example.com"
	row[models.EnquiryColPhone] = "9876543210"
	row[models.EnquiryColQuantity] = "1"
	row[models.EnquiryColCity] = city
	return row
}

func seedEnquiries(store *fakeStore) {
	store.tabs["Enquiries"] = [][]string{
		enquiryRow("ENQ-1", "2026-01-05T10:00:00Z", "Ravi", "Pune"),
		enquiryRow("ENQ-2", "2026-01-10T08:30:00Z", "Meera", "Mumbai"),
		enquiryRow("ENQ-3", "2026-01-20T17:15:00Z", "Arjun", "Pune"),
	}
}

func TestSheetEnquiryRepository_SubmitAndListRoundTrip(t *testing.T) {
	store := newFakeStore()
	repo := repositories.NewSheetEnquiryRepository(store, false)

	enquiry, err := repo.Submit(context.Background(), models.EnquiryInput{
		Name:            "Ravi",
		Company:         "Acme Labs",
		Email:           "ravi@example.com",
		Phone:           "9876543210",
		ProductInterest: "CO2 Extinguisher",
		City:            "Pune",
		Notes:           "Need delivery by Friday",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enquiry.ID, "ENQ-"))
	assert.NotEmpty(t, enquiry.Timestamp)
	// Defaults applied on submit.
	assert.Equal(t, 1, enquiry.Quantity)
	assert.Equal(t, "Unknown", enquiry.SourcePage)

	listed, err := repo.ListAll(context.Background(), models.EnquiryFilters{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, enquiry.ID, listed[0].ID)
	assert.Equal(t, "Acme Labs", listed[0].Company)
	assert.Equal(t, "Need delivery by Friday", listed[0].Notes)
}

func TestSheetEnquiryRepository_SubmitWithoutStore(t *testing.T) {
	// Dev mode: accepted without persistence.
	devRepo := repositories.NewSheetEnquiryRepository(nil, true)
	enquiry, err := devRepo.Submit(context.Background(), models.EnquiryInput{
		Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enquiry.ID, "ENQ-"))

	// Production mode: hard failure.
	prodRepo := repositories.NewSheetEnquiryRepository(nil, false)
	_, err = prodRepo.Submit(context.Background(), models.EnquiryInput{
		Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210",
	})
	assert.ErrorIs(t, err, common.ErrStoreNotConfigured)
}

func TestSheetEnquiryRepository_SubmitPropagatesWriteErrors(t *testing.T) {
	store := newFakeStore()
	store.failNext = true
	repo := repositories.NewSheetEnquiryRepository(store, true)

	_, err := repo.Submit(context.Background(), models.EnquiryInput{
		Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210",
	})
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestSheetEnquiryRepository_ListAllNewestFirst(t *testing.T) {
	store := newFakeStore()
	seedEnquiries(store)
	repo := repositories.NewSheetEnquiryRepository(store, false)

	enquiries, err := repo.ListAll(context.Background(), models.EnquiryFilters{})
	require.NoError(t, err)
	require.Len(t, enquiries, 3)
	assert.Equal(t, "ENQ-3", enquiries[0].ID)
	assert.Equal(t, "ENQ-2", enquiries[1].ID)
	assert.Equal(t, "ENQ-1", enquiries[2].ID)
}

func TestSheetEnquiryRepository_ListAllFilters(t *testing.T) {
	store := newFakeStore()
	seedEnquiries(store)
	repo := repositories.NewSheetEnquiryRepository(store, false)

	// City is a case-insensitive substring match.
	byCity, err := repo.ListAll(context.Background(), models.EnquiryFilters{City: "pune"})
	require.NoError(t, err)
	require.Len(t, byCity, 2)
	assert.Equal(t, "ENQ-3", byCity[0].ID)

	// Date bounds are inclusive; a bare end date covers the whole day.
	byDate, err := repo.ListAll(context.Background(), models.EnquiryFilters{
		StartDate: "2026-01-05",
		EndDate:   "2026-01-10",
	})
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Equal(t, "ENQ-2", byDate[0].ID)
	assert.Equal(t, "ENQ-1", byDate[1].ID)

	combined, err := repo.ListAll(context.Background(), models.EnquiryFilters{
		StartDate: "2026-01-06",
		City:      "Pune",
	})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "ENQ-3", combined[0].ID)
}

func TestSheetEnquiryRepository_ListAllEmptyWhenStoreAbsent(t *testing.T) {
	repo := repositories.NewSheetEnquiryRepository(nil, true)
	enquiries, err := repo.ListAll(context.Background(), models.EnquiryFilters{})
	require.NoError(t, err)
	assert.Empty(t, enquiries)

	// Read failures degrade to an empty list, not mock data.
	store := newFakeStore()
	seedEnquiries(store)
	store.failNext = true
	repo = repositories.NewSheetEnquiryRepository(store, false)
	enquiries, err = repo.ListAll(context.Background(), models.EnquiryFilters{})
	require.NoError(t, err)
	assert.Empty(t, enquiries)
}
