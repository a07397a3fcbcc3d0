package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fireguard/internal/common"
	"fireguard/internal/metrics"
	"fireguard/internal/models"
	"fireguard/pkg/sheets"
)

const (
	usersReadRange   = "Users!A2:G"
	usersAppendRange = "Users!A:G"
	usersIDColumn    = "Users!A:A"
)

// SheetUserRepository implements UserRepository against the Users sheet.
// Unlike products there is no mock fallback for reads: an absent store is a
// hard ErrStoreNotConfigured, because authentication against fabricated
// accounts would be misleading.
type SheetUserRepository struct {
	store sheets.RangeStore
}

// NewSheetUserRepository creates a SheetUserRepository. The store must not
// be nil; main falls back to the in-memory repository instead.
func NewSheetUserRepository(store sheets.RangeStore) *SheetUserRepository {
	return &SheetUserRepository{store: store}
}

// Create appends a user row.
//
// Hazard, kept for behavior parity: uniqueness is enforced by the caller's
// prior GetByEmail, so two near-simultaneous registrations with the same
// email can both land.
func (r *SheetUserRepository) Create(ctx context.Context, user *models.User) error {
	if r.store == nil {
		return common.ErrStoreNotConfigured
	}

	if user.ID == "" {
		user.ID = NewUserID()
	}
	user.Email = strings.ToLower(user.Email)
	if user.CreatedAt == "" {
		user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	err := r.store.AppendRow(ctx, usersAppendRange, userToRow(user))
	metrics.ObserveStoreCall("users", "append", err)
	return err
}

// GetByEmail scans the sheet for a case-insensitive email match.
func (r *SheetUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(email)
	for i := range users {
		if strings.ToLower(users[i].Email) == needle {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, common.ErrNotFound)
}

// GetByID scans the sheet for an id match.
func (r *SheetUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, common.ErrNotFound)
}

// LinkGoogleID rewrites the account's row with the google id filled in.
// Same read-modify-write shape as product updates, with the same hazard.
func (r *SheetUserRepository) LinkGoogleID(ctx context.Context, id, googleID string) error {
	if r.store == nil {
		return common.ErrStoreNotConfigured
	}

	idRows, err := r.store.ReadRange(ctx, usersIDColumn)
	metrics.ObserveStoreCall("users", "read", err)
	if err != nil {
		return err
	}

	rowIndex := -1
	for i, row := range idRows {
		if len(row) > 0 && row[0] == id {
			rowIndex = i
			break
		}
	}
	if rowIndex == -1 {
		return fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}

	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.GoogleID = googleID

	// idRows starts at the header row, so sheet row number is index+1.
	target := fmt.Sprintf("Users!A%d:G%d", rowIndex+1, rowIndex+1)
	err = r.store.UpdateRange(ctx, target, userToRow(user))
	metrics.ObserveStoreCall("users", "update", err)
	return err
}

func (r *SheetUserRepository) readAll(ctx context.Context) ([]models.User, error) {
	if r.store == nil {
		return nil, common.ErrStoreNotConfigured
	}
	rows, err := r.store.ReadRange(ctx, usersReadRange)
	metrics.ObserveStoreCall("users", "read", err)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, rowToUser(row))
	}
	return users, nil
}

func rowToUser(row []string) models.User {
	return models.User{
		ID:           cell(row, models.UserColID),
		Name:         cell(row, models.UserColName),
		Email:        cell(row, models.UserColEmail),
		PasswordHash: cell(row, models.UserColPasswordHash),
		Provider:     cell(row, models.UserColProvider),
		GoogleID:     cell(row, models.UserColGoogleID),
		CreatedAt:    cell(row, models.UserColCreatedAt),
	}
}

func userToRow(u *models.User) []string {
	row := make([]string, models.UserColumnCount)
	row[models.UserColID] = u.ID
	row[models.UserColName] = u.Name
	row[models.UserColEmail] = u.Email
	row[models.UserColPasswordHash] = u.PasswordHash
	row[models.UserColProvider] = u.Provider
	row[models.UserColGoogleID] = u.GoogleID
	row[models.UserColCreatedAt] = u.CreatedAt
	return row
}
