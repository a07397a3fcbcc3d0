// Package sheets wraps the Google Sheets API as a simple row-range store.
// The spreadsheet is the system of record for products, enquiries and users;
// this package only moves rows of strings in and out of named A1 ranges.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	sheetsapi "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	"fireguard/internal/common"
)

// RangeStore is the read/append/update contract repositories depend on.
// Implementations may fail with an error wrapping common.ErrStoreUnavailable;
// callers treat that as "not configured" on read paths and as a hard failure
// on write paths.
type RangeStore interface {
	ReadRange(ctx context.Context, a1Range string) ([][]string, error)
	AppendRow(ctx context.Context, a1Range string, row []string) error
	UpdateRange(ctx context.Context, a1Range string, row []string) error
}

// Config holds service-account credentials and the target spreadsheet.
type Config struct {
	SpreadsheetID       string
	ServiceAccountEmail string
	// PrivateKey is the PEM key of the service account. Environments often
	// deliver it with literal "\n" sequences; Connect normalizes those.
	PrivateKey string
}

// Client talks to one spreadsheet.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// Connect builds a Sheets client. It never returns an error: missing
// credentials or a failed handshake yield nil plus a logged warning, so the
// caller degrades to fallback data instead of crashing.
func Connect(ctx context.Context, cfg Config) *Client {
	if cfg.PrivateKey == "" || cfg.ServiceAccountEmail == "" || cfg.SpreadsheetID == "" {
		log.Warn().Msg("google sheets credentials not set, using mock data")
		return nil
	}

	conf := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		log.Warn().Err(err).Msg("google sheets connection failed, using mock data")
		return nil
	}

	log.Info().Str("spreadsheet_id", cfg.SpreadsheetID).Msg("google sheets connected")
	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}
}

// ReadRange returns the rows of an A1 range as strings. Trailing empty cells
// may be absent from a row; callers index defensively.
func (c *Client) ReadRange(ctx context.Context, a1Range string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrStoreUnavailable, a1Range, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends one row after the last row of the range's table.
func (c *Client) AppendRow(ctx context.Context, a1Range string, row []string) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toInterfaces(row)}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, a1Range, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: append %s: %v", common.ErrStoreUnavailable, a1Range, err)
	}
	return nil
}

// UpdateRange overwrites the cells of an A1 range with one row.
func (c *Client) UpdateRange(ctx context.Context, a1Range string, row []string) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toInterfaces(row)}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, a1Range, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", common.ErrStoreUnavailable, a1Range, err)
	}
	return nil
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
