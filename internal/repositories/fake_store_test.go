package repositories_test

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"fireguard/internal/common"
)

// fakeStore is an in-memory sheets.RangeStore. Each sheet is a slice of data
// rows (the header row is implicit, as in the real A2:* read ranges).
type fakeStore struct {
	mu       sync.Mutex
	tabs     map[string][][]string
	failNext bool // next call fails with ErrStoreUnavailable
}

func newFakeStore() *fakeStore {
	return &fakeStore{tabs: map[string][][]string{}}
}

var updateRowPattern = regexp.MustCompile(`!A(\d+):`)

func (f *fakeStore) fail() error {
	if f.failNext {
		f.failNext = false
		return fmt.Errorf("%w: fake outage", common.ErrStoreUnavailable)
	}
	return nil
}

func sheetName(a1Range string) string {
	return strings.SplitN(a1Range, "!", 2)[0]
}

func (f *fakeStore) ReadRange(_ context.Context, a1Range string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}

	rows := f.tabs[sheetName(a1Range)]

	// Whole-column id reads (e.g. Products!A:A) include the header row.
	if strings.Contains(a1Range, "A:A") {
		out := [][]string{{"id"}}
		for _, row := range rows {
			out = append(out, []string{row[0]})
		}
		return out, nil
	}

	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (f *fakeStore) AppendRow(_ context.Context, a1Range string, row []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return err
	}
	name := sheetName(a1Range)
	f.tabs[name] = append(f.tabs[name], append([]string(nil), row...))
	return nil
}

func (f *fakeStore) UpdateRange(_ context.Context, a1Range string, row []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return err
	}

	match := updateRowPattern.FindStringSubmatch(a1Range)
	if match == nil {
		return fmt.Errorf("fake store: unsupported update range %q", a1Range)
	}
	sheetRow, _ := strconv.Atoi(match[1])
	// Sheet row 2 is the first data row.
	index := sheetRow - 2
	name := sheetName(a1Range)
	if index < 0 || index >= len(f.tabs[name]) {
		return fmt.Errorf("fake store: row %d out of range for %s", sheetRow, name)
	}
	f.tabs[name][index] = append([]string(nil), row...)
	return nil
}
