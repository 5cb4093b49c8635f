// Package sheetstest provides an in-memory sheetstore.API for tests.
package sheetstest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yungbote/skillbridge-backend/internal/sheetstore"
)

// InMemoryAPI holds tables as raw value grids, header row first, the same
// shape the remote store returns.
type InMemoryAPI struct {
	mu     sync.Mutex
	Tables map[string][][]string

	// Call counters per table, used to assert cache behavior.
	GetCalls map[string]int
}

func New() *InMemoryAPI {
	return &InMemoryAPI{
		Tables:   map[string][][]string{},
		GetCalls: map[string]int{},
	}
}

// Seed replaces one table's full contents.
func (a *InMemoryAPI) Seed(table string, values [][]string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	copied := make([][]string, 0, len(values))
	for _, row := range values {
		copied = append(copied, append([]string(nil), row...))
	}
	a.Tables[table] = copied
}

func (a *InMemoryAPI) GetValues(_ context.Context, table string) ([][]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.GetCalls[table]++
	values, ok := a.Tables[table]
	if !ok {
		return nil, fmt.Errorf("worksheet %s not found", table)
	}
	copied := make([][]string, 0, len(values))
	for _, row := range values {
		copied = append(copied, append([]string(nil), row...))
	}
	return copied, nil
}

func (a *InMemoryAPI) AppendRows(_ context.Context, table string, rows [][]interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	values, ok := a.Tables[table]
	if !ok {
		return fmt.Errorf("worksheet %s not found", table)
	}
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		values = append(values, cells)
	}
	a.Tables[table] = values
	return nil
}

func (a *InMemoryAPI) UpdateCells(_ context.Context, table string, updates []sheetstore.CellUpdate) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	values, ok := a.Tables[table]
	if !ok {
		return fmt.Errorf("worksheet %s not found", table)
	}
	for _, u := range updates {
		if u.Row >= len(values) {
			return fmt.Errorf("row %d out of range for %s", u.Row, table)
		}
		row := values[u.Row]
		for len(row) <= u.Col {
			row = append(row, "")
		}
		row[u.Col] = fmt.Sprint(u.Value)
		values[u.Row] = row
	}
	return nil
}

func (a *InMemoryAPI) DeleteRows(_ context.Context, table string, rowIndexes []int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	values, ok := a.Tables[table]
	if !ok {
		return fmt.Errorf("worksheet %s not found", table)
	}
	sorted := append([]int(nil), rowIndexes...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, row := range sorted {
		if row >= len(values) {
			return fmt.Errorf("row %d out of range for %s", row, table)
		}
		values = append(values[:row], values[row+1:]...)
	}
	a.Tables[table] = values
	return nil
}
