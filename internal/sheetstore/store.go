package sheetstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yungbote/skillbridge-backend/internal/logger"
)

// Class selects the staleness budget of a cached table read.
type Class int

const (
	// ClassDynamic covers tables mutated by request traffic.
	ClassDynamic Class = iota
	// ClassReference covers read-only lookup tables.
	ClassReference
)

type Config struct {
	DynamicTTL   time.Duration
	ReferenceTTL time.Duration
}

type cacheKey struct {
	table string
	class Class
}

type cacheEntry struct {
	fetchedAt time.Time
	records   []Record
}

// RowUpdate inspects one row and returns the column values to overwrite on
// it, or ok=false to leave the row untouched.
type RowUpdate func(row Record) (updates map[string]interface{}, ok bool)

// Store presents the remote spreadsheet as named tables of Records, with a
// per-table per-class TTL cache in front of reads and cache-coherent
// mutation helpers. Cached snapshots are shared between callers and must be
// treated as read-only.
//
// The check-then-fetch sequence is guarded by a mutex plus singleflight, so
// concurrent misses on the same table produce a single remote fetch.
type Store struct {
	api API
	log *logger.Logger
	cfg Config

	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	group   singleflight.Group

	now func() time.Time
}

func NewStore(api API, log *logger.Logger, cfg Config) *Store {
	if cfg.DynamicTTL <= 0 {
		cfg.DynamicTTL = 30 * time.Second
	}
	if cfg.ReferenceTTL <= 0 {
		cfg.ReferenceTTL = 5 * time.Minute
	}
	return &Store{
		api:     api,
		log:     log.With("component", "SheetStore"),
		cfg:     cfg,
		entries: map[cacheKey]cacheEntry{},
		now:     time.Now,
	}
}

func (s *Store) ttl(class Class) time.Duration {
	if class == ClassReference {
		return s.cfg.ReferenceTTL
	}
	return s.cfg.DynamicTTL
}

// Records returns the current snapshot of a table, fetching from the remote
// store only when the cached snapshot is missing or older than the class TTL.
func (s *Store) Records(ctx context.Context, table string, class Class) ([]Record, error) {
	key := cacheKey{table: table, class: class}

	s.mu.Lock()
	if e, ok := s.entries[key]; ok && s.now().Sub(e.fetchedAt) < s.ttl(class) {
		s.mu.Unlock()
		return e.records, nil
	}
	s.mu.Unlock()

	flightKey := fmt.Sprintf("%s/%d", table, class)
	v, err, _ := s.group.Do(flightKey, func() (interface{}, error) {
		// Re-check under the flight: a concurrent caller may have stored a
		// fresh snapshot while this one waited.
		s.mu.Lock()
		if e, ok := s.entries[key]; ok && s.now().Sub(e.fetchedAt) < s.ttl(class) {
			s.mu.Unlock()
			return e.records, nil
		}
		s.mu.Unlock()

		values, err := s.api.GetValues(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("fetch table %s: %w", table, err)
		}
		records := toRecords(values)

		s.mu.Lock()
		s.entries[key] = cacheEntry{fetchedAt: s.now(), records: records}
		s.mu.Unlock()

		s.log.Debug("Refreshed table snapshot", "table", table, "rows", len(records))
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Record), nil
}

// Invalidate expires the dynamic snapshot of a table. Every mutation path
// calls this so later reads observe the write within one fetch.
func (s *Store) Invalidate(table string) {
	s.mu.Lock()
	delete(s.entries, cacheKey{table: table, class: ClassDynamic})
	s.mu.Unlock()
}

// NextID allocates max(id)+1 over the dynamic snapshot, or 1 for an empty
// table. The snapshot may trail a concurrent writer by up to the dynamic
// TTL; that race is accepted for single-writer deployments.
func (s *Store) NextID(ctx context.Context, table string) (int, error) {
	records, err := s.Records(ctx, table, ClassDynamic)
	if err != nil {
		return 0, err
	}
	maxID := 0
	for _, r := range records {
		if r.Str("id") == "" {
			continue
		}
		if id := r.IntOr("id", 0); id > maxID {
			maxID = id
		}
	}
	return maxID + 1, nil
}

// AppendRows appends the given rows verbatim and expires the table snapshot.
func (s *Store) AppendRows(ctx context.Context, table string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.api.AppendRows(ctx, table, rows); err != nil {
		return err
	}
	s.Invalidate(table)
	return nil
}

// DeleteRowsByRespondent removes every row whose respondent_id column equals
// the given id. The scan bypasses the cache so deletions address current row
// positions; an empty or header-only table is a successful no-op.
func (s *Store) DeleteRowsByRespondent(ctx context.Context, table string, respondentID int) error {
	values, err := s.api.GetValues(ctx, table)
	if err != nil {
		return err
	}
	if len(values) <= 1 {
		return nil
	}
	ridCol := columnIndex(values[0], "respondent_id")
	if ridCol < 0 {
		return fmt.Errorf("table %s has no respondent_id column", table)
	}

	want := fmt.Sprint(respondentID)
	var toDelete []int
	for i, row := range values[1:] {
		if cellAt(row, ridCol) == want {
			toDelete = append(toDelete, i+1)
		}
	}
	if len(toDelete) > 0 {
		sort.Sort(sort.Reverse(sort.IntSlice(toDelete)))
		if err := s.api.DeleteRows(ctx, table, toDelete); err != nil {
			return err
		}
	}
	s.Invalidate(table)
	return nil
}

// UpdateMatchingCells scans every row and applies fn, collecting all cell
// writes into a single batched update. Row positions are resolved here and
// never exposed upward. An empty or header-only table is a no-op.
func (s *Store) UpdateMatchingCells(ctx context.Context, table string, fn RowUpdate) error {
	values, err := s.api.GetValues(ctx, table)
	if err != nil {
		return err
	}
	if len(values) <= 1 {
		return nil
	}
	header := values[0]

	var cellUpdates []CellUpdate
	for i, row := range values[1:] {
		rec := make(Record, len(header))
		for c, col := range header {
			rec[col] = cellAt(row, c)
		}
		updates, ok := fn(rec)
		if !ok {
			continue
		}
		for col, value := range updates {
			colIdx := columnIndex(header, col)
			if colIdx < 0 {
				return fmt.Errorf("table %s has no %s column", table, col)
			}
			cellUpdates = append(cellUpdates, CellUpdate{Row: i + 1, Col: colIdx, Value: value})
		}
	}
	if len(cellUpdates) > 0 {
		if err := s.api.UpdateCells(ctx, table, cellUpdates); err != nil {
			return err
		}
	}
	s.Invalidate(table)
	return nil
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}
