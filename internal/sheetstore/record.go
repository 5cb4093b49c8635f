package sheetstore

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one table row keyed by header column name. Every value arrives
// from the remote store as a string; the typed accessors convert here so
// stringly values never propagate upward.
type Record map[string]string

func (r Record) Str(field string) string {
	return r[field]
}

// Int decodes a required integer column. Blank counts as malformed.
func (r Record) Int(field string) (int, error) {
	raw := strings.TrimSpace(r[field])
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("decode field %q from %q: %w", field, raw, err)
	}
	return n, nil
}

// IntOr decodes an integer column, falling back on blank or malformed values.
func (r Record) IntOr(field string, fallback int) int {
	n, err := r.Int(field)
	if err != nil {
		return fallback
	}
	return n
}

// NullableInt decodes an integer column where blank means null.
func (r Record) NullableInt(field string) (*int, error) {
	raw := strings.TrimSpace(r[field])
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("decode field %q from %q: %w", field, raw, err)
	}
	return &n, nil
}

// Flag reports whether a 0/1 column is set.
func (r Record) Flag(field string) bool {
	return strings.TrimSpace(r[field]) == "1"
}

// toRecords maps raw sheet values (header row first) into Records. Rows
// shorter than the header are padded with empty strings, matching how the
// remote store trims trailing blank cells.
func toRecords(values [][]string) []Record {
	if len(values) == 0 {
		return nil
	}
	header := values[0]
	records := make([]Record, 0, len(values)-1)
	for _, row := range values[1:] {
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}
