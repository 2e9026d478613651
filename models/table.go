package models

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
)

// Table holds tabular CSV data: a header schema plus positional rows.
// Every row has exactly len(Columns) cells, aligned by index.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NumRows returns the number of data rows (header excluded).
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1 if the
// schema does not contain it.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// naMarkers are the textual values treated as a missing cell, matching
// the conventional NA spellings found in exported spreadsheet data.
// Comparison is case-insensitive on the trimmed cell.
var naMarkers = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"#n/a": {},
	"nan":  {},
	"null": {},
	"none": {},
}

// IsMissing reports whether a cell counts as a missing value.
func IsMissing(cell string) bool {
	_, ok := naMarkers[strings.ToLower(strings.TrimSpace(cell))]
	return ok
}

// RowKey computes a row's dedupe fingerprint: the MD5 hex digest of the
// trimmed, lowercased, non-missing cells joined with "_". Two rows that
// differ only in whitespace or letter case hash to the same key.
func RowKey(cells []string) string {
	parts := make([]string, 0, len(cells))
	for _, cell := range cells {
		if IsMissing(cell) {
			continue
		}
		parts = append(parts, strings.ToLower(strings.TrimSpace(cell)))
	}
	sum := md5.Sum([]byte(strings.Join(parts, "_")))
	return hex.EncodeToString(sum[:])
}

// AggregateResult maps each customer to their summed transaction amount.
type AggregateResult struct {
	Totals map[string]float64
}

// CustomerTotal is one aggregated row: a customer and their summed amount.
type CustomerTotal struct {
	CustomerID string
	Total      float64
}

// Sorted returns the totals ordered by customer ID ascending, the order
// used for serialization.
func (r *AggregateResult) Sorted() []CustomerTotal {
	out := make([]CustomerTotal, 0, len(r.Totals))
	for id, total := range r.Totals {
		out = append(out, CustomerTotal{CustomerID: id, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CustomerID < out[j].CustomerID
	})
	return out
}

// SummaryReport holds the computed statistics over the cleaned dataset.
type SummaryReport struct {
	TotalTransactions int
	DistinctCustomers int
	TotalAmount       float64
	AverageAmount     float64
	MinAmount         float64
	MaxAmount         float64
	TopCustomers      []CustomerTotal
}
