package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"transaction-etl/models"
	"transaction-etl/utils"
)

func newTestWriter() *CSVWriter {
	return NewCSVWriter(utils.NewLoggerWithLevel(utils.LevelError))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestWriteTableRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cleaned_data.csv")
	table := &models.Table{
		Columns: []string{"customer_id", "transaction_amount", "note"},
		Rows: [][]string{
			{"C1", "10", "has, comma"},
			{"C2", "3", ""},
		},
	}

	if err := newTestWriter().WriteTable(path, table); err != nil {
		t.Fatalf("WriteTable returned error: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 3 {
		t.Fatalf("records: got %d, want 3 (header + 2 rows)", len(records))
	}
	if !reflect.DeepEqual(records[0], table.Columns) {
		t.Errorf("header: got %v, want %v", records[0], table.Columns)
	}
	if !reflect.DeepEqual(records[1], table.Rows[0]) {
		t.Errorf("row 1: got %v, want %v", records[1], table.Rows[0])
	}
}

func TestWriteAggregateSortedByCustomer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aggregated_transactions.csv")
	agg := &models.AggregateResult{Totals: map[string]float64{
		"XYZ789": 75.5,
		"ABC123": 15,
	}}

	if err := newTestWriter().WriteAggregate(path, agg); err != nil {
		t.Fatalf("WriteAggregate returned error: %v", err)
	}

	records := readCSV(t, path)
	want := [][]string{
		{"customer_id", "transaction_amount"},
		{"ABC123", "15"},
		{"XYZ789", "75.5"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("aggregated csv: got %v, want %v", records, want)
	}
}

func TestWriteTableHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned_data.csv")
	table := &models.Table{Columns: []string{"customer_id", "transaction_amount"}}

	if err := newTestWriter().WriteTable(path, table); err != nil {
		t.Fatalf("WriteTable returned error: %v", err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Errorf("records: got %d, want header only", len(records))
	}
}

func TestWriteTableBadPath(t *testing.T) {
	dir := t.TempDir()
	// a file where a directory is expected makes MkdirAll/Create fail
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	path := filepath.Join(blocker, "out.csv")

	err := newTestWriter().WriteTable(path, &models.Table{Columns: []string{"a"}})
	if err == nil {
		t.Error("expected write error for unusable path, got nil")
	}
}
