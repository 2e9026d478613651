package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"transaction-etl/utils"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input_data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestReaderLoadsRows(t *testing.T) {
	path := writeTempCSV(t,
		"transaction_id,customer_id,transaction_amount,date\n"+
			"1001,ABC123,45.67,10/01/2024\n"+
			"1002,XYZ789,20,11/01/2024\n")

	r := NewReader(utils.NewLogger())
	table, err := r.Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	if got := table.NumRows(); got != 2 {
		t.Errorf("NumRows: got %d, want 2", got)
	}
	if len(table.Columns) != 4 {
		t.Errorf("Columns: got %d, want 4", len(table.Columns))
	}
	if table.Rows[0][1] != "ABC123" {
		t.Errorf("cell (0, customer_id): got %q, want %q", table.Rows[0][1], "ABC123")
	}
}

func TestReaderMissingFile(t *testing.T) {
	r := NewReader(utils.NewLogger())
	_, err := r.Read(filepath.Join(t.TempDir(), "does_not_exist.csv"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReaderHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "customer_id,transaction_amount\n")

	r := NewReader(utils.NewLogger())
	_, err := r.Read(path)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestReaderEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	r := NewReader(utils.NewLogger())
	_, err := r.Read(path)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestReaderRaggedRow(t *testing.T) {
	path := writeTempCSV(t,
		"customer_id,transaction_amount\n"+
			"ABC123,45.67,extra\n")

	r := NewReader(utils.NewLogger())
	_, err := r.Read(path)
	if err == nil {
		t.Error("expected error for ragged row, got nil")
	}
}
