package services

import (
	"fmt"
	"strconv"
	"strings"

	"transaction-etl/models"
	"transaction-etl/utils"
)

// ConversionError reports a transaction amount that could not be parsed
// as a float. A bad amount aborts the run; rows are never silently
// coerced.
type ConversionError struct {
	Row    int // 1-based data row number in the input file
	Column string
	Value  string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("input row %d: column %q: cannot convert %q to float",
		e.Row, e.Column, e.Value)
}

// Cleaner removes unusable rows from a Table and normalizes the amount
// column: rows with missing cells are dropped, exact duplicates are
// dropped (first occurrence kept), and every amount is converted to a
// canonical float representation.
type Cleaner struct {
	keyColumn    string
	amountColumn string
	logger       *utils.Logger
}

// NewCleaner creates a Cleaner for the given key and amount columns.
func NewCleaner(keyColumn, amountColumn string, logger *utils.Logger) *Cleaner {
	return &Cleaner{keyColumn: keyColumn, amountColumn: amountColumn, logger: logger}
}

// numberedRow pairs a row's cells with its original position in the
// input, so errors raised after rows have been dropped still point at
// the right line.
type numberedRow struct {
	num   int // 1-based data row number in the input
	cells []string
}

// Clean runs the three cleaning passes in order: drop-missing, dedupe,
// amount conversion. Deduplication happens on the raw textual rows, so
// "10" and "10.0" are distinct until conversion. The input table is not
// modified; surviving rows keep their input order.
func (c *Cleaner) Clean(t *models.Table) (*models.Table, error) {
	if t.ColumnIndex(c.keyColumn) < 0 {
		return nil, fmt.Errorf("cleaner: input has no %q column", c.keyColumn)
	}
	amountIdx := t.ColumnIndex(c.amountColumn)
	if amountIdx < 0 {
		return nil, fmt.Errorf("cleaner: input has no %q column", c.amountColumn)
	}

	rows := make([]numberedRow, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = numberedRow{num: i + 1, cells: row}
	}

	rows = c.dropMissing(rows)
	rows = c.dedupe(rows)

	rows, err := c.convertAmounts(rows, amountIdx)
	if err != nil {
		return nil, err
	}

	cleaned := make([][]string, len(rows))
	for i, row := range rows {
		cleaned[i] = row.cells
	}

	c.logger.Info("[cleaner] Cleaned %d → %d rows (dropped %d)",
		t.NumRows(), len(cleaned), t.NumRows()-len(cleaned))
	return &models.Table{Columns: t.Columns, Rows: cleaned}, nil
}

// dropMissing removes every row containing a missing cell in any column.
func (c *Cleaner) dropMissing(rows []numberedRow) []numberedRow {
	kept := make([]numberedRow, 0, len(rows))
	for _, row := range rows {
		if rowHasMissing(row.cells) {
			c.logger.Debug("[cleaner] Dropping row %d with missing value: %v", row.num, row.cells)
			continue
		}
		kept = append(kept, row)
	}
	c.logger.Info("[cleaner] Removed %d rows with missing values", len(rows)-len(kept))
	return kept
}

// dedupe removes rows whose fingerprint has been seen before, keeping
// the first occurrence.
func (c *Cleaner) dedupe(rows []numberedRow) []numberedRow {
	seen := utils.NewHashSet()
	kept := make([]numberedRow, 0, len(rows))
	for _, row := range rows {
		if !seen.Add(models.RowKey(row.cells)) {
			c.logger.Debug("[cleaner] Duplicate row %d skipped: %v", row.num, row.cells)
			continue
		}
		kept = append(kept, row)
	}
	c.logger.Info("[cleaner] Removed %d duplicate rows", len(rows)-len(kept))
	return kept
}

// convertAmounts parses the amount cell of every row and rewrites it in
// canonical form. The first non-numeric value fails the whole pass.
func (c *Cleaner) convertAmounts(rows []numberedRow, amountIdx int) ([]numberedRow, error) {
	out := make([]numberedRow, 0, len(rows))
	for _, row := range rows {
		raw := strings.TrimSpace(row.cells[amountIdx])
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &ConversionError{Row: row.num, Column: c.amountColumn, Value: row.cells[amountIdx]}
		}

		converted := make([]string, len(row.cells))
		copy(converted, row.cells)
		converted[amountIdx] = strconv.FormatFloat(val, 'f', -1, 64)
		out = append(out, numberedRow{num: row.num, cells: converted})
	}
	c.logger.Info("[cleaner] Converted %q values to float", c.amountColumn)
	return out, nil
}

func rowHasMissing(row []string) bool {
	for _, cell := range row {
		if models.IsMissing(cell) {
			return true
		}
	}
	return false
}
