package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"transaction-etl/models"
	"transaction-etl/utils"
)

// CSVWriter serializes tables and aggregation results to CSV files.
type CSVWriter struct {
	logger *utils.Logger
}

// NewCSVWriter creates a CSVWriter with the given logger.
func NewCSVWriter(logger *utils.Logger) *CSVWriter {
	return &CSVWriter{logger: logger}
}

// WriteTable writes the table's header and rows to path, creating
// intermediate directories as needed. An existing file is truncated.
func (c *CSVWriter) WriteTable(path string, t *models.Table) error {
	return c.writeFile(path, t.Columns, t.Rows)
}

// WriteAggregate writes per-customer totals to path, one row per
// customer, sorted by customer ID.
func (c *CSVWriter) WriteAggregate(path string, r *models.AggregateResult) error {
	rows := make([][]string, 0, len(r.Totals))
	for _, ct := range r.Sorted() {
		rows = append(rows, []string{
			ct.CustomerID,
			strconv.FormatFloat(ct.Total, 'f', -1, 64),
		})
	}
	return c.writeFile(path, []string{"customer_id", "transaction_amount"}, rows)
}

func (c *CSVWriter) writeFile(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush %q: %w", path, err)
	}

	c.logger.Info("[storage] Wrote %d rows to %s", len(rows), path)
	return nil
}
