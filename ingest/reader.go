package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"transaction-etl/models"
	"transaction-etl/utils"
)

var (
	// ErrNotFound means the input path does not resolve to a file.
	ErrNotFound = errors.New("input file not found")
	// ErrEmptyInput means the input file has a header but zero data rows
	// (or no content at all).
	ErrEmptyInput = errors.New("input contains no data rows")
)

// Reader loads a transaction CSV from disk into a Table.
type Reader struct {
	logger *utils.Logger
}

// NewReader creates a Reader with the given logger.
func NewReader(logger *utils.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read parses the CSV at path into a Table. The first row is the header;
// every data row must have the same number of cells. The file handle is
// released before Read returns.
func (r *Reader) Read(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("ingest: open %q: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read header of %q: %w", path, err)
	}

	table := &models.Table{Columns: header}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read row %d of %q: %w", table.NumRows()+2, path, err)
		}
		table.Rows = append(table.Rows, row)
	}

	if table.NumRows() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}

	r.logger.Info("[ingest] Loaded %d rows (%d columns) from %s",
		table.NumRows(), len(table.Columns), path)
	return table, nil
}
