package services

import (
	"fmt"
	"strconv"

	"transaction-etl/models"
	"transaction-etl/utils"
)

// Aggregator groups a cleaned Table by the key column and sums the
// amount column per group.
type Aggregator struct {
	keyColumn    string
	amountColumn string
	logger       *utils.Logger
}

// NewAggregator creates an Aggregator for the given key and amount columns.
func NewAggregator(keyColumn, amountColumn string, logger *utils.Logger) *Aggregator {
	return &Aggregator{keyColumn: keyColumn, amountColumn: amountColumn, logger: logger}
}

// Aggregate sums transaction amounts per customer. It expects a cleaned
// table: every amount cell must already parse as a float. Customers with
// no rows never appear in the result.
func (a *Aggregator) Aggregate(t *models.Table) (*models.AggregateResult, error) {
	keyIdx := t.ColumnIndex(a.keyColumn)
	if keyIdx < 0 {
		return nil, fmt.Errorf("aggregator: input has no %q column", a.keyColumn)
	}
	amountIdx := t.ColumnIndex(a.amountColumn)
	if amountIdx < 0 {
		return nil, fmt.Errorf("aggregator: input has no %q column", a.amountColumn)
	}

	totals := make(map[string]float64)
	for i, row := range t.Rows {
		amount, err := strconv.ParseFloat(row[amountIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("aggregator: row %d: unclean amount %q: %w",
				i+1, row[amountIdx], err)
		}
		totals[row[keyIdx]] += amount
	}

	a.logger.Info("[aggregator] Summed %d rows into %d customer totals",
		t.NumRows(), len(totals))
	return &models.AggregateResult{Totals: totals}, nil
}
