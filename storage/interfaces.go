package storage

import "transaction-etl/models"

// TableWriter persists a cleaned Table to a file.
type TableWriter interface {
	WriteTable(path string, t *models.Table) error
}

// AggregateWriter persists per-customer totals to a file.
type AggregateWriter interface {
	WriteAggregate(path string, r *models.AggregateResult) error
}

// TransactionSink is the interface a database backend must satisfy.
type TransactionSink interface {
	WriteTransactions(t *models.Table) error
	WriteTotals(r *models.AggregateResult) error
	Close() error
}
