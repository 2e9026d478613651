package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"transaction-etl/models"
	"transaction-etl/utils"
)

// PostgresWriter persists cleaned transactions and customer totals to
// PostgreSQL. It is an optional sink; the CSV outputs do not depend on it.
type PostgresWriter struct {
	db           *sql.DB
	keyColumn    string
	amountColumn string
	logger       *utils.Logger
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter. The ping is
// retried with backoff since the database may still be starting.
func NewPostgresWriter(dsn, keyColumn, amountColumn string, maxRetries int, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{
		MaxAttempts: maxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{
		db:           db,
		keyColumn:    keyColumn,
		amountColumn: amountColumn,
		logger:       logger,
	}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			id          SERIAL PRIMARY KEY,
			customer_id TEXT           NOT NULL,
			amount      NUMERIC(14,2)  NOT NULL,
			row_hash    CHAR(32)       UNIQUE NOT NULL,
			extras      JSONB          NOT NULL DEFAULT '{}',
			created_at  TIMESTAMPTZ    NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS customer_totals (
			customer_id TEXT          PRIMARY KEY,
			total       NUMERIC(14,2) NOT NULL,
			updated_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id);
	`)
	return err
}

// WriteTransactions batch-inserts cleaned rows. Rows already present
// (same fingerprint) are skipped, so re-running an input is idempotent.
func (pw *PostgresWriter) WriteTransactions(t *models.Table) error {
	if t.NumRows() == 0 {
		return nil
	}

	keyIdx := t.ColumnIndex(pw.keyColumn)
	amountIdx := t.ColumnIndex(pw.amountColumn)
	if keyIdx < 0 || amountIdx < 0 {
		return fmt.Errorf("postgres: table missing %q or %q column", pw.keyColumn, pw.amountColumn)
	}

	const batchSize = 50
	for i := 0; i < t.NumRows(); i += batchSize {
		end := i + batchSize
		if end > t.NumRows() {
			end = t.NumRows()
		}
		if err := pw.insertBatch(t, t.Rows[i:end], keyIdx, amountIdx); err != nil {
			return err
		}
	}

	pw.logger.Info("[postgres] Stored %d transactions", t.NumRows())
	return nil
}

func (pw *PostgresWriter) insertBatch(t *models.Table, batch [][]string, keyIdx, amountIdx int) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*4)

	for idx, row := range batch {
		amount, err := strconv.ParseFloat(row[amountIdx], 64)
		if err != nil {
			return fmt.Errorf("postgres: unclean amount %q: %w", row[amountIdx], err)
		}

		extras, err := rowExtras(t.Columns, row, keyIdx, amountIdx)
		if err != nil {
			return err
		}

		base := idx * 4
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d)", base+1, base+2, base+3, base+4))
		valueArgs = append(valueArgs, row[keyIdx], amount, models.RowKey(row), extras)
	}

	query := fmt.Sprintf(`
		INSERT INTO transactions (customer_id, amount, row_hash, extras)
		VALUES %s
		ON CONFLICT (row_hash) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

// rowExtras packs the columns other than key and amount into a JSON object.
func rowExtras(columns, row []string, keyIdx, amountIdx int) ([]byte, error) {
	extras := make(map[string]string, len(row))
	for i, cell := range row {
		if i == keyIdx || i == amountIdx {
			continue
		}
		extras[columns[i]] = cell
	}
	b, err := json.Marshal(extras)
	if err != nil {
		return nil, fmt.Errorf("postgres: marshal extras: %w", err)
	}
	return b, nil
}

// WriteTotals upserts the per-customer totals.
func (pw *PostgresWriter) WriteTotals(r *models.AggregateResult) error {
	for _, ct := range r.Sorted() {
		_, err := pw.db.Exec(`
			INSERT INTO customer_totals (customer_id, total, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (customer_id) DO UPDATE SET total = EXCLUDED.total, updated_at = NOW()
		`, ct.CustomerID, ct.Total)
		if err != nil {
			return fmt.Errorf("postgres: upsert total for %s: %w", ct.CustomerID, err)
		}
	}

	pw.logger.Info("[postgres] Stored %d customer totals", len(r.Totals))
	return nil
}

// FetchTotals reads back the stored totals, ordered by customer ID.
func (pw *PostgresWriter) FetchTotals() (*models.AggregateResult, error) {
	rows, err := pw.db.Query(`SELECT customer_id, total FROM customer_totals ORDER BY customer_id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch totals: %w", err)
	}
	defer rows.Close()

	result := &models.AggregateResult{Totals: make(map[string]float64)}
	for rows.Next() {
		var id string
		var total float64
		if err := rows.Scan(&id, &total); err != nil {
			return nil, fmt.Errorf("postgres: scan total: %w", err)
		}
		result.Totals[id] = total
	}
	return result, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
