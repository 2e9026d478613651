package main

import (
	"fmt"
	"os"

	"transaction-etl/config"
	"transaction-etl/ingest"
	"transaction-etl/services"
	"transaction-etl/storage"
	"transaction-etl/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerWithLevel(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Transaction ETL starting ===")
	logger.Info("Config — input: %s | key column: %s | amount column: %s",
		cfg.InputPath, cfg.KeyColumn, cfg.AmountColumn)

	reader := ingest.NewReader(logger)
	table, err := reader.Read(cfg.InputPath)
	if err != nil {
		logger.Error("Failed to load input: %v", err)
		os.Exit(1)
	}

	cleaner := services.NewCleaner(cfg.KeyColumn, cfg.AmountColumn, logger)
	cleaned, err := cleaner.Clean(table)
	if err != nil {
		logger.Error("Cleaning failed: %v", err)
		os.Exit(1)
	}
	if cleaned.NumRows() == 0 {
		logger.Warn("All rows were dropped during cleaning — outputs will be header-only")
	}

	csvWriter := storage.NewCSVWriter(logger)
	if err := csvWriter.WriteTable(cfg.CleanedOutputPath, cleaned); err != nil {
		logger.Error("Failed to write cleaned CSV: %v", err)
		os.Exit(1)
	}

	aggregator := services.NewAggregator(cfg.KeyColumn, cfg.AmountColumn, logger)
	result, err := aggregator.Aggregate(cleaned)
	if err != nil {
		logger.Error("Aggregation failed: %v", err)
		os.Exit(1)
	}

	if err := csvWriter.WriteAggregate(cfg.AggregatedOutputPath, result); err != nil {
		logger.Error("Failed to write aggregated CSV: %v", err)
		os.Exit(1)
	}

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(
			cfg.DSN(), cfg.KeyColumn, cfg.AmountColumn, cfg.MaxRetries, logger)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			os.Exit(1)
		}
		defer pgWriter.Close()

		if err := pgWriter.WriteTransactions(cleaned); err != nil {
			logger.Error("PostgreSQL transaction write failed: %v", err)
			os.Exit(1)
		}
		if err := pgWriter.WriteTotals(result); err != nil {
			logger.Error("PostgreSQL totals write failed: %v", err)
			os.Exit(1)
		}

		// report from what the database actually holds
		if stored, err := pgWriter.FetchTotals(); err == nil {
			result = stored
		} else {
			logger.Warn("Failed to read totals back from PostgreSQL: %v", err)
		}
	}

	insightSvc := services.NewInsightService(cfg.AmountColumn, logger)
	report := insightSvc.Generate(cleaned, result)
	insightSvc.Print(report)

	fmt.Printf("  Done. Cleaned data → %s | Aggregated totals → %s\n\n",
		cfg.CleanedOutputPath, cfg.AggregatedOutputPath)
}
