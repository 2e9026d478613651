package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"transaction-etl/models"
	"transaction-etl/utils"
)

// topCustomerCount limits the "top customers" section of the report.
const topCustomerCount = 5

// InsightService computes summary statistics over the cleaned dataset.
type InsightService struct {
	amountColumn string
	logger       *utils.Logger
}

// NewInsightService creates an InsightService reading the given amount column.
func NewInsightService(amountColumn string, logger *utils.Logger) *InsightService {
	return &InsightService{amountColumn: amountColumn, logger: logger}
}

// Generate builds a SummaryReport from the cleaned table and its
// aggregation. Amounts are assumed clean; cells that fail to parse are
// skipped from the statistics.
func (s *InsightService) Generate(cleaned *models.Table, agg *models.AggregateResult) *models.SummaryReport {
	report := &models.SummaryReport{}

	if cleaned == nil || cleaned.NumRows() == 0 {
		return report
	}

	report.TotalTransactions = cleaned.NumRows()
	report.DistinctCustomers = len(agg.Totals)

	amountIdx := cleaned.ColumnIndex(s.amountColumn)
	if amountIdx >= 0 {
		first := true
		for _, row := range cleaned.Rows {
			amount, err := strconv.ParseFloat(row[amountIdx], 64)
			if err != nil {
				continue
			}
			report.TotalAmount += amount
			if first {
				report.MinAmount = amount
				report.MaxAmount = amount
				first = false
				continue
			}
			if amount < report.MinAmount {
				report.MinAmount = amount
			}
			if amount > report.MaxAmount {
				report.MaxAmount = amount
			}
		}
		report.AverageAmount = round2(report.TotalAmount / float64(report.TotalTransactions))
	}

	// Top customers by total spend
	byTotal := agg.Sorted()
	sort.Slice(byTotal, func(i, j int) bool {
		return byTotal[i].Total > byTotal[j].Total
	})
	if len(byTotal) > topCustomerCount {
		byTotal = byTotal[:topCustomerCount]
	}
	report.TopCustomers = byTotal

	return report
}

// Print renders the report to stdout.
func (s *InsightService) Print(r *models.SummaryReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 TRANSACTION SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Cleaned transactions : \033[1m%d\033[0m\n", r.TotalTransactions)
	fmt.Printf("  Distinct customers   : \033[1m%d\033[0m\n", r.DistinctCustomers)
	fmt.Println()

	// Amount stats
	fmt.Printf("\033[1;33m  Amount Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.TotalTransactions > 0 {
		fmt.Printf("  Total amount   : \033[1;32m%.2f\033[0m\n", r.TotalAmount)
		fmt.Printf("  Average amount : \033[1;32m%.2f\033[0m\n", r.AverageAmount)
		fmt.Printf("  Minimum amount : \033[1;32m%.2f\033[0m\n", r.MinAmount)
		fmt.Printf("  Maximum amount : \033[1;32m%.2f\033[0m\n", r.MaxAmount)
	} else {
		fmt.Printf("  No transactions survived cleaning\n")
	}
	fmt.Println()

	// Top customers
	fmt.Printf("\033[1;33m  Top %d Customers by Total Spend\033[0m\n", topCustomerCount)
	fmt.Printf("  %s\n", thin)
	if len(r.TopCustomers) == 0 {
		fmt.Printf("  No customer data\n")
	} else {
		maxTotal := r.TopCustomers[0].Total
		for i, ct := range r.TopCustomers {
			// refunds can drive a total negative; no bar for those
			bar := ""
			if maxTotal > 0 && ct.Total > 0 {
				bar = strings.Repeat("█", 1+int(ct.Total/maxTotal*20))
			}
			fmt.Printf("  \033[1m%d.\033[0m %-20s %s \033[1;32m%.2f\033[0m\n",
				i+1, truncate(ct.CustomerID, 18), bar, ct.Total)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
