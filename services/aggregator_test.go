package services

import (
	"testing"

	"transaction-etl/models"
)

func newTestAggregator() *Aggregator {
	return NewAggregator("customer_id", "transaction_amount", newTestLogger())
}

func cleanedFixture() *models.Table {
	return &models.Table{
		Columns: []string{"customer_id", "transaction_amount"},
		Rows: [][]string{
			{"C1", "10"},
			{"C1", "5"},
			{"C2", "3"},
		},
	}
}

func TestAggregatorSumsPerCustomer(t *testing.T) {
	result, err := newTestAggregator().Aggregate(cleanedFixture())
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	if len(result.Totals) != 2 {
		t.Fatalf("distinct customers: got %d, want 2", len(result.Totals))
	}
	if result.Totals["C1"] != 15 {
		t.Errorf("C1 total: got %v, want 15", result.Totals["C1"])
	}
	if result.Totals["C2"] != 3 {
		t.Errorf("C2 total: got %v, want 3", result.Totals["C2"])
	}
}

func TestAggregatorCustomerSetMatchesCleanedTable(t *testing.T) {
	cleaned := cleanedFixture()
	result, err := newTestAggregator().Aggregate(cleaned)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	want := map[string]struct{}{}
	for _, row := range cleaned.Rows {
		want[row[0]] = struct{}{}
	}
	if len(result.Totals) != len(want) {
		t.Fatalf("customer sets differ: got %d, want %d", len(result.Totals), len(want))
	}
	for id := range want {
		if _, ok := result.Totals[id]; !ok {
			t.Errorf("customer %s missing from aggregation", id)
		}
	}
}

func TestAggregatorSortedOutput(t *testing.T) {
	result, err := newTestAggregator().Aggregate(&models.Table{
		Columns: []string{"customer_id", "transaction_amount"},
		Rows: [][]string{
			{"XYZ789", "35.5"},
			{"ABC123", "45.5"},
			{"LMN456", "50"},
			{"XYZ789", "40"},
		},
	})
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	sorted := result.Sorted()
	wantOrder := []string{"ABC123", "LMN456", "XYZ789"}
	for i, want := range wantOrder {
		if sorted[i].CustomerID != want {
			t.Errorf("sorted[%d]: got %s, want %s", i, sorted[i].CustomerID, want)
		}
	}
	if sorted[2].Total != 75.5 {
		t.Errorf("XYZ789 total: got %v, want 75.5", sorted[2].Total)
	}
}

func TestAggregatorEmptyTable(t *testing.T) {
	result, err := newTestAggregator().Aggregate(&models.Table{
		Columns: []string{"customer_id", "transaction_amount"},
	})
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if len(result.Totals) != 0 {
		t.Errorf("expected no totals for empty table, got %d", len(result.Totals))
	}
}

func TestAggregatorUncleanAmount(t *testing.T) {
	_, err := newTestAggregator().Aggregate(&models.Table{
		Columns: []string{"customer_id", "transaction_amount"},
		Rows:    [][]string{{"C1", "oops"}},
	})
	if err == nil {
		t.Error("expected error for unclean amount, got nil")
	}
}
