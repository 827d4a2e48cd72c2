package budget

import (
	"strings"
	"testing"
	"time"

	"github.com/neoyoli49-wq/mybudgetny/internal/core"
)

func tx(id string, cents int64, typ core.TransactionType, category, date string) core.Transaction {
	return core.Transaction{ID: id, Amount: core.Money{Cents: cents}, Type: typ, Category: category, Date: date}
}

func TestMonthlyTotals(t *testing.T) {
	txs := []core.Transaction{
		tx("1", 50000, core.Income, "", "2024-05-01T10:00:00Z"),
		tx("2", 20000, core.Expense, "food", "2024-05-15T12:00:00Z"),
		tx("3", 99900, core.Expense, "rent", "2024-04-01T00:00:00Z"), // other month
	}

	got := MonthlyTotals(txs, "2024-05")
	if got.Income.Cents != 50000 || got.Expenses.Cents != 20000 || got.Net.Cents != 30000 {
		t.Fatalf("unexpected totals: %+v", got)
	}

	// Order independence: reversing the slice changes nothing.
	rev := []core.Transaction{txs[2], txs[1], txs[0]}
	if MonthlyTotals(rev, "2024-05") != got {
		t.Fatalf("totals depend on transaction order")
	}

	// A month with no activity nets to zero.
	empty := MonthlyTotals(txs, "2023-01")
	if empty.Income.Cents != 0 || empty.Expenses.Cents != 0 || empty.Net.Cents != 0 {
		t.Fatalf("expected zero totals, got %+v", empty)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []core.Transaction{
		tx("1", 20000, core.Expense, "food", "2024-05-01"),
		tx("2", 5000, core.Expense, "food", "2024-05-20"),
		tx("3", 8000, core.Expense, "transport", "2024-05-02"),
		tx("4", 7000, core.Expense, "", "2024-05-03"),          // uncategorized, skipped
		tx("5", 90000, core.Income, "salary", "2024-05-01"),    // income, skipped
		tx("6", 11000, core.Expense, "food", "2024-06-01"),     // other month
	}

	got := CategoryBreakdown(txs, "2024-05")
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %v", got)
	}
	if got["food"].Cents != 25000 || got["transport"].Cents != 8000 {
		t.Fatalf("unexpected breakdown: %v", got)
	}
}

func TestTopExpenseCategory(t *testing.T) {
	top, ok := TopExpenseCategory(map[string]core.Money{
		"food":      {Cents: 25000},
		"transport": {Cents: 8000},
	})
	if !ok || top != "food" {
		t.Fatalf("expected food, got %q ok=%v", top, ok)
	}

	// Deterministic tie-break: lexicographically smallest name wins.
	top, ok = TopExpenseCategory(map[string]core.Money{
		"zebra": {Cents: 100},
		"apple": {Cents: 100},
		"mango": {Cents: 50},
	})
	if !ok || top != "apple" {
		t.Fatalf("expected apple on tie, got %q", top)
	}

	if _, ok := TopExpenseCategory(nil); ok {
		t.Fatalf("expected no top category for empty breakdown")
	}
}

func TestTrailingAverage(t *testing.T) {
	ref := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx("1", 30000, core.Income, "", "2024-05-01"),
		tx("2", 15000, core.Income, "", "2024-04-01"),
		// 2024-03 has no activity: counts as zero net.
	}

	avg, ok := TrailingAverage(txs, ref, 3)
	if !ok {
		t.Fatalf("expected data")
	}
	if want := float64(30000+15000+0) / 3; avg != want {
		t.Fatalf("expected %v, got %v", want, avg)
	}

	if _, ok := TrailingAverage(txs, ref, 0); ok {
		t.Fatalf("expected no data for empty window")
	}
}

func TestTrailingAverageJanuaryWrap(t *testing.T) {
	// The window ending in January reaches back into the previous year
	// instead of dropping months.
	ref := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx("1", 30000, core.Income, "", "2023-12-05"),
		tx("2", 6000, core.Expense, "food", "2023-11-20"),
	}

	avg, ok := TrailingAverage(txs, ref, 3)
	if !ok {
		t.Fatalf("expected data")
	}
	if want := float64(0+30000-6000) / 3; avg != want {
		t.Fatalf("expected %v, got %v", want, avg)
	}
}

func TestProjectNextMonth(t *testing.T) {
	// Flat continuation: projection equals the average.
	for _, avg := range []float64{0, 12345, -999.5} {
		if got := ProjectNextMonth(avg); got != avg {
			t.Fatalf("expected %v, got %v", avg, got)
		}
	}
}

func TestAdvice(t *testing.T) {
	breakdown := map[string]core.Money{"food": {Cents: 20000}}

	positive := Advice(30000, breakdown)
	if !strings.Contains(positive, "food") || !strings.Contains(positive, "Great job") {
		t.Fatalf("unexpected positive advice: %q", positive)
	}

	negative := Advice(-5000, breakdown)
	if !strings.Contains(negative, "food") || !strings.Contains(negative, "higher than your income") {
		t.Fatalf("unexpected negative advice: %q", negative)
	}

	neutral := Advice(0, breakdown)
	if !strings.Contains(neutral, "balanced") {
		t.Fatalf("unexpected neutral advice: %q", neutral)
	}

	// Empty breakdown falls back to the placeholder.
	if got := Advice(100, nil); !strings.Contains(got, "N/A") {
		t.Fatalf("expected placeholder category, got %q", got)
	}
}

func TestForecast(t *testing.T) {
	ref := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx("1", 50000, core.Income, "", "2024-05-01"),
		tx("2", 20000, core.Expense, "food", "2024-05-02"),
	}

	out := Forecast(txs, ref)
	if !out.HasData {
		t.Fatalf("expected data")
	}
	if want := float64(30000) / 3; out.AverageCents != want || out.ProjectedCents != want {
		t.Fatalf("unexpected forecast: %+v", out)
	}
	if len(out.Months) != DefaultWindowMonths || out.Months[0] != "2024-05" {
		t.Fatalf("unexpected window: %v", out.Months)
	}
	if !strings.Contains(out.Advice, "food") {
		t.Fatalf("advice should name the top category: %q", out.Advice)
	}

	// No transactions at all still yields a forecast: each window month
	// counts as zero activity, never NaN.
	zero := Forecast(nil, ref)
	if !zero.HasData || zero.AverageCents != 0 || zero.ProjectedCents != 0 {
		t.Fatalf("unexpected empty-history forecast: %+v", zero)
	}
	if !strings.Contains(zero.Advice, "balanced") {
		t.Fatalf("expected neutral advice for zero net, got %q", zero.Advice)
	}
}
