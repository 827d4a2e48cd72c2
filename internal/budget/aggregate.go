// Package budget aggregates a user's transactions into monthly summaries and
// a simple trend-based forecast. All functions are pure: no operation errors,
// and empty input yields well-defined zero results.
package budget

import (
	"github.com/neoyoli49-wq/mybudgetny/internal/core"
)

// Totals is the income/expense/net summary for one month.
type Totals struct {
	Income   core.Money `json:"income"`
	Expenses core.Money `json:"expenses"`
	Net      core.Money `json:"net"`
}

// MonthlyTotals sums amounts for transactions whose date falls in month,
// split by type. The result does not depend on transaction order.
func MonthlyTotals(txs []core.Transaction, month core.MonthKey) Totals {
	var t Totals
	for _, tx := range txs {
		if !month.Contains(tx.Date) {
			continue
		}
		switch tx.Type {
		case core.Income:
			t.Income.Cents += tx.Amount.Cents
		case core.Expense:
			t.Expenses.Cents += tx.Amount.Cents
		}
	}
	t.Net.Cents = t.Income.Cents - t.Expenses.Cents
	return t
}

// CategoryBreakdown sums expense amounts for the month grouped by category.
// Expenses without a category are skipped; they cannot be ranked or named in
// advice.
func CategoryBreakdown(txs []core.Transaction, month core.MonthKey) map[string]core.Money {
	breakdown := make(map[string]core.Money)
	for _, tx := range txs {
		if tx.Type != core.Expense || tx.Category == "" {
			continue
		}
		if !month.Contains(tx.Date) {
			continue
		}
		sum := breakdown[tx.Category]
		sum.Cents += tx.Amount.Cents
		breakdown[tx.Category] = sum
	}
	return breakdown
}

// TopExpenseCategory returns the category with the largest total and false
// when the breakdown is empty. Ties break to the lexicographically smallest
// name so the result is deterministic across map iteration orders.
func TopExpenseCategory(breakdown map[string]core.Money) (string, bool) {
	var (
		top   string
		max   int64
		found bool
	)
	for name, amount := range breakdown {
		if !found || amount.Cents > max || (amount.Cents == max && name < top) {
			top = name
			max = amount.Cents
			found = true
		}
	}
	return top, found
}

// NetByMonth computes the net (income minus expenses) for each given month.
// Months with no activity net to zero.
func NetByMonth(txs []core.Transaction, months []core.MonthKey) []core.Money {
	nets := make([]core.Money, len(months))
	for i, month := range months {
		nets[i] = MonthlyTotals(txs, month).Net
	}
	return nets
}
