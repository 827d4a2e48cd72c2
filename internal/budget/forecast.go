package budget

import (
	"fmt"
	"time"

	"github.com/neoyoli49-wq/mybudgetny/internal/core"
)

// DefaultWindowMonths is the trailing window the predictor view uses.
const DefaultWindowMonths = 3

// NoDataAdvice is returned when the forecast has no qualifying months.
const NoDataAdvice = "Not enough data for a prediction. Please add transactions over a few months to see a forecast!"

// Outlook bundles everything the predictor view renders.
type Outlook struct {
	Months       []core.MonthKey `json:"months"`
	AverageCents float64         `json:"averageNetCents"`
	ProjectedCents float64       `json:"projectedNetCents"`
	Advice       string          `json:"advice"`
	HasData      bool            `json:"hasData"`
}

// TrailingAverage returns the mean net savings in cents over the
// windowMonths months ending at ref. Month keys near a year boundary wrap
// (January's predecessor is December of the previous year), so every window
// month qualifies; absent months count as zero activity. ok is false only
// when the window itself is empty.
func TrailingAverage(txs []core.Transaction, ref time.Time, windowMonths int) (float64, bool) {
	months := core.Window(ref, windowMonths)
	if len(months) == 0 {
		return 0, false
	}
	var sum int64
	for _, net := range NetByMonth(txs, months) {
		sum += net.Cents
	}
	return float64(sum) / float64(len(months)), true
}

// ProjectNextMonth projects next month's net as the trailing average itself:
// a flat continuation, not a regression. Simplicity is the point here; do
// not fit a fancier model.
func ProjectNextMonth(average float64) float64 {
	return average
}

// Advice renders one of three templated messages chosen by the sign of the
// net savings, naming the top expense category (or "N/A" when the breakdown
// is empty).
func Advice(netSavingsCents float64, breakdown map[string]core.Money) string {
	top, ok := TopExpenseCategory(breakdown)
	if !ok {
		top = "N/A"
	}
	switch {
	case netSavingsCents > 0:
		return fmt.Sprintf("Great job! You are saving money. Your biggest expense is %s, consider reducing spending in this area to save even more.", top)
	case netSavingsCents < 0:
		return fmt.Sprintf("It seems your expenses are higher than your income. To improve your budget, focus on reducing spending on %s, which is your highest expense.", top)
	default:
		return "Your income and expenses are balanced. Keep tracking to identify areas for potential savings!"
	}
}

// Forecast computes the full predictor payload: trailing average, flat
// projection, and advice based on the expense breakdown across the whole
// transaction history (matching what the advice text has always described).
func Forecast(txs []core.Transaction, ref time.Time) Outlook {
	months := core.Window(ref, DefaultWindowMonths)
	avg, ok := TrailingAverage(txs, ref, DefaultWindowMonths)
	if !ok {
		return Outlook{Advice: NoDataAdvice}
	}

	breakdown := make(map[string]core.Money)
	for _, tx := range txs {
		if tx.Type != core.Expense || tx.Category == "" {
			continue
		}
		sum := breakdown[tx.Category]
		sum.Cents += tx.Amount.Cents
		breakdown[tx.Category] = sum
	}

	return Outlook{
		Months:         months,
		AverageCents:   avg,
		ProjectedCents: ProjectNextMonth(avg),
		Advice:         Advice(avg, breakdown),
		HasData:        true,
	}
}
