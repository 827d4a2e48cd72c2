package http

import (
	"net/http"
	"regexp"
	"time"

	"github.com/neoyoli49-wq/mybudgetny/internal/budget"
	"github.com/neoyoli49-wq/mybudgetny/internal/core"
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type dashboardResponse struct {
	Month        core.MonthKey         `json:"month"`
	Totals       budget.Totals         `json:"totals"`
	Breakdown    map[string]core.Money `json:"breakdown"`
	Transactions []core.Transaction    `json:"transactions"`
}

// handleDashboard returns the month's totals, expense breakdown, and the
// matching transactions. month defaults to the current month; an explicit
// value must be YYYY-MM.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	month := core.MonthKeyOf(time.Now().UTC())
	if v := r.URL.Query().Get("month"); v != "" {
		if !monthKeyPattern.MatchString(v) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Code: "bad_request", Error: "month must be YYYY-MM",
			})
			return
		}
		month = core.MonthKey(v)
	}

	txs, err := s.manager.Transactions()
	if err != nil {
		writeError(w, err)
		return
	}

	inMonth := make([]core.Transaction, 0)
	for _, tx := range txs {
		if month.Contains(tx.Date) {
			inMonth = append(inMonth, tx)
		}
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Month:        month,
		Totals:       budget.MonthlyTotals(txs, month),
		Breakdown:    budget.CategoryBreakdown(txs, month),
		Transactions: inMonth,
	})
}

// handlePredictor returns the trailing-average forecast and advice.
func (s *Server) handlePredictor(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	txs, err := s.manager.Transactions()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, budget.Forecast(txs, time.Now().UTC()))
}
