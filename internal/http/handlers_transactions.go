package http

import (
	"net/http"
	"strings"

	"github.com/neoyoli49-wq/mybudgetny/internal/core"
)

type addTransactionRequest struct {
	Amount   string `json:"amount"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// handleTransactions lists the logged-in user's transactions (GET) or
// records a new one (POST). Amounts arrive as decimal strings, the way the
// entry form produces them.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		txs, err := s.manager.Transactions()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"transactions": txs})

	case http.MethodPost:
		var req addTransactionRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		amount, err := core.ParseAmount(req.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		tx, err := s.manager.AddTransaction(r.Context(), amount, core.TransactionType(req.Type), req.Category)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, tx)

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleTransactionByID deletes one transaction: DELETE /api/transactions/{id}.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodDelete) {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if err := s.manager.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted."})
}
