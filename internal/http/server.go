// Package http exposes the account and budget operations as a small JSON
// API. Rendering (forms, tables, charts) lives in an external front end that
// calls these endpoints and draws the returned structures.
package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/neoyoli49-wq/mybudgetny/internal/accounts"
	"github.com/neoyoli49-wq/mybudgetny/internal/log"
)

type Server struct {
	http.Server
	manager   *accounts.Manager
	logger    *log.Logger
	startedAt time.Time
}

func NewServer(addr string, manager *accounts.Manager, logger *log.Logger) *Server {
	s := &Server{
		manager:   manager,
		logger:    logger.WithComponent(log.ComponentHTTP),
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/signup", s.handleSignup)
	mux.HandleFunc("/api/verify", s.handleVerify)
	mux.HandleFunc("/api/password", s.handleCreatePassword)
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/logout", s.handleLogout)
	mux.HandleFunc("/api/forgot-password", s.handleForgotPassword)

	mux.HandleFunc("/api/profile", s.handleProfile)
	mux.HandleFunc("/api/profile/password", s.handleChangePassword)

	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)

	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/predictor", s.handlePredictor)

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.withTrace(mux),
	}
	return s
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(health)
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.manager == nil {
		checks["accounts"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["accounts"] = "ok"
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(response)
}

