package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/neoyoli49-wq/mybudgetny/internal/accounts"
	"github.com/neoyoli49-wq/mybudgetny/internal/core"
)

// errorResponse is the JSON body for every named failure. Code is stable for
// the front end; the message is for humans.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps the domain's named failures onto HTTP statuses. Expected
// failures never surface as 500s.
func writeError(w http.ResponseWriter, err error) {
	var (
		status = http.StatusInternalServerError
		code   = "internal"
	)
	switch {
	case errors.Is(err, accounts.ErrDuplicateAccount):
		status, code = http.StatusConflict, "duplicate_account"
	case errors.Is(err, accounts.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, accounts.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, accounts.ErrSessionExpired):
		status, code = http.StatusUnauthorized, "session_expired"
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrEmptySurname),
		errors.Is(err, core.ErrEmptyEmail),
		errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrEmptyPassword):
		status, code = http.StatusUnprocessableEntity, "validation"
	}
	writeJSON(w, status, errorResponse{Code: code, Error: err.Error()})
}

// decodeJSON parses the request body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "bad_request", Error: "malformed request body"})
		return false
	}
	return true
}

// requireMethod guards a handler to one method.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}
