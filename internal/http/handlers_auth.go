package http

import (
	"net/http"
)

type signupRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

// handleSignup registers an account and reports that a verification key was
// sent. The key itself travels through the notifier, standing in for email
// delivery; it is not echoed back to the caller.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.manager.Signup(r.Context(), req.Name, req.Surname, req.Email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "A verification key has been sent to " + req.Email + ".",
	})
}

type verifyRequest struct {
	Email string `json:"email"`
	Key   string `json:"key"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.manager.VerifyKey(r.Context(), req.Email, req.Key); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Key verified."})
}

type passwordRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleCreatePassword(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req passwordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.manager.CreatePassword(r.Context(), req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Password set successfully! You are now logged in.",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.manager.Login(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}
	profile, err := s.manager.CurrentProfile()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	s.manager.Logout(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out."})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req forgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.manager.ForgotPassword(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "A password reset key has been sent to " + req.Email + ".",
	})
}
