package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/moneta-labs/security-api/checks"
	"github.com/moneta-labs/security-api/security"
	"github.com/moneta-labs/security-api/tokens"
)

// CheckRequest represents a JSON payload carrying a check code.
type CheckRequest struct {
	Check string `json:"check"`
}

// PasswdRequest represents a JSON payload for a password reset.
type PasswdRequest struct {
	Check    string `json:"check"`
	Password string `json:"password"`
}

// LoginRequest represents a JSON payload for a login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotRequest represents a JSON payload for a recovery start.
type ForgotRequest struct {
	Email string `json:"email"`
}

// ClientRequest represents a JSON payload for a client token exchange.
type ClientRequest struct {
	ClientID     uuid.UUID  `json:"clientId"`
	ClientSecret string     `json:"clientSecret"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
}

// RecoverResponse carries the fresh recovery check and token.
type RecoverResponse struct {
	Check *checks.Check `json:"check"`
	Token *tokens.Token `json:"token"`
}

// Signup creates a new unconfirmed user with its two wallets and sends the
// confirmation email.
func (s *Security) SignupFunc(rw http.ResponseWriter, r *http.Request) {
	var req security.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(rw, "invalid body", http.StatusBadRequest)
		return
	}

	res, err := s.service.Signup(req)
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusCreated, res)
}

// Forgot starts a password recovery for the given email.
func (s *Security) ForgotFunc(rw http.ResponseWriter, r *http.Request) {
	var req ForgotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(rw, "invalid body", http.StatusBadRequest)
		return
	}

	res, err := s.service.Forgot(req.Email)
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// Passwd consumes a recovery check and replaces the user's password.
func (s *Security) PasswdFunc(rw http.ResponseWriter, r *http.Request) {
	var req PasswdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(rw, "invalid body", http.StatusBadRequest)
		return
	}

	res, err := s.service.Passwd(req.Check, req.Password)
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// Confirm consumes a confirmation check and returns a fresh token.
func (s *Security) ConfirmFunc(rw http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(rw, "invalid body", http.StatusBadRequest)
		return
	}

	res, err := s.service.Confirm(req.Check)
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusCreated, res)
}

// Recover consumes a confirmation check and returns a fresh recovery check
// together with a token.
func (s *Security) RecoverFunc(rw http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(rw, "invalid body", http.StatusBadRequest)
		return
	}

	check, token, err := s.service.Recover(req.Check)
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, RecoverResponse{Check: check, Token: token})
}

// Login exchanges an email and password for a token.
func (s *Security) LoginFunc(rw http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(rw, "invalid body", http.StatusBadRequest)
		return
	}

	res, err := s.service.Login(req.Email, req.Password)
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusCreated, res)
}

// Client exchanges a client id and secret for a token.
func (s *Security) ClientFunc(rw http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(rw, "invalid body", http.StatusBadRequest)
		return
	}

	res, err := s.service.Client(req.ClientID, req.ClientSecret, req.UserID)
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusCreated, res)
}

// Token resolves the Authorization header to a stored token.
func (s *Security) TokenFunc(rw http.ResponseWriter, r *http.Request) {
	res, err := s.service.Token(r.Header.Get("Authorization"))
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// Logout deletes the token referenced by the Authorization header.
func (s *Security) LogoutFunc(rw http.ResponseWriter, r *http.Request) {
	res, err := s.service.Logout(r.Header.Get("Authorization"))
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}
