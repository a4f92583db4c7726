package handlers

import (
	"net/http"

	"github.com/moneta-labs/security-api/security"
)

// Security is a HTTP server for account and credential management.
// It uses the security service to interface with data.
type Security struct {
	service *security.Service
}

// NewSecurity initiates a new security server.
func NewSecurity(service *security.Service) *Security {
	return &Security{service}
}

func (s *Security) Signup() http.Handler {
	return http.HandlerFunc(s.SignupFunc)
}

func (s *Security) Forgot() http.Handler {
	return http.HandlerFunc(s.ForgotFunc)
}

func (s *Security) Passwd() http.Handler {
	return http.HandlerFunc(s.PasswdFunc)
}

func (s *Security) Confirm() http.Handler {
	return http.HandlerFunc(s.ConfirmFunc)
}

func (s *Security) Recover() http.Handler {
	return http.HandlerFunc(s.RecoverFunc)
}

func (s *Security) Login() http.Handler {
	return http.HandlerFunc(s.LoginFunc)
}

func (s *Security) Client() http.Handler {
	return http.HandlerFunc(s.ClientFunc)
}

func (s *Security) Token() http.Handler {
	return http.HandlerFunc(s.TokenFunc)
}

func (s *Security) Logout() http.Handler {
	return http.HandlerFunc(s.LogoutFunc)
}
