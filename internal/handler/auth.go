package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/service"
)

// AuthHandler serves the two public endpoints:
//
//	POST /auth/register  {email,password} → 200 {token}
//	POST /auth/login     {email,password} → 200 {token}
//
// Both failure modes are 400 with the wire-contract messages; everything
// else the client does requires the returned token.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// credentialsRequest is the body for both register and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse carries the issued bearer token.
type tokenResponse struct {
	Token string `json:"token"`
}

// decodeCredentials parses and validates the request body. Missing fields
// are a 400 before any store is touched.
func decodeCredentials(r *http.Request) (*credentialsRequest, error) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperror.ValidationFailed("body", "invalid JSON body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if req.Password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}
	return &req, nil
}

// HandleRegister creates an account and logs it in, in one step.
//
// HTTP: POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// HandleLogin authenticates an existing account.
//
// HTTP: POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
