package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nerrad567/telemetry-core/internal/account"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleRegister creates a new user account plus their default MCU.
//
// POST /api/register {username, password, email}
// 200 {message} | 400 missing field | 409 duplicate username
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	_, err := s.accounts.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrValidation):
			writeBadRequest(w, "All fields are required.")
		case errors.Is(err, account.ErrUsernameExists):
			writeConflict(w, "Username already exists.")
		default:
			s.logger.Error("registration failed", "error", err)
			writeInternalError(w, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Registration successful! MCU assigned.",
	})
}

// handleLogin verifies credentials and returns the user's id.
//
// POST /api/login {username, password}
// 200 {message, user_id} | 404 unknown user | 401 bad credentials
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	userID, err := s.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrUserNotFound):
			writeNotFound(w, "User not found")
		case errors.Is(err, account.ErrBadCredentials):
			writeUnauthorized(w, "Incorrect password")
		default:
			s.logger.Error("login failed", "error", err)
			writeInternalError(w, "login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user_id": userID,
	})
}
