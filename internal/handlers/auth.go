package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/israil64/laptop-galaxy/internal/models"
	"github.com/israil64/laptop-galaxy/internal/storage"
)

type AuthHandler struct {
	Store storage.Store
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	existing, err := h.Store.Users().FindByEmail(r.Context(), req.Email)
	if err != nil {
		storageError(w, err, "")
		return
	}
	if existing != nil {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      "user",
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	if _, err := h.Store.Users().Create(r.Context(), user); err != nil {
		storageError(w, err, "")
		return
	}

	writeMessage(w, http.StatusOK, "Signup successful! Please login.")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Store.Users().FindByEmail(r.Context(), req.Email)
	if err != nil {
		storageError(w, err, "")
		return
	}
	if user == nil {
		writeMessage(w, http.StatusBadRequest, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	// No token is issued; the client keeps the sanitized profile and replays
	// it for its own UI state.
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user.Public(),
	})
}
