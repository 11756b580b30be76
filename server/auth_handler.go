package server

import (
	"net/http"

	"OpenMusic/core/auth"
	"OpenMusic/logger"
	"OpenMusic/model"
	"OpenMusic/repository"

	"github.com/google/uuid"
)

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterHandler handles user registration.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" || req.Fullname == "" {
		writeFail(w, http.StatusBadRequest, "Username, password and fullname are required")
		return
	}

	existing, err := h.users.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing != nil {
		writeFail(w, http.StatusBadRequest, "Username already taken")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	user := &model.User{
		ID:           "user-" + uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Fullname:     req.Fullname,
		Email:        req.Email,
	}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		// The unique index on username closes the check-then-insert race.
		if repository.IsDuplicateEntry(err) {
			writeFail(w, http.StatusBadRequest, "Username already taken")
			return
		}
		writeError(w, err)
		return
	}

	logger.Info("User registered", logger.String("username", user.Username))
	writeSuccess(w, http.StatusCreated, map[string]string{"userId": user.ID})
}

// LoginHandler handles user login and issues a JWT.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeFail(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		logger.Warn("Login failed", logger.String("username", req.Username))
		writeFail(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.Info("User logged in", logger.String("username", user.Username))
	writeSuccess(w, http.StatusCreated, map[string]string{"accessToken": token})
}
