package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"linkhub/internal/pkg/errors"
	"linkhub/internal/pkg/validator"
	"linkhub/internal/platform/auth"
	"linkhub/internal/platform/config"
	"linkhub/internal/platform/models"
	"linkhub/internal/platform/repositories"
)

type AuthHandler struct {
	userRepo *repositories.UserRepository
	tokenSvc *auth.TokenService
	cookie   config.JWTConfig
}

func NewAuthHandler(userRepo *repositories.UserRepository, tokenSvc *auth.TokenService, cookie config.JWTConfig) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
		cookie:   cookie,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *RegisterRequest) validate() error {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return errors.Validation("Name must be at least 2 characters")
	}
	if err := validator.Username(req.Username); err != nil {
		return errors.Validation(err.Error())
	}
	if err := validator.Email(req.Email); err != nil {
		return errors.Validation(err.Error())
	}
	if len(req.Password) < 6 {
		return errors.Validation("Password must be at least 6 characters")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
	Token   string       `json:"token,omitempty"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if err := req.validate(); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	existing, err := h.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if existing != nil {
		errors.BadRequest(w, "User with this email already exists")
		return
	}

	existing, err = h.userRepo.GetByUsername(r.Context(), req.Username)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if existing != nil {
		errors.BadRequest(w, "Username is already taken")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	now := time.Now().Unix()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.userRepo.CreateWithAppearance(r.Context(), user); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{Message: "User created successfully", User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userRepo.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		errors.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, expiresAt, err := h.tokenSvc.GenerateToken(user.ID, user.Username, user.Email, user.Name)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, AuthResponse{Message: "Login successful", User: user, Token: token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	user, err := h.userRepo.GetByID(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if user == nil {
		errors.NotFound(w, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
