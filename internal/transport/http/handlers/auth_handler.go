package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vedran77/devlink/internal/service"
	"github.com/vedran77/devlink/internal/transport/http/middleware"
	"github.com/vedran77/devlink/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/users.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFail(w, msg("Invalid request body"))
		return
	}

	if errs := validator.ValidateRegister(input.Name, input.Email, input.Password); errs.HasErrors() {
		writeFail(w, errs)
		return
	}

	resp, err := h.authService.Register(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			writeFail(w, []map[string]string{msg("User already exists")})
		} else {
			writeServerError(w, "register", err)
		}
		return
	}

	writeSuccess(w, resp)
}

// Login handles POST /api/auth.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFail(w, msg("Invalid request body"))
		return
	}

	if errs := validator.ValidateLogin(input.Email, input.Password); errs.HasErrors() {
		writeFail(w, errs)
		return
	}

	resp, err := h.authService.Login(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			writeFail(w, []map[string]string{msg("Invalid Credentials")})
		} else {
			writeServerError(w, "login", err)
		}
		return
	}

	writeSuccess(w, resp)
}

// Me handles GET /api/auth and returns the caller's user record without the
// password hash.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeFail(w, msg("User not found"))
		} else {
			writeServerError(w, "current user", err)
		}
		return
	}

	writeSuccess(w, user)
}
