package authhandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"empleados/internal/domain/auth"
	"empleados/internal/domain/users"
	"empleados/internal/requestctx"
	"empleados/internal/transport/http/api"
	"empleados/internal/transport/http/middleware"
	"empleados/internal/transport/http/shared"
)

type LoginService interface {
	Login(ctx context.Context, email, password string) (auth.LoginResult, error)
}

type UserLookup interface {
	Get(ctx context.Context, id string) (users.User, error)
}

type Handler struct {
	Auth  LoginService
	Users UserLookup
}

func NewHandler(svc LoginService, lookup UserLookup) *Handler {
	return &Handler{Auth: svc, Users: lookup}
}

// RegisterPublicRoutes mounts the routes reachable without a token.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/auth/me", h.HandleMe)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	}

	result, err := h.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
			return
		}
		requestctx.Logger(r.Context()).Error().Err(err).Msg("login failed")
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", reqID)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	// A token can outlive its user.
	current, err := h.Users.Get(r.Context(), user.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
			return
		}
		requestctx.Logger(r.Context()).Error().Err(err).Msg("load current user failed")
		api.Fail(w, http.StatusInternalServerError, "me_failed", "failed to load current user", reqID)
		return
	}
	api.Success(w, auth.UserSummary{ID: current.ID, Email: current.Email, Role: current.Role}, reqID)
}
