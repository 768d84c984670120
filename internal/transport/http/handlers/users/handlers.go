package usershandler

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

type Service interface {
	List(ctx context.Context) ([]users.User, error)
	Get(ctx context.Context, id string) (users.User, error)
	Create(ctx context.Context, in users.CreateInput) (users.User, error)
	Update(ctx context.Context, id string, in users.UpdateInput) (users.User, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	Service Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Patch("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.Authorize(w, r, auth.ActionUserRead); !ok {
		return
	}
	list, err := h.Service.List(r.Context())
	if err != nil {
		fail(w, r, err, "user_list_failed", "failed to list users")
		return
	}
	if list == nil {
		list = []users.User{}
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.Authorize(w, r, auth.ActionUserRead); !ok {
		return
	}
	user, err := h.Service.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		fail(w, r, err, "user_get_failed", "failed to load user")
		return
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.Authorize(w, r, auth.ActionUserCreate)
	if !ok {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	var payload users.CreateInput
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	user, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		fail(w, r, err, "user_create_failed", "failed to create user")
		return
	}
	requestctx.Logger(r.Context()).Info().Str("userId", user.ID).Str("role", user.Role).Str("actor", actor.UserID).Msg("user created")
	api.Created(w, user, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.Authorize(w, r, auth.ActionUserUpdate)
	if !ok {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	var payload users.UpdateInput
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	user, err := h.Service.Update(r.Context(), chi.URLParam(r, "userID"), payload)
	if err != nil {
		fail(w, r, err, "user_update_failed", "failed to update user")
		return
	}
	requestctx.Logger(r.Context()).Info().Str("userId", user.ID).Str("actor", actor.UserID).Msg("user updated")
	api.Success(w, user, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.Authorize(w, r, auth.ActionUserDelete)
	if !ok {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	userID := chi.URLParam(r, "userID")
	if userID == actor.UserID {
		api.Fail(w, http.StatusConflict, "cannot_delete_self", "you cannot delete your own account", reqID)
		return
	}
	if err := h.Service.Delete(r.Context(), userID); err != nil {
		fail(w, r, err, "user_delete_failed", "failed to delete user")
		return
	}
	requestctx.Logger(r.Context()).Info().Str("userId", userID).Str("actor", actor.UserID).Msg("user deleted")
	api.Success(w, map[string]bool{"ok": true}, reqID)
}

func fail(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	reqID := middleware.GetRequestID(r.Context())
	if shared.RejectValidation(w, reqID, err) {
		return
	}
	switch {
	case errors.Is(err, users.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", reqID)
	case errors.Is(err, users.ErrDuplicateEmail):
		api.Fail(w, http.StatusConflict, "duplicate_email", "email already in use", reqID)
	default:
		requestctx.Logger(r.Context()).Error().Err(err).Str("code", code).Msg(message)
		api.Fail(w, http.StatusInternalServerError, code, message, reqID)
	}
}
