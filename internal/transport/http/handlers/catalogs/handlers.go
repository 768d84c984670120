package catalogshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"empleados/internal/domain/catalogs"
	"empleados/internal/requestctx"
	"empleados/internal/transport/http/api"
	"empleados/internal/transport/http/middleware"
)

type Handler struct {
	Catalogs catalogs.Reader
}

func NewHandler(reader catalogs.Reader) *Handler {
	return &Handler{Catalogs: reader}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/catalogs/{kind}", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	kind, err := catalogs.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "unknown catalog", reqID)
		return
	}

	entries, err := h.Catalogs.List(r.Context(), kind)
	if err != nil {
		requestctx.Logger(r.Context()).Error().Err(err).Str("kind", string(kind)).Msg("list catalog failed")
		api.Fail(w, http.StatusInternalServerError, "catalog_list_failed", "failed to list catalog", reqID)
		return
	}
	if entries == nil {
		entries = []catalogs.Entry{}
	}
	api.Success(w, entries, reqID)
}
