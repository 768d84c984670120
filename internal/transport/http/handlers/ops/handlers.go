package opshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"empleados/internal/domain/auth"
	"empleados/internal/platform/metrics"
	"empleados/internal/transport/http/api"
	"empleados/internal/transport/http/middleware"
)

type Handler struct {
	Metrics *metrics.Collector
}

func NewHandler(collector *metrics.Collector) *Handler {
	return &Handler{Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/metrics", h.handleMetrics)
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.Authorize(w, r, auth.ActionMetricsRead); !ok {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	if h.Metrics == nil {
		api.Fail(w, http.StatusNotFound, "metrics_disabled", "metrics are disabled", reqID)
		return
	}
	api.Success(w, h.Metrics.Snapshot(), reqID)
}
