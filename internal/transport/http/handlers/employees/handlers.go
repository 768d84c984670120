package employeeshandler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"empleados/internal/domain/auth"
	"empleados/internal/domain/certificate"
	"empleados/internal/domain/employees"
	"empleados/internal/domain/payroll"
	"empleados/internal/domain/reports"
	"empleados/internal/platform/metrics"
	"empleados/internal/requestctx"
	"empleados/internal/transport/http/api"
	"empleados/internal/transport/http/middleware"
	"empleados/internal/transport/http/shared"
)

type Service interface {
	List(ctx context.Context, filter employees.Filter, page, size int) (employees.Page, error)
	ListAll(ctx context.Context, filter employees.Filter) ([]employees.Employee, error)
	Get(ctx context.Context, id string) (employees.Employee, error)
	Create(ctx context.Context, in employees.CreateInput, createdBy string) (employees.Employee, error)
	Update(ctx context.Context, id string, in employees.UpdateInput) (employees.Employee, error)
	Delete(ctx context.Context, id string) error
}

type CertificateRenderer interface {
	Render(emp employees.Employee, asOf time.Time) (certificate.Document, error)
}

type Handler struct {
	Service     Service
	Certificate CertificateRenderer
	Metrics     *metrics.Collector
	BuildReport func([]employees.Employee) ([]byte, error)
	Now         func() time.Time
}

func NewHandler(svc Service, renderer CertificateRenderer, collector *metrics.Collector) *Handler {
	return &Handler{
		Service:     svc,
		Certificate: renderer,
		Metrics:     collector,
		BuildReport: reports.BuildEmployeeReport,
		Now:         time.Now,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/export", h.handleExport)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Patch("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Get("/payroll-preview", h.handlePayrollPreview)
			r.Get("/certificate", h.handleCertificate)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	p := shared.ParsePagination(r, employees.DefaultPageSize, employees.MaxPageSize)
	page, err := h.Service.List(r.Context(), searchFilter(r), p.Page, p.Size)
	if err != nil {
		h.fail(w, r, err, "employee_list_failed", "failed to list employees")
		return
	}
	api.Success(w, page, reqID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListAll(r.Context(), searchFilter(r))
	if err != nil {
		h.fail(w, r, err, "employee_export_failed", "failed to export employees")
		return
	}
	data, err := h.BuildReport(list)
	h.Metrics.RecordDocument(metrics.DocumentReport, err)
	if err != nil {
		h.fail(w, r, err, "employee_export_failed", "failed to build employee report")
		return
	}
	disposition := fmt.Sprintf("attachment; filename=%q", reports.ExportFilename(h.Now().UTC()))
	api.Attachment(w, reports.ContentType, disposition, data)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "employee_get_failed", "failed to load employee")
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Authorize(w, r, auth.ActionEmployeeCreate)
	if !ok {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	var payload employees.CreateInput
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}

	emp, err := h.Service.Create(r.Context(), payload, user.UserID)
	if err != nil {
		h.fail(w, r, err, "employee_create_failed", "failed to create employee")
		return
	}
	requestctx.Logger(r.Context()).Info().Str("employeeId", emp.ID).Str("actor", user.UserID).Msg("employee created")
	api.Created(w, emp, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Authorize(w, r, auth.ActionEmployeeUpdate)
	if !ok {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	var payload employees.UpdateInput
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}

	emp, err := h.Service.Update(r.Context(), chi.URLParam(r, "employeeID"), payload)
	if err != nil {
		h.fail(w, r, err, "employee_update_failed", "failed to update employee")
		return
	}
	requestctx.Logger(r.Context()).Info().Str("employeeId", emp.ID).Str("actor", user.UserID).Msg("employee updated")
	api.Success(w, emp, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Authorize(w, r, auth.ActionEmployeeDelete)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Service.Delete(r.Context(), employeeID); err != nil {
		h.fail(w, r, err, "employee_delete_failed", "failed to delete employee")
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	requestctx.Logger(r.Context()).Info().Str("employeeId", employeeID).Str("actor", user.UserID).Msg("employee deleted")
	api.Success(w, map[string]bool{"ok": true}, reqID)
}

func (h *Handler) handlePayrollPreview(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "payroll_preview_failed", "failed to load employee")
		return
	}
	api.Success(w, payroll.Preview(emp.Salary), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCertificate(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "certificate_failed", "failed to load employee")
		return
	}

	doc, err := h.Certificate.Render(emp, h.Now())
	h.Metrics.RecordDocument(metrics.DocumentCertificate, err)
	if err != nil {
		h.fail(w, r, err, "certificate_failed", "failed to render certificate")
		return
	}
	api.Attachment(w, doc.ContentType, inlineDisposition(doc.Filename), doc.Data)
}

// inlineDisposition carries both the plain and the RFC 5987 encoded name.
func inlineDisposition(filename string) string {
	return fmt.Sprintf("inline; filename=%q; filename*=UTF-8''%s", filename, url.PathEscape(filename))
}

func searchFilter(r *http.Request) employees.Filter {
	return employees.Filter{Search: strings.TrimSpace(r.URL.Query().Get("search"))}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	reqID := middleware.GetRequestID(r.Context())
	if shared.RejectValidation(w, reqID, err) {
		return
	}
	switch {
	case errors.Is(err, employees.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	case errors.Is(err, employees.ErrDuplicateNationalID):
		api.Fail(w, http.StatusConflict, "duplicate_national_id", "national id already registered", reqID)
	case errors.Is(err, employees.ErrInvalidCatalogRef):
		api.Fail(w, http.StatusBadRequest, "invalid_reference", "referenced catalog entry does not exist", reqID)
	default:
		requestctx.Logger(r.Context()).Error().Err(err).Str("code", code).Msg(message)
		api.Fail(w, http.StatusInternalServerError, code, message, reqID)
	}
}
