// Package http provides the HTTP handlers for the dashboard API.
package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"hrpulse/internal/dataset"
	apierrors "hrpulse/internal/errors"
	"hrpulse/internal/services"
	"hrpulse/internal/validation"
	"hrpulse/pkg/contracts/domain"
)

// DashboardHandler exposes workbook ingestion and dataset query endpoints.
type DashboardHandler struct {
	service   *services.DashboardService
	validator *validation.WorkbookValidator
	logger    *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service *services.DashboardService, validator *validation.WorkbookValidator, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:   service,
		validator: validator,
		logger:    logger.With(slog.String("handler", "dashboard")),
	}
}

// Routes returns the dashboard route tree.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/workbook", h.UploadWorkbook)
	r.Route("/{datasetID}", func(r chi.Router) {
		r.Delete("/", h.DeleteSnapshot)
		r.Get("/records", h.Records)
		r.Get("/summary", h.Summary)
		r.Get("/frequency/{field}", h.Frequency)
		r.Get("/companies", h.Companies)
		r.Get("/calendar/{month}", h.Calendar)
		r.Get("/hires", h.MonthlyHires)
		r.Get("/export", h.ExportCSV)
	})
	return r
}

// UploadResponse is the body returned after a successful workbook upload.
type UploadResponse struct {
	DatasetID string               `json:"dataset_id"`
	LoadedAt  time.Time            `json:"loaded_at"`
	Records   int                  `json:"records"`
	JoinKey   domain.JoinStrategy  `json:"termination_join_key"`
	Warnings  []domain.LoadWarning `json:"warnings"`
}

// UploadWorkbook handles POST /api/dashboard/workbook. The workbook is
// expected as a multipart file field named "workbook".
func (h *DashboardHandler) UploadWorkbook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.validator.MaxSizeBytes())
	if err := r.ParseMultipartForm(h.validator.MaxSizeBytes()); err != nil {
		apierrors.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
			"Uploaded file exceeds the size limit", err.Error()))
		return
	}

	file, header, err := r.FormFile("workbook")
	if err != nil {
		apierrors.HandleError(w, r, apierrors.ErrValidation("workbook", "multipart file field is required"))
		return
	}
	defer file.Close()

	if err := h.validator.ValidateUpload(header.Filename, header.Size); err != nil {
		apierrors.HandleError(w, r, apierrors.ErrValidation("workbook", err.Error()))
		return
	}

	snapshot, err := h.service.IngestReader(ctx, file)
	if err != nil {
		apierrors.HandleError(w, r, apierrors.WorkbookError(err))
		return
	}

	h.logger.InfoContext(ctx, "workbook ingested",
		slog.String("dataset_id", snapshot.ID),
		slog.String("filename", header.Filename),
		slog.Int("records", len(snapshot.Records)),
	)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, UploadResponse{
		DatasetID: snapshot.ID,
		LoadedAt:  snapshot.LoadedAt,
		Records:   len(snapshot.Records),
		JoinKey:   snapshot.JoinKey,
		Warnings:  snapshot.Warnings,
	})
}

// DeleteSnapshot handles DELETE /api/dashboard/{datasetID}.
func (h *DashboardHandler) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	if !h.service.Invalidate(id) {
		apierrors.HandleError(w, r, apierrors.SnapshotNotFoundError(id))
		return
	}
	render.NoContent(w, r)
}

// Records handles GET /api/dashboard/{datasetID}/records.
func (h *DashboardHandler) Records(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		apierrors.HandleError(w, r, err)
		return
	}

	records, svcErr := h.service.Records(chi.URLParam(r, "datasetID"), filter)
	if svcErr != nil {
		h.renderServiceError(w, r, svcErr)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}

// Summary handles GET /api/dashboard/{datasetID}/summary.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		apierrors.HandleError(w, r, err)
		return
	}

	summary, svcErr := h.service.Summary(chi.URLParam(r, "datasetID"), filter)
	if svcErr != nil {
		h.renderServiceError(w, r, svcErr)
		return
	}
	render.JSON(w, r, summary)
}

// Frequency handles GET /api/dashboard/{datasetID}/frequency/{field}.
func (h *DashboardHandler) Frequency(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		apierrors.HandleError(w, r, err)
		return
	}

	field := chi.URLParam(r, "field")
	table, svcErr := h.service.Frequency(chi.URLParam(r, "datasetID"), field, filter)
	if svcErr != nil {
		if errors.Is(svcErr, dataset.ErrUnknownField) {
			apierrors.HandleError(w, r, apierrors.ErrValidation("field", svcErr.Error()))
			return
		}
		h.renderServiceError(w, r, svcErr)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"field":      field,
		"categories": table,
	})
}

// Companies handles GET /api/dashboard/{datasetID}/companies.
func (h *DashboardHandler) Companies(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		apierrors.HandleError(w, r, err)
		return
	}

	counts, svcErr := h.service.Companies(chi.URLParam(r, "datasetID"), filter)
	if svcErr != nil {
		h.renderServiceError(w, r, svcErr)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"companies": counts,
	})
}

// Calendar handles GET /api/dashboard/{datasetID}/calendar/{month}.
func (h *DashboardHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		apierrors.HandleError(w, r, err)
		return
	}

	month, convErr := strconv.Atoi(chi.URLParam(r, "month"))
	if convErr != nil || month < 1 || month > 12 {
		apierrors.HandleError(w, r, apierrors.ErrValidation("month", "month must be an integer between 1 and 12"))
		return
	}

	report, svcErr := h.service.Calendar(chi.URLParam(r, "datasetID"), month, filter)
	if svcErr != nil {
		h.renderServiceError(w, r, svcErr)
		return
	}
	render.JSON(w, r, report)
}

// MonthlyHires handles GET /api/dashboard/{datasetID}/hires.
func (h *DashboardHandler) MonthlyHires(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		apierrors.HandleError(w, r, err)
		return
	}

	hires, svcErr := h.service.MonthlyHires(chi.URLParam(r, "datasetID"), filter)
	if svcErr != nil {
		h.renderServiceError(w, r, svcErr)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"hires": hires,
	})
}

// ExportCSV handles GET /api/dashboard/{datasetID}/export and streams
// the filtered records as a CSV attachment.
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		apierrors.HandleError(w, r, err)
		return
	}

	id := chi.URLParam(r, "datasetID")

	// Buffer before writing headers so errors can still render as JSON.
	var buf bytes.Buffer
	if svcErr := h.service.ExportCSV(id, filter, &buf); svcErr != nil {
		h.renderServiceError(w, r, svcErr)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "employees_"+id+".csv"))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (h *DashboardHandler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrSnapshotNotFound) {
		apierrors.HandleError(w, r, apierrors.SnapshotNotFoundError(chi.URLParam(r, "datasetID")))
		return
	}
	apierrors.HandleError(w, r, err)
}

// listFilterParams maps query parameter names to FilterSpec set fields.
// Values may repeat or be comma-separated.
var listFilterParams = []string{
	"status", "company", "department", "sub_department", "role",
	"cost_type", "education_level", "race", "gender", "has_children",
}

// parseFilterSpec builds a FilterSpec from query parameters. Malformed
// numeric or date values are rejected; an inverted range is accepted
// and simply yields an empty result set downstream.
func parseFilterSpec(query url.Values) (domain.FilterSpec, error) {
	var spec domain.FilterSpec

	sets := map[string]*[]string{
		"status":          &spec.Statuses,
		"company":         &spec.Companies,
		"department":      &spec.Departments,
		"sub_department":  &spec.SubDepartments,
		"role":            &spec.Roles,
		"cost_type":       &spec.CostTypes,
		"education_level": &spec.EducationLevels,
		"race":            &spec.Races,
		"gender":          &spec.Genders,
		"has_children":    &spec.HasChildren,
	}
	for _, param := range listFilterParams {
		*sets[param] = parseListParam(query[param])
	}

	var err error
	if spec.AgeMin, err = parseIntParam(query.Get("age_min"), "age_min"); err != nil {
		return domain.FilterSpec{}, err
	}
	if spec.AgeMax, err = parseIntParam(query.Get("age_max"), "age_max"); err != nil {
		return domain.FilterSpec{}, err
	}
	if spec.ChildrenMin, err = parseIntParam(query.Get("children_min"), "children_min"); err != nil {
		return domain.FilterSpec{}, err
	}
	if spec.ChildrenMax, err = parseIntParam(query.Get("children_max"), "children_max"); err != nil {
		return domain.FilterSpec{}, err
	}
	if spec.HireDateFrom, err = parseDateParam(query.Get("hire_date_start"), "hire_date_start"); err != nil {
		return domain.FilterSpec{}, err
	}
	if spec.HireDateTo, err = parseDateParam(query.Get("hire_date_end"), "hire_date_end"); err != nil {
		return domain.FilterSpec{}, err
	}

	return spec, nil
}

func parseListParam(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseIntParam(value, name string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, apierrors.ErrValidation(name, "must be an integer")
	}
	return &n, nil
}

func parseDateParam(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apierrors.ErrValidation(name, "must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}
