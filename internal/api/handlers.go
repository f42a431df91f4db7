// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	stderrors "credit-risk-service/internal/common/errors"
	"credit-risk-service/internal/common/logger"
	"credit-risk-service/internal/models"
	"credit-risk-service/internal/risk"
)

const maxRequestBodyBytes = 1 << 20

var errSearchDisabled = errors.New("search is disabled")

// AssessmentService is the orchestration surface the handlers depend on.
type AssessmentService interface {
	AssessCompany(ctx context.Context, companyName string, data risk.FinancialInput) (*models.CompanyAssessment, error)
	AssessIndividual(ctx context.Context, fullName string, data risk.FinancialInput) (*models.IndividualAssessment, error)
	CompanyHistory(ctx context.Context, name string, from, to time.Time) ([]models.CompanyAssessment, error)
	IndividualHistory(ctx context.Context, name string, from, to time.Time) ([]models.IndividualAssessment, error)
	LatestCompany(ctx context.Context, name string) (*models.CompanyAssessment, error)
	ModelInfo() risk.ModelInfo
}

// CompanySearcher serves full-text company lookups from the search index.
// Nil when search is disabled.
type CompanySearcher interface {
	SearchCompanies(ctx context.Context, query string, size int) ([]models.CompanyAssessment, error)
}

type Handler struct {
	svc      AssessmentService
	searcher CompanySearcher
	errors   *stderrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(svc AssessmentService, searcher CompanySearcher, log logger.Logger) *Handler {
	return &Handler{
		svc:      svc,
		searcher: searcher,
		errors:   stderrors.NewErrorHandler(log),
		logger:   log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

type companyPredictRequest struct {
	CompanyName   string              `json:"company_name"`
	FinancialData risk.FinancialInput `json:"financial_data"`
}

type individualPredictRequest struct {
	FullName      string              `json:"full_name"`
	FinancialData risk.FinancialInput `json:"financial_data"`
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ModelInfo returns the static scoring model catalog.
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ModelInfo())
}

// PredictCompany runs a full company assessment.
func (h *Handler) PredictCompany(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		h.errors.WriteError(w, r, stderrors.NewValidationFailedError(err.Error()))
		return
	}
	if err := validateCompanyPredictBody(body); err != nil {
		h.errors.WriteError(w, r, stderrors.NewValidationFailedError(err.Error()))
		return
	}

	var req companyPredictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.errors.WriteError(w, r, stderrors.NewValidationFailedError(err.Error()))
		return
	}

	rec, err := h.svc.AssessCompany(r.Context(), req.CompanyName, req.FinancialData)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// PredictIndividual runs an individual credit assessment.
func (h *Handler) PredictIndividual(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		h.errors.WriteError(w, r, stderrors.NewValidationFailedError(err.Error()))
		return
	}
	if err := validateIndividualPredictBody(body); err != nil {
		h.errors.WriteError(w, r, stderrors.NewValidationFailedError(err.Error()))
		return
	}

	var req individualPredictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.errors.WriteError(w, r, stderrors.NewValidationFailedError(err.Error()))
		return
	}

	rec, err := h.svc.AssessIndividual(r.Context(), req.FullName, req.FinancialData)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// CompanyAssessments lists company assessment history, newest first.
func (h *Handler) CompanyAssessments(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.errors.WriteError(w, r, stderrors.NewValidationFailedError("query parameter name is required"))
		return
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		h.errors.WriteError(w, r, stderrors.NewValidationFailedError(err.Error()))
		return
	}

	history, err := h.svc.CompanyHistory(r.Context(), name, from, to)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	if history == nil {
		history = []models.CompanyAssessment{}
	}
	writeJSON(w, http.StatusOK, history)
}

// IndividualAssessments lists individual assessment history, newest first.
func (h *Handler) IndividualAssessments(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.errors.WriteError(w, r, stderrors.NewValidationFailedError("query parameter name is required"))
		return
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		h.errors.WriteError(w, r, stderrors.NewValidationFailedError(err.Error()))
		return
	}

	history, err := h.svc.IndividualHistory(r.Context(), name, from, to)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	if history == nil {
		history = []models.IndividualAssessment{}
	}
	writeJSON(w, http.StatusOK, history)
}

// LatestCompanyAssessment returns the most recent assessment for a company,
// served from cache when possible.
func (h *Handler) LatestCompanyAssessment(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.errors.WriteError(w, r, stderrors.NewValidationFailedError("query parameter name is required"))
		return
	}

	rec, err := h.svc.LatestCompany(r.Context(), name)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "no assessments found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// SearchCompanyAssessments queries the search index by company name.
func (h *Handler) SearchCompanyAssessments(w http.ResponseWriter, r *http.Request) {
	if h.searcher == nil {
		h.errors.WriteError(w, r, stderrors.NewIndexFailedError("company", errSearchDisabled))
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		h.errors.WriteError(w, r, stderrors.NewValidationFailedError("query parameter q is required"))
		return
	}
	size := 10
	if s := r.URL.Query().Get("size"); s != "" {
		if n, err := parsePositiveInt(s); err == nil {
			size = n
		}
	}

	results, err := h.searcher.SearchCompanies(r.Context(), query, size)
	if err != nil {
		h.errors.WriteError(w, r, stderrors.NewIndexFailedError("company", err))
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("must be positive")
	}
	return n, nil
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
}

// parseDateRange reads optional from/to query parameters in YYYY-MM-DD form.
// Absent bounds default to an open range ending now.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	var from time.Time
	to := time.Now().UTC()

	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, err
		}
		// Inclusive upper bound covering the whole day.
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
