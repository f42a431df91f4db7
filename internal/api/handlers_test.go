// internal/api/handlers_test.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	stderrors "credit-risk-service/internal/common/errors"
	"credit-risk-service/internal/common/logger"
	"credit-risk-service/internal/models"
	"credit-risk-service/internal/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	AssessCompanyFunc     func(ctx context.Context, companyName string, data risk.FinancialInput) (*models.CompanyAssessment, error)
	AssessIndividualFunc  func(ctx context.Context, fullName string, data risk.FinancialInput) (*models.IndividualAssessment, error)
	CompanyHistoryFunc    func(ctx context.Context, name string, from, to time.Time) ([]models.CompanyAssessment, error)
	IndividualHistoryFunc func(ctx context.Context, name string, from, to time.Time) ([]models.IndividualAssessment, error)
	LatestCompanyFunc     func(ctx context.Context, name string) (*models.CompanyAssessment, error)
}

func (m *MockService) AssessCompany(ctx context.Context, companyName string, data risk.FinancialInput) (*models.CompanyAssessment, error) {
	return m.AssessCompanyFunc(ctx, companyName, data)
}

func (m *MockService) AssessIndividual(ctx context.Context, fullName string, data risk.FinancialInput) (*models.IndividualAssessment, error) {
	return m.AssessIndividualFunc(ctx, fullName, data)
}

func (m *MockService) CompanyHistory(ctx context.Context, name string, from, to time.Time) ([]models.CompanyAssessment, error) {
	return m.CompanyHistoryFunc(ctx, name, from, to)
}

func (m *MockService) IndividualHistory(ctx context.Context, name string, from, to time.Time) ([]models.IndividualAssessment, error) {
	return m.IndividualHistoryFunc(ctx, name, from, to)
}

func (m *MockService) LatestCompany(ctx context.Context, name string) (*models.CompanyAssessment, error) {
	return m.LatestCompanyFunc(ctx, name)
}

func (m *MockService) ModelInfo() risk.ModelInfo {
	return risk.GetModelInfo()
}

type MockSearcher struct {
	SearchFunc func(ctx context.Context, query string, size int) ([]models.CompanyAssessment, error)
}

func (m *MockSearcher) SearchCompanies(ctx context.Context, query string, size int) ([]models.CompanyAssessment, error) {
	return m.SearchFunc(ctx, query, size)
}

func newTestHandler(t *testing.T, svc AssessmentService, searcher CompanySearcher) *Handler {
	return NewHandler(svc, searcher, logger.NewTestLogger(t))
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, &MockService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	h.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestModelInfo(t *testing.T) {
	h := newTestHandler(t, &MockService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/model-info", nil)
	rr := httptest.NewRecorder()
	h.ModelInfo(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var info risk.ModelInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, []string{"altman", "taffler", "individual"}, info.Models)
}

func TestPredictCompany(t *testing.T) {
	svc := &MockService{
		AssessCompanyFunc: func(ctx context.Context, companyName string, data risk.FinancialInput) (*models.CompanyAssessment, error) {
			assert.Equal(t, "Vector Manufacturing", companyName)
			assert.Equal(t, 700000.0, data["current_assets"])
			return &models.CompanyAssessment{
				ID:                "rec-1",
				CompanyName:       companyName,
				AltmanZScore:      -4.1091,
				AltmanRiskLevel:   risk.RiskHigh,
				TafflerZScore:     0.7871,
				TafflerRiskLevel:  risk.RiskLow,
				CombinedRiskLevel: risk.RiskHigh,
			}, nil
		},
	}
	h := newTestHandler(t, svc, nil)

	body := `{"company_name":"Vector Manufacturing","financial_data":{"current_assets":700000}}`
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.PredictCompany(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, -4.1091, resp["altman_z_score"])
	assert.Equal(t, "high", resp["combined_risk_level"])
}

func TestPredictCompany_SchemaViolation(t *testing.T) {
	h := newTestHandler(t, &MockService{}, nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing company_name", `{"financial_data":{"current_assets":1}}`},
		{"missing financial_data", `{"company_name":"Acme"}`},
		{"wrong value type", `{"company_name":"Acme","financial_data":{"current_assets":"lots"}}`},
		{"not json", `not json at all`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			h.PredictCompany(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var resp struct {
				Error *stderrors.StandardError `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, stderrors.ErrCodeValidationFailed, resp.Error.Code)
		})
	}
}

func TestPredictCompany_ServiceValidationError(t *testing.T) {
	svc := &MockService{
		AssessCompanyFunc: func(ctx context.Context, companyName string, data risk.FinancialInput) (*models.CompanyAssessment, error) {
			return nil, stderrors.NewValidationFailedError("missing required fields: liabilities, sales")
		},
	}
	h := newTestHandler(t, svc, nil)

	body := `{"company_name":"Acme","financial_data":{"current_assets":1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.PredictCompany(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "missing required fields")
}

func TestPredictCompany_StorageError(t *testing.T) {
	svc := &MockService{
		AssessCompanyFunc: func(ctx context.Context, companyName string, data risk.FinancialInput) (*models.CompanyAssessment, error) {
			return nil, stderrors.NewStorageFailedError(errors.New("connection refused")).
				WithMetadata("altman_z_score", -4.1091)
		},
	}
	h := newTestHandler(t, svc, nil)

	body := `{"company_name":"Acme","financial_data":{"current_assets":1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.PredictCompany(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp struct {
		Error *stderrors.StandardError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, stderrors.ErrCodeStorageFailed, resp.Error.Code)
	assert.True(t, resp.Error.Retryable)
	assert.Equal(t, -4.1091, resp.Error.Metadata["altman_z_score"])
}

func TestPredictIndividual(t *testing.T) {
	svc := &MockService{
		AssessIndividualFunc: func(ctx context.Context, fullName string, data risk.FinancialInput) (*models.IndividualAssessment, error) {
			return &models.IndividualAssessment{
				ID:          "rec-2",
				FullName:    fullName,
				CreditScore: 850,
				RiskLevel:   risk.RiskLow,
			}, nil
		},
	}
	h := newTestHandler(t, svc, nil)

	body := `{"full_name":"Ivan Sidorov","financial_data":{"monthly_income":100000}}`
	req := httptest.NewRequest(http.MethodPost, "/api/predict/individual", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.PredictIndividual(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 850.0, resp["credit_score"])
	assert.Equal(t, "low", resp["risk_level"])
}

func TestCompanyAssessments(t *testing.T) {
	svc := &MockService{
		CompanyHistoryFunc: func(ctx context.Context, name string, from, to time.Time) ([]models.CompanyAssessment, error) {
			assert.Equal(t, "Acme", name)
			assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
			return []models.CompanyAssessment{{ID: "rec-1", CompanyName: name}}, nil
		},
	}
	h := newTestHandler(t, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/company?name=Acme&from=2024-01-01", nil)
	rr := httptest.NewRecorder()
	h.CompanyAssessments(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var history []models.CompanyAssessment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "rec-1", history[0].ID)
}

func TestCompanyAssessments_NameRequired(t *testing.T) {
	h := newTestHandler(t, &MockService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/company", nil)
	rr := httptest.NewRecorder()
	h.CompanyAssessments(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "name is required")
}

func TestCompanyAssessments_BadDate(t *testing.T) {
	h := newTestHandler(t, &MockService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/company?name=Acme&from=yesterday", nil)
	rr := httptest.NewRecorder()
	h.CompanyAssessments(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCompanyAssessments_EmptyHistoryIsArray(t *testing.T) {
	svc := &MockService{
		CompanyHistoryFunc: func(ctx context.Context, name string, from, to time.Time) ([]models.CompanyAssessment, error) {
			return nil, nil
		},
	}
	h := newTestHandler(t, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/company?name=Acme", nil)
	rr := httptest.NewRecorder()
	h.CompanyAssessments(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}

func TestIndividualAssessments(t *testing.T) {
	svc := &MockService{
		IndividualHistoryFunc: func(ctx context.Context, name string, from, to time.Time) ([]models.IndividualAssessment, error) {
			return []models.IndividualAssessment{{ID: "rec-2", FullName: name}}, nil
		},
	}
	h := newTestHandler(t, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/individual?name=Anna+Petrova", nil)
	rr := httptest.NewRecorder()
	h.IndividualAssessments(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var history []models.IndividualAssessment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "Anna Petrova", history[0].FullName)
}

func TestLatestCompanyAssessment_NotFound(t *testing.T) {
	svc := &MockService{
		LatestCompanyFunc: func(ctx context.Context, name string) (*models.CompanyAssessment, error) {
			return nil, nil
		},
	}
	h := newTestHandler(t, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/company/latest?name=Ghost", nil)
	rr := httptest.NewRecorder()
	h.LatestCompanyAssessment(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSearchCompanyAssessments(t *testing.T) {
	searcher := &MockSearcher{
		SearchFunc: func(ctx context.Context, query string, size int) ([]models.CompanyAssessment, error) {
			assert.Equal(t, "Vector", query)
			assert.Equal(t, 5, size)
			return []models.CompanyAssessment{{ID: "rec-1", CompanyName: "Vector Manufacturing"}}, nil
		},
	}
	h := newTestHandler(t, &MockService{}, searcher)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/company/search?q=Vector&size=5", nil)
	rr := httptest.NewRecorder()
	h.SearchCompanyAssessments(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Vector Manufacturing")
}

func TestSearchCompanyAssessments_QueryRequired(t *testing.T) {
	h := newTestHandler(t, &MockService{}, &MockSearcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/company/search", nil)
	rr := httptest.NewRecorder()
	h.SearchCompanyAssessments(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSearchCompanyAssessments_Disabled(t *testing.T) {
	h := newTestHandler(t, &MockService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/company/search?q=Vector", nil)
	rr := httptest.NewRecorder()
	h.SearchCompanyAssessments(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
