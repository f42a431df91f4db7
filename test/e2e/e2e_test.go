// test/e2e/e2e_test.go
//
// End-to-end tests against a running service instance. Skipped unless
// E2E_BASE_URL is set, e.g.:
//
//	E2E_BASE_URL=http://localhost:8000 go test ./test/e2e/
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseURL(t *testing.T) string {
	url := os.Getenv("E2E_BASE_URL")
	if url == "" {
		t.Skip("E2E_BASE_URL not set; skipping end-to-end tests")
	}
	return url
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := httpClient().Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestHealth(t *testing.T) {
	base := baseURL(t)

	resp, err := httpClient().Get(base + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestModelInfo(t *testing.T) {
	base := baseURL(t)

	resp, err := httpClient().Get(base + "/api/model-info")
	require.NoError(t, err)

	var info struct {
		Models []string `json:"models"`
	}
	decodeBody(t, resp, &info)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, info.Models, "altman")
	assert.Contains(t, info.Models, "taffler")
	assert.Contains(t, info.Models, "individual")
}

func TestCompanyAssessmentFlow(t *testing.T) {
	base := baseURL(t)
	companyName := fmt.Sprintf("E2E Test Co %d", time.Now().UnixNano())

	resp := postJSON(t, base+"/api/predict", map[string]interface{}{
		"company_name": companyName,
		"financial_data": map[string]float64{
			"current_assets":         700000,
			"current_liabilities":    200000,
			"debt_capital":           500000,
			"liabilities":            800000,
			"sales_profit":           400000,
			"short_term_liabilities": 500000,
			"long_term_liabilities":  300000,
			"total_assets":           1500000,
			"sales":                  2000000,
		},
	})

	var rec struct {
		ID                string  `json:"id"`
		AltmanZScore      float64 `json:"altman_z_score"`
		AltmanRiskLevel   string  `json:"altman_risk_level"`
		CombinedRiskLevel string  `json:"combined_risk_level"`
	}
	decodeBody(t, resp, &rec)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, rec.ID)
	assert.InDelta(t, -4.1091, rec.AltmanZScore, 0.0001)
	assert.Equal(t, "high", rec.AltmanRiskLevel)
	assert.Equal(t, "high", rec.CombinedRiskLevel)

	// The assessment must be visible in history immediately.
	histResp, err := httpClient().Get(base + "/api/assessments/company?name=" + companyName)
	require.NoError(t, err)

	var history []struct {
		ID string `json:"id"`
	}
	decodeBody(t, histResp, &history)

	require.Equal(t, http.StatusOK, histResp.StatusCode)
	require.NotEmpty(t, history)
	assert.Equal(t, rec.ID, history[0].ID)
}

func TestIndividualAssessmentFlow(t *testing.T) {
	base := baseURL(t)

	resp := postJSON(t, base+"/api/predict/individual", map[string]interface{}{
		"full_name": fmt.Sprintf("E2E Person %d", time.Now().UnixNano()),
		"financial_data": map[string]float64{
			"monthly_income":       100000,
			"monthly_expenses":     60000,
			"credit_amount":        500000,
			"credit_history_score": 0.8,
			"has_collateral":       1,
			"employment_years":     5,
			"age":                  35,
		},
	})

	var rec struct {
		CreditScore float64 `json:"credit_score"`
		RiskLevel   string  `json:"risk_level"`
	}
	decodeBody(t, resp, &rec)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 300.0, rec.CreditScore)
	assert.Equal(t, "high", rec.RiskLevel)
}

func TestValidationErrors(t *testing.T) {
	base := baseURL(t)

	resp := postJSON(t, base+"/api/predict", map[string]interface{}{
		"company_name":   "Incomplete Co",
		"financial_data": map[string]float64{"current_assets": 1000},
	})

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details string `json:"details"`
		} `json:"error"`
	}
	decodeBody(t, resp, &body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Contains(t, body.Error.Details, "missing required fields")
}
