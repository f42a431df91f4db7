// internal/storage/postgres_test.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"credit-risk-service/internal/common/logger"
	"credit-risk-service/internal/models"
	"credit-risk-service/internal/risk"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func companyRecord() *models.CompanyAssessment {
	return &models.CompanyAssessment{
		ID:             "11111111-2222-3333-4444-555555555555",
		CompanyName:    "Vector Manufacturing",
		AssessmentDate: time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC),
		FinancialData: risk.FinancialInput{
			"current_assets":      700000,
			"current_liabilities": 200000,
		},
		AltmanZScore:           -4.1091,
		AltmanRiskLevel:        risk.RiskHigh,
		AltmanRecommendation:   "High bankruptcy risk.",
		TafflerZScore:          1.3083,
		TafflerRiskLevel:       risk.RiskLow,
		TafflerRecommendation:  "Low bankruptcy risk.",
		CombinedRiskLevel:      risk.RiskHigh,
		CombinedRecommendation: "Urgent measures required.",
		CreatedAt:              time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC),
	}
}

func individualRecord() *models.IndividualAssessment {
	return &models.IndividualAssessment{
		ID:             "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
		FullName:       "Anna Petrova",
		AssessmentDate: time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC),
		FinancialData: risk.FinancialInput{
			"monthly_income": 100000,
		},
		CreditScore:    300,
		RiskLevel:      risk.RiskHigh,
		Recommendation: "High credit risk.",
		CreatedAt:      time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestSaveCompanyAssessment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewAssessmentStore(db, logger.NewTestLogger(t))
	rec := companyRecord()

	financialJSON, err := json.Marshal(rec.FinancialData)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO company_assessments").
		WithArgs(
			rec.ID, rec.CompanyName, rec.AssessmentDate, financialJSON,
			rec.AltmanZScore, rec.AltmanRiskLevel, rec.AltmanRecommendation,
			rec.TafflerZScore, rec.TafflerRiskLevel, rec.TafflerRecommendation,
			rec.CombinedRiskLevel, rec.CombinedRecommendation, rec.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.SaveCompanyAssessment(context.Background(), rec)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCompanyAssessment_DatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewAssessmentStore(db, logger.NewTestLogger(t))

	mock.ExpectExec("INSERT INTO company_assessments").
		WillReturnError(errors.New("connection reset"))

	err = store.SaveCompanyAssessment(context.Background(), companyRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert company assessment")
}

func TestSaveIndividualAssessment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewAssessmentStore(db, logger.NewTestLogger(t))
	rec := individualRecord()

	financialJSON, err := json.Marshal(rec.FinancialData)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO individual_assessments").
		WithArgs(
			rec.ID, rec.FullName, rec.AssessmentDate, financialJSON,
			rec.CreditScore, rec.RiskLevel, rec.Recommendation, rec.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.SaveIndividualAssessment(context.Background(), rec)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewAssessmentStore(db, logger.NewTestLogger(t))
	rec := companyRecord()

	financialJSON, err := json.Marshal(rec.FinancialData)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{
		"id", "company_name", "assessment_date", "financial_data",
		"altman_z_score", "altman_risk_level", "altman_recommendation",
		"taffler_z_score", "taffler_risk_level", "taffler_recommendation",
		"combined_risk_level", "combined_recommendation", "created_at",
	}).AddRow(
		rec.ID, rec.CompanyName, rec.AssessmentDate, financialJSON,
		rec.AltmanZScore, rec.AltmanRiskLevel, rec.AltmanRecommendation,
		rec.TafflerZScore, rec.TafflerRiskLevel, rec.TafflerRecommendation,
		rec.CombinedRiskLevel, rec.CombinedRecommendation, rec.CreatedAt,
	)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM company_assessments").
		WithArgs(rec.CompanyName, from, to, defaultHistoryLimit).
		WillReturnRows(rows)

	history, err := store.CompanyHistory(context.Background(), rec.CompanyName, from, to)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, rec.ID, history[0].ID)
	assert.Equal(t, rec.AltmanZScore, history[0].AltmanZScore)
	assert.Equal(t, rec.FinancialData, history[0].FinancialData)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyHistory_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewAssessmentStore(db, logger.NewTestLogger(t))

	mock.ExpectQuery("SELECT (.+) FROM company_assessments").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_name", "assessment_date", "financial_data",
			"altman_z_score", "altman_risk_level", "altman_recommendation",
			"taffler_z_score", "taffler_risk_level", "taffler_recommendation",
			"combined_risk_level", "combined_recommendation", "created_at",
		}))

	history, err := store.CompanyHistory(context.Background(), "Unknown Co",
		time.Time{}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestIndividualHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewAssessmentStore(db, logger.NewTestLogger(t))
	rec := individualRecord()

	financialJSON, err := json.Marshal(rec.FinancialData)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{
		"id", "full_name", "assessment_date", "financial_data",
		"credit_score", "risk_level", "recommendation", "created_at",
	}).AddRow(
		rec.ID, rec.FullName, rec.AssessmentDate, financialJSON,
		rec.CreditScore, rec.RiskLevel, rec.Recommendation, rec.CreatedAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM individual_assessments").
		WillReturnRows(rows)

	history, err := store.IndividualHistory(context.Background(), rec.FullName,
		time.Time{}, time.Now())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, rec.CreditScore, history[0].CreditScore)
	assert.Equal(t, rec.RiskLevel, history[0].RiskLevel)
}

func TestIndividualHistory_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewAssessmentStore(db, logger.NewTestLogger(t))

	mock.ExpectQuery("SELECT (.+) FROM individual_assessments").
		WillReturnError(errors.New("relation does not exist"))

	_, err = store.IndividualHistory(context.Background(), "Anna Petrova",
		time.Time{}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query individual history")
}
