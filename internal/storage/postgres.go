// internal/storage/postgres.go
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"credit-risk-service/internal/common/logger"
	"credit-risk-service/internal/models"
	"credit-risk-service/internal/risk"
)

const defaultHistoryLimit = 100

// AssessmentStore persists assessment records in PostgreSQL.
type AssessmentStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewAssessmentStore(db *sql.DB, log logger.Logger) *AssessmentStore {
	return &AssessmentStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "assessment-store"}),
	}
}

// SaveCompanyAssessment inserts a company assessment record. Records are
// immutable; there is no update path.
func (s *AssessmentStore) SaveCompanyAssessment(ctx context.Context, rec *models.CompanyAssessment) error {
	financialJSON, err := json.Marshal(rec.FinancialData)
	if err != nil {
		return fmt.Errorf("marshal financial data: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO company_assessments (
			id, company_name, assessment_date, financial_data,
			altman_z_score, altman_risk_level, altman_recommendation,
			taffler_z_score, taffler_risk_level, taffler_recommendation,
			combined_risk_level, combined_recommendation, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rec.ID, rec.CompanyName, rec.AssessmentDate, financialJSON,
		rec.AltmanZScore, rec.AltmanRiskLevel, rec.AltmanRecommendation,
		rec.TafflerZScore, rec.TafflerRiskLevel, rec.TafflerRecommendation,
		rec.CombinedRiskLevel, rec.CombinedRecommendation, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company assessment: %w", err)
	}
	return nil
}

// SaveIndividualAssessment inserts an individual assessment record.
func (s *AssessmentStore) SaveIndividualAssessment(ctx context.Context, rec *models.IndividualAssessment) error {
	financialJSON, err := json.Marshal(rec.FinancialData)
	if err != nil {
		return fmt.Errorf("marshal financial data: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO individual_assessments (
			id, full_name, assessment_date, financial_data,
			credit_score, risk_level, recommendation, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.FullName, rec.AssessmentDate, financialJSON,
		rec.CreditScore, rec.RiskLevel, rec.Recommendation, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert individual assessment: %w", err)
	}
	return nil
}

// CompanyHistory returns assessments for a company within [from, to], most
// recent first.
func (s *AssessmentStore) CompanyHistory(ctx context.Context, name string, from, to time.Time) ([]models.CompanyAssessment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_name, assessment_date, financial_data,
			altman_z_score, altman_risk_level, altman_recommendation,
			taffler_z_score, taffler_risk_level, taffler_recommendation,
			combined_risk_level, combined_recommendation, created_at
		FROM company_assessments
		WHERE company_name = $1 AND assessment_date BETWEEN $2 AND $3
		ORDER BY assessment_date DESC
		LIMIT $4`,
		name, from, to, defaultHistoryLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("query company history: %w", err)
	}
	defer rows.Close()

	var out []models.CompanyAssessment
	for rows.Next() {
		var rec models.CompanyAssessment
		var financialJSON []byte
		if err := rows.Scan(
			&rec.ID, &rec.CompanyName, &rec.AssessmentDate, &financialJSON,
			&rec.AltmanZScore, &rec.AltmanRiskLevel, &rec.AltmanRecommendation,
			&rec.TafflerZScore, &rec.TafflerRiskLevel, &rec.TafflerRecommendation,
			&rec.CombinedRiskLevel, &rec.CombinedRecommendation, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company assessment: %w", err)
		}
		if err := unmarshalFinancialData(financialJSON, &rec.FinancialData); err != nil {
			s.logger.Warn("skipping malformed financial data", map[string]interface{}{
				"assessmentId": rec.ID,
				"error":        err.Error(),
			})
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate company history: %w", err)
	}
	return out, nil
}

// IndividualHistory returns assessments for a person within [from, to],
// most recent first.
func (s *AssessmentStore) IndividualHistory(ctx context.Context, name string, from, to time.Time) ([]models.IndividualAssessment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, full_name, assessment_date, financial_data,
			credit_score, risk_level, recommendation, created_at
		FROM individual_assessments
		WHERE full_name = $1 AND assessment_date BETWEEN $2 AND $3
		ORDER BY assessment_date DESC
		LIMIT $4`,
		name, from, to, defaultHistoryLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("query individual history: %w", err)
	}
	defer rows.Close()

	var out []models.IndividualAssessment
	for rows.Next() {
		var rec models.IndividualAssessment
		var financialJSON []byte
		if err := rows.Scan(
			&rec.ID, &rec.FullName, &rec.AssessmentDate, &financialJSON,
			&rec.CreditScore, &rec.RiskLevel, &rec.Recommendation, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan individual assessment: %w", err)
		}
		if err := unmarshalFinancialData(financialJSON, &rec.FinancialData); err != nil {
			s.logger.Warn("skipping malformed financial data", map[string]interface{}{
				"assessmentId": rec.ID,
				"error":        err.Error(),
			})
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate individual history: %w", err)
	}
	return out, nil
}

func unmarshalFinancialData(raw []byte, dst *risk.FinancialInput) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
