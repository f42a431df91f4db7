// internal/models/assessment.go
package models

import (
	"time"

	"credit-risk-service/internal/risk"
)

// CompanyAssessment is the persisted snapshot of one company risk
// assessment. Records are created once and never updated; history is
// accumulation-only.
type CompanyAssessment struct {
	ID             string              `json:"id"`
	CompanyName    string              `json:"company_name"`
	AssessmentDate time.Time           `json:"assessment_date"`
	FinancialData  risk.FinancialInput `json:"financial_data"`

	AltmanZScore         float64        `json:"altman_z_score"`
	AltmanRiskLevel      risk.RiskLevel `json:"altman_risk_level"`
	AltmanRecommendation string         `json:"altman_recommendation"`

	TafflerZScore         float64        `json:"taffler_z_score"`
	TafflerRiskLevel      risk.RiskLevel `json:"taffler_risk_level"`
	TafflerRecommendation string         `json:"taffler_recommendation"`

	CombinedRiskLevel      risk.RiskLevel `json:"combined_risk_level"`
	CombinedRecommendation string         `json:"combined_recommendation"`

	CreatedAt time.Time `json:"created_at"`
}

// IndividualAssessment is the persisted snapshot of one individual credit
// assessment.
type IndividualAssessment struct {
	ID             string              `json:"id"`
	FullName       string              `json:"full_name"`
	AssessmentDate time.Time           `json:"assessment_date"`
	FinancialData  risk.FinancialInput `json:"financial_data"`

	CreditScore    float64        `json:"credit_score"`
	RiskLevel      risk.RiskLevel `json:"risk_level"`
	Recommendation string         `json:"recommendation"`

	CreatedAt time.Time `json:"created_at"`
}
