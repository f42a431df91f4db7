package risk

import "fmt"

// Individual credit score bounds and component caps (FICO-style range).
const (
	individualBaseScore = 300
	individualMinScore  = 300
	individualMaxScore  = 850

	maxIncomeToExpenseRatio = 3.0
	maxDebtToIncomeRatio    = 10.0
	maxEmploymentYears      = 20.0
)

// CalculateIndividualScore computes the point-based credit score for a
// natural person:
//
//	score = 300 + incomeRatio*200 + history*150 + collateral*100
//	      + employment*50/20 - (age/10)*20 - debtRatio*100
//
// with incomeRatio capped at 3.0, employment at 20 years and debtRatio at
// 10.0. The result is clamped into [300, 850].
func CalculateIndividualScore(data FinancialInput) (ScoreResult, error) {
	monthlyIncome := data.Get("monthly_income", 0)
	monthlyExpenses := data.Get("monthly_expenses", 1)
	creditAmount := data.Get("credit_amount", 0)
	creditHistoryScore := data.Get("credit_history_score", 0)
	hasCollateral := data.Get("has_collateral", 0)
	employmentYears := data.Get("employment_years", 0)
	age := data.Get("age", 30)

	if monthlyIncome <= 0 {
		return ScoreResult{}, fmt.Errorf("%w: monthly_income must be positive", ErrInvalidInput)
	}
	if monthlyExpenses <= 0 {
		return ScoreResult{}, fmt.Errorf("%w: monthly_expenses must be positive", ErrInvalidInput)
	}
	if creditHistoryScore < 0 || creditHistoryScore > 1 {
		return ScoreResult{}, fmt.Errorf("%w: credit_history_score must be between 0 and 1", ErrInvalidInput)
	}
	if age < 18 || age > 100 {
		return ScoreResult{}, fmt.Errorf("%w: age must be between 18 and 100", ErrInvalidInput)
	}

	incomeToExpenseRatio := monthlyIncome / monthlyExpenses
	if incomeToExpenseRatio > maxIncomeToExpenseRatio {
		incomeToExpenseRatio = maxIncomeToExpenseRatio
	}

	debtToIncomeRatio := creditAmount / monthlyIncome
	if debtToIncomeRatio > maxDebtToIncomeRatio {
		debtToIncomeRatio = maxDebtToIncomeRatio
	}

	if employmentYears > maxEmploymentYears {
		employmentYears = maxEmploymentYears
	}

	collateral := 0.0
	if hasCollateral > 0 {
		collateral = 1.0
	}

	score := individualBaseScore +
		incomeToExpenseRatio*200 +
		creditHistoryScore*150 +
		collateral*100 +
		employmentYears*50/maxEmploymentYears -
		(age/10)*20 -
		debtToIncomeRatio*100

	if score < individualMinScore {
		score = individualMinScore
	}
	if score > individualMaxScore {
		score = individualMaxScore
	}

	level := IndividualThresholds.Classify(score)

	return ScoreResult{
		Score:          score,
		Level:          level,
		Recommendation: individualRecommendation(level),
	}, nil
}

func individualRecommendation(level RiskLevel) string {
	switch level {
	case RiskLow:
		return "Low credit risk. The borrower has good solvency and credit history. The loan can be approved on favorable terms."
	case RiskMedium:
		return "Medium credit risk. The borrower has acceptable solvency. Additional review is recommended, possibly with a higher interest rate or a collateral requirement."
	default:
		return "High credit risk. The borrower has low solvency or a poor credit history. Rejection or a substantial collateral requirement with a higher interest rate is recommended."
	}
}
