package risk

import "fmt"

// Two-factor Altman model weights. These constants define the statistical
// model and are not configurable at runtime.
const (
	altmanConstant        = -0.3877
	altmanLiquidityWeight = -1.0736
	altmanDebtWeight      = 0.0579
)

// Four-ratio Taffler model weights.
const (
	tafflerProfitabilityWeight = 0.53
	tafflerWorkingCapWeight    = 0.13
	tafflerLeverageWeight      = 0.18
	tafflerTurnoverWeight      = 0.16
)

// CalculateAltmanScore computes the two-factor Altman Z-score:
//
//	Z = -0.3877 - 1.0736*X1 + 0.0579*X2
//
// where X1 = current_assets / current_liabilities (current liquidity ratio)
// and X2 = debt_capital / liabilities (debt ratio).
func CalculateAltmanScore(data FinancialInput) (ScoreResult, error) {
	currentAssets := data.Get("current_assets", 0)
	currentLiabilities := data.Get("current_liabilities", 1)
	debtCapital := data.Get("debt_capital", 0)
	liabilities := data.Get("liabilities", 1)

	if currentLiabilities <= 0 {
		return ScoreResult{}, fmt.Errorf("%w: current_liabilities must be positive", ErrInvalidInput)
	}
	if liabilities <= 0 {
		return ScoreResult{}, fmt.Errorf("%w: liabilities must be positive", ErrInvalidInput)
	}

	currentLiquidityRatio := currentAssets / currentLiabilities
	debtRatio := debtCapital / liabilities

	zScore := altmanConstant +
		altmanLiquidityWeight*currentLiquidityRatio +
		altmanDebtWeight*debtRatio

	level := AltmanThresholds.Classify(zScore)

	return ScoreResult{
		Score:          zScore,
		Level:          level,
		Recommendation: altmanRecommendation(level),
	}, nil
}

// CalculateTafflerScore computes the four-ratio Taffler score:
//
//	T = 0.53*X1 + 0.13*X2 + 0.18*X3 + 0.16*X4
//
// where X1 = sales_profit / short_term_liabilities,
// X2 = current_assets / liabilities,
// X3 = long_term_liabilities / total_assets,
// X4 = sales / total_assets.
func CalculateTafflerScore(data FinancialInput) (ScoreResult, error) {
	salesProfit := data.Get("sales_profit", 0)
	shortTermLiabilities := data.Get("short_term_liabilities", 1)
	currentAssets := data.Get("current_assets", 0)
	liabilities := data.Get("liabilities", 1)
	longTermLiabilities := data.Get("long_term_liabilities", 0)
	totalAssets := data.Get("total_assets", 1)
	sales := data.Get("sales", 0)

	if shortTermLiabilities <= 0 {
		return ScoreResult{}, fmt.Errorf("%w: short_term_liabilities must be positive", ErrInvalidInput)
	}
	if liabilities <= 0 {
		return ScoreResult{}, fmt.Errorf("%w: liabilities must be positive", ErrInvalidInput)
	}
	if totalAssets <= 0 {
		return ScoreResult{}, fmt.Errorf("%w: total_assets must be positive", ErrInvalidInput)
	}

	tScore := tafflerProfitabilityWeight*(salesProfit/shortTermLiabilities) +
		tafflerWorkingCapWeight*(currentAssets/liabilities) +
		tafflerLeverageWeight*(longTermLiabilities/totalAssets) +
		tafflerTurnoverWeight*(sales/totalAssets)

	level := TafflerThresholds.Classify(tScore)

	return ScoreResult{
		Score:          tScore,
		Level:          level,
		Recommendation: tafflerRecommendation(level),
	}, nil
}

func altmanRecommendation(level RiskLevel) string {
	switch level {
	case RiskLow:
		return "Low bankruptcy risk. The company is in the safe zone."
	case RiskMedium:
		return "Medium bankruptcy risk. The company is in the gray zone. Additional monitoring is required."
	default:
		return "High bankruptcy risk. The company is in the danger zone. Urgent measures are required."
	}
}

func tafflerRecommendation(level RiskLevel) string {
	switch level {
	case RiskLow:
		return "Low bankruptcy risk. The company's financial position is stable."
	case RiskMedium:
		return "Medium bankruptcy risk. Close monitoring of financial indicators is required."
	default:
		return "High bankruptcy risk. The company's financial position is critical."
	}
}
