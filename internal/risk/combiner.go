package risk

// CombineRisk merges the two company model outcomes by taking the worse of
// the two risk levels. No weighting or averaging is applied.
func CombineRisk(altman, taffler ScoreResult) CombinedResult {
	combined := altman.Level.Ordinal()
	if o := taffler.Level.Ordinal(); o > combined {
		combined = o
	}

	level := levelFromOrdinal(combined)

	return CombinedResult{
		Level:          level,
		Recommendation: combinedRecommendation(level),
	}
}

func combinedRecommendation(level RiskLevel) string {
	switch level {
	case RiskLow:
		return "Both models indicate low bankruptcy risk. The company is in a stable financial position."
	case RiskMedium:
		return "The models indicate a medium risk level. Regular monitoring of financial indicators and measures to improve the financial condition are recommended."
	default:
		return "Both models indicate high bankruptcy risk. Urgent measures to stabilize the company's financial position are required."
	}
}
