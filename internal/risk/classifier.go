package risk

// Thresholds is the two-cut classification configuration of one formula
// family. Thresholds are not shared between families; each model passes its
// own instance explicitly.
type Thresholds struct {
	Low    float64 // score strictly above -> low risk
	Medium float64 // score strictly above (and <= Low) -> medium risk
}

var (
	// AltmanThresholds: Z > 0 low, -0.5 < Z <= 0 medium, Z <= -0.5 high.
	AltmanThresholds = Thresholds{Low: 0.0, Medium: -0.5}

	// TafflerThresholds: T > 0.5 low, 0.3 < T <= 0.5 medium, T <= 0.3 high.
	TafflerThresholds = Thresholds{Low: 0.5, Medium: 0.3}

	// IndividualThresholds: score > 700 low, 500 < score <= 700 medium,
	// score <= 500 high.
	IndividualThresholds = Thresholds{Low: 700, Medium: 500}
)

// Classify maps a score to its risk level. Boundary values fall into the
// higher-severity adjacent bucket: a score exactly at Low is medium, exactly
// at Medium is high.
func (t Thresholds) Classify(score float64) RiskLevel {
	switch {
	case score > t.Low:
		return RiskLow
	case score > t.Medium:
		return RiskMedium
	default:
		return RiskHigh
	}
}
