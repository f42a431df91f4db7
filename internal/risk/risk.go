// Package risk implements the scoring engine: two company bankruptcy models
// (a two-factor Altman variant and a four-ratio Taffler variant), an
// individual credit scoring model, threshold classification and the
// worst-of-two risk combination policy. All functions are pure and
// deterministic over a fixed set of named scalar inputs.
package risk

import "errors"

// ErrInvalidInput marks a computation rejected by an in-formula guard,
// typically a non-positive denominator that slipped past the validator.
var ErrInvalidInput = errors.New("invalid financial input")

// FinancialInput maps named financial indicators to their values. Extra keys
// are ignored by every formula.
type FinancialInput map[string]float64

// Get returns the value for key, or def when the key is absent. The defaults
// used by the formulas (0 for numerators, 1 for denominators) are a
// last-resort guard only; validated inputs always carry every required key.
func (in FinancialInput) Get(key string, def float64) float64 {
	if v, ok := in[key]; ok {
		return v
	}
	return def
}

// RiskLevel is the ordered risk severity classification.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Ordinal maps a level to its severity rank (low=1, medium=2, high=3).
func (r RiskLevel) Ordinal() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	default:
		return 3
	}
}

func levelFromOrdinal(n int) RiskLevel {
	switch n {
	case 1:
		return RiskLow
	case 2:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// ScoreResult is the atomic output of a single scoring model. Score is
// unrounded; the orchestrator rounds at its output boundary.
type ScoreResult struct {
	Score          float64   `json:"score"`
	Level          RiskLevel `json:"risk_level"`
	Recommendation string    `json:"recommendation"`
}

// CombinedResult merges the two company model outcomes.
type CombinedResult struct {
	Level          RiskLevel `json:"risk_level"`
	Recommendation string    `json:"recommendation"`
}
