package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scoreWithLevel(level RiskLevel) ScoreResult {
	return ScoreResult{Score: 0, Level: level}
}

func TestCombineRisk_WorstOfTwo(t *testing.T) {
	tests := []struct {
		name     string
		altman   RiskLevel
		taffler  RiskLevel
		expected RiskLevel
	}{
		{"both low", RiskLow, RiskLow, RiskLow},
		{"low and medium", RiskLow, RiskMedium, RiskMedium},
		{"medium and low", RiskMedium, RiskLow, RiskMedium},
		{"both medium", RiskMedium, RiskMedium, RiskMedium},
		{"low and high", RiskLow, RiskHigh, RiskHigh},
		{"high and low", RiskHigh, RiskLow, RiskHigh},
		{"medium and high", RiskMedium, RiskHigh, RiskHigh},
		{"high and medium", RiskHigh, RiskMedium, RiskHigh},
		{"both high", RiskHigh, RiskHigh, RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combined := CombineRisk(scoreWithLevel(tt.altman), scoreWithLevel(tt.taffler))
			assert.Equal(t, tt.expected, combined.Level)
			assert.Equal(t, combinedRecommendation(tt.expected), combined.Recommendation)
		})
	}
}

func TestCombineRisk_CommutativeInSeverity(t *testing.T) {
	levels := []RiskLevel{RiskLow, RiskMedium, RiskHigh}
	for _, a := range levels {
		for _, b := range levels {
			ab := CombineRisk(scoreWithLevel(a), scoreWithLevel(b))
			ba := CombineRisk(scoreWithLevel(b), scoreWithLevel(a))
			assert.Equal(t, ab.Level, ba.Level)
		}
	}
}

func TestCombineRisk_ScoresDoNotInfluenceOutcome(t *testing.T) {
	// Only the tiers matter; the numeric scores are never weighted.
	a := ScoreResult{Score: -100, Level: RiskLow}
	b := ScoreResult{Score: 100, Level: RiskMedium}
	combined := CombineRisk(a, b)
	assert.Equal(t, RiskMedium, combined.Level)
}
