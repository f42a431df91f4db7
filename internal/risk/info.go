package risk

// ModelInfo describes the available scoring models and their inputs.
type ModelInfo struct {
	Models                []string            `json:"models"`
	AltmanDescription     string              `json:"altman_description"`
	TafflerDescription    string              `json:"taffler_description"`
	IndividualDescription string              `json:"individual_description"`
	RequiredFields        map[string][]string `json:"required_fields"`
}

// GetModelInfo returns the static model catalog.
func GetModelInfo() ModelInfo {
	return ModelInfo{
		Models: []string{"altman", "taffler", "individual"},
		AltmanDescription: "Two-factor Altman model: a discriminant bankruptcy score built from " +
			"the current liquidity ratio and the debt ratio.",
		TafflerDescription: "Taffler model: a four-ratio weighted bankruptcy score covering " +
			"profitability, working capital, leverage and asset turnover.",
		IndividualDescription: "Point-based creditworthiness score for a natural person in the " +
			"standard 300-850 range.",
		RequiredFields: map[string][]string{
			"altman":     append([]string(nil), AltmanFields.Required...),
			"taffler":    append([]string(nil), TafflerFields.Required...),
			"individual": append([]string(nil), IndividualFields.Required...),
		},
	}
}
