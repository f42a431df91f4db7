package risk

import (
	"fmt"
	"sort"
	"strings"
)

// FieldSpec names the required fields of a formula family and the subset
// that must be strictly positive.
type FieldSpec struct {
	Required []string
	Positive []string
}

var (
	// AltmanFields covers the two-factor company model.
	AltmanFields = FieldSpec{
		Required: []string{"current_assets", "current_liabilities", "debt_capital", "liabilities"},
		Positive: []string{"current_liabilities", "liabilities"},
	}

	// TafflerFields covers the four-ratio company model.
	TafflerFields = FieldSpec{
		Required: []string{
			"sales_profit", "short_term_liabilities", "current_assets",
			"liabilities", "long_term_liabilities", "total_assets", "sales",
		},
		Positive: []string{"short_term_liabilities", "liabilities", "total_assets"},
	}

	// CompanyFields is the union of both company models, used when one
	// request feeds both.
	CompanyFields = FieldSpec{
		Required: []string{
			"current_assets", "current_liabilities", "debt_capital", "liabilities",
			"sales_profit", "short_term_liabilities", "long_term_liabilities",
			"total_assets", "sales",
		},
		Positive: []string{"current_liabilities", "liabilities", "short_term_liabilities", "total_assets"},
	}

	// IndividualFields covers the individual credit scoring model.
	IndividualFields = FieldSpec{
		Required: []string{
			"monthly_income", "monthly_expenses", "credit_amount",
			"credit_history_score", "has_collateral", "employment_years", "age",
		},
		Positive: []string{"monthly_income", "monthly_expenses"},
	}
)

// Validate checks input against spec. All missing required fields are
// reported together in one error, sorted and comma-joined; otherwise the
// first non-positive value among the positivity-constrained fields is
// reported. No coercion or defaulting happens here.
func Validate(input FinancialInput, spec FieldSpec) error {
	var missing []string
	for _, field := range spec.Required {
		if _, ok := input[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	for _, field := range spec.Positive {
		if v, ok := input[field]; ok && v <= 0 {
			return fmt.Errorf("field %s must be a positive number", field)
		}
	}

	return nil
}
