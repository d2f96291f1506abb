package ratio

import (
	"fmt"
	"math"

	"dart_analysis/pkg/models"
)

// =============================================================================
// YEAR-OVER-YEAR GROWTH
// =============================================================================

// YoYResult holds the period-over-period change of one canonical field.
type YoYResult struct {
	Field        string
	CurrentValue float64
	PriorValue   float64
	ChangeAbs    float64
	ChangePct    float64
}

// CalculateYoY returns the percentage change (current - prior) / prior * 100.
// Growth from a zero base is reported as +Inf and filtered by callers.
func CalculateYoY(current, prior float64) float64 {
	if prior == 0 {
		if current == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return (current - prior) / math.Abs(prior) * 100
}

// YoYFromStatements compares one canonical field across two statements,
// typically the same quarter of consecutive fiscal years.
func YoYFromStatements(current, prior *models.FinancialStatement, field string) (*YoYResult, error) {
	currentValue, ok := current.Field(field)
	if !ok {
		return nil, fmt.Errorf("field %q missing from current statement", field)
	}
	priorValue, ok := prior.Field(field)
	if !ok {
		return nil, fmt.Errorf("field %q missing from prior statement", field)
	}

	return &YoYResult{
		Field:        field,
		CurrentValue: currentValue,
		PriorValue:   priorValue,
		ChangeAbs:    currentValue - priorValue,
		ChangePct:    CalculateYoY(currentValue, priorValue),
	}, nil
}
