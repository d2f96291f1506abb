// Package validate implements the stage-boundary contracts of the pipeline:
// normalized-data completeness before ratio calculation, ratio sanity before
// narrative generation, narrative completeness before report generation, and
// a final cross-check. Gates either pass (possibly with warnings) or fail
// with a ValidationError; they never silently drop data.
package validate

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"dart_analysis/pkg/models"
)

// DefaultBalanceTolerance is the accepted relative mismatch of the
// accounting equation, as a fraction of total assets. DART filings round
// per line item, so exact equality cannot be required.
const DefaultBalanceTolerance = 0.01

// Narrative text bounds. Below the minimum a section was almost certainly
// truncated by the generator; above the soft maximum it is suspicious but
// usable.
const (
	minNarrativeLength = 50
	maxNarrativeLength = 5000
)

// StageResult is the transient checkpoint a gate produces: pass/fail plus
// the warnings accumulated on the way.
type StageResult struct {
	Stage    string
	Passed   bool
	Warnings []string
}

func (r *StageResult) warnf(format string, args ...interface{}) {
	warning := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, warning)
	log.Printf("[Validator] %s: %s", r.Stage, warning)
}

// BalanceCheck verifies Assets = Liabilities + Equity within tolerance.
type BalanceCheck struct {
	TotalAssets      float64
	TotalLiabilities float64
	TotalEquity      float64
	Difference       float64
	IsBalanced       bool
	Tolerance        float64
}

// CheckBalanceEquation validates A = L + E. Tolerance is absolute.
func CheckBalanceEquation(assets, liabilities, equity, tolerance float64) *BalanceCheck {
	diff := assets - (liabilities + equity)
	return &BalanceCheck{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		TotalEquity:      equity,
		Difference:       diff,
		IsBalanced:       math.Abs(diff) <= tolerance,
		Tolerance:        tolerance,
	}
}

// StageValidator holds the gate configuration.
type StageValidator struct {
	// BalanceTolerance is relative to total assets.
	BalanceTolerance float64
}

func NewStageValidator() *StageValidator {
	return &StageValidator{BalanceTolerance: DefaultBalanceTolerance}
}

// ValidateNormalized is the stage 1→2 gate. Fatal only when every section is
// empty; balance-equation mismatch and missing required fields are warnings,
// so partial filings still flow through the pipeline.
func (v *StageValidator) ValidateNormalized(data *models.NormalizedData) (*StageResult, error) {
	result := &StageResult{Stage: "stage1->2"}

	if data == nil || data.IsEmpty() {
		return result, &models.ValidationError{
			Stage:  result.Stage,
			Reason: "no financial data extracted, all sections are empty",
		}
	}

	bs := data.BalanceSheet
	for _, item := range []string{"total_assets", "total_liabilities", "total_equity"} {
		value, ok := bs[item]
		if !ok {
			result.warnf("missing balance sheet item %s, proceeding with available data", item)
			continue
		}
		if value < 0 {
			result.warnf("negative value for %s: %.0f", item, value)
		}
	}

	assets, hasAssets := bs["total_assets"]
	liabilities, hasLiabilities := bs["total_liabilities"]
	equity, hasEquity := bs["total_equity"]
	if hasAssets && hasLiabilities && hasEquity {
		check := CheckBalanceEquation(assets, liabilities, equity, assets*v.BalanceTolerance)
		if !check.IsBalanced {
			result.warnf("balance equation mismatch: assets=%.0f liabilities+equity=%.0f diff=%.0f",
				assets, liabilities+equity, check.Difference)
		}
	}

	is := data.IncomeStatement
	for _, item := range []string{"revenue", "operating_income", "net_income"} {
		if _, ok := is[item]; !ok {
			result.warnf("missing income statement item %s, proceeding with available data", item)
		}
	}
	if revenue, ok := is["revenue"]; ok && revenue <= 0 {
		result.warnf("revenue is not positive: %.0f", revenue)
	}

	result.Passed = true
	log.Printf("[Validator] stage 1->2 passed with %d warnings", len(result.Warnings))
	return result, nil
}

// ValidateRatios is the stage 2→3 gate: non-empty ratio set, finite values,
// and a defensive re-check of the construction bounds.
func (v *StageValidator) ValidateRatios(ratios []*models.FinancialRatio) (*StageResult, error) {
	result := &StageResult{Stage: "stage2->3"}

	if len(ratios) == 0 {
		return result, &models.ValidationError{
			Stage:  result.Stage,
			Reason: "no ratios calculated, cannot proceed to analysis",
		}
	}

	hasProfitability := false
	for _, r := range ratios {
		if math.IsNaN(r.Value) {
			return result, &models.ValidationError{
				Stage:  result.Stage,
				Reason: fmt.Sprintf("ratio %s has NaN value", r.Kind),
			}
		}
		if math.IsInf(r.Value, 0) {
			return result, &models.ValidationError{
				Stage:  result.Stage,
				Reason: fmt.Sprintf("ratio %s has infinite value", r.Kind),
			}
		}
		min, max, known := models.Bounds(r.Kind)
		if !known {
			return result, &models.ValidationError{
				Stage:  result.Stage,
				Reason: fmt.Sprintf("unknown ratio kind %s", r.Kind),
			}
		}
		if r.Value < min || r.Value > max {
			return result, &models.ValidationError{
				Stage:  result.Stage,
				Reason: fmt.Sprintf("ratio %s value %.4f outside bounds [%.0f, %.0f]", r.Kind, r.Value, min, max),
			}
		}
		if r.IsProfitability() {
			hasProfitability = true
		}
	}
	if !hasProfitability {
		result.warnf("no profitability ratios calculated")
	}

	result.Passed = true
	log.Printf("[Validator] stage 2->3 passed (%d ratios)", len(ratios))
	return result, nil
}

// ValidateNarrative is the stage 3→4 gate over the externally produced
// narrative payload. Guards against truncated or empty generator responses
// slipping into the report.
func (v *StageValidator) ValidateNarrative(payload map[string]interface{}) (*StageResult, error) {
	result := &StageResult{Stage: "stage3->4"}

	for _, key := range []string{"kpi_summary", "statement_table_summary", "ratio_analysis"} {
		if _, ok := payload[key]; !ok {
			return result, &models.ValidationError{
				Stage:  result.Stage,
				Reason: fmt.Sprintf("missing required analysis section %q", key),
			}
		}
	}

	for _, key := range []string{"kpi_summary", "ratio_analysis"} {
		text, ok := payload[key].(string)
		if !ok {
			return result, &models.ValidationError{
				Stage:  result.Stage,
				Reason: fmt.Sprintf("%s is not a string", key),
			}
		}
		if len(strings.TrimSpace(text)) < minNarrativeLength {
			return result, &models.ValidationError{
				Stage:  result.Stage,
				Reason: fmt.Sprintf("%s too short (%d chars), likely truncated", key, len(text)),
			}
		}
		if len(text) > maxNarrativeLength {
			result.warnf("%s very long (%d chars)", key, len(text))
		}
	}

	tableSummary, ok := payload["statement_table_summary"].(map[string]interface{})
	if !ok {
		return result, &models.ValidationError{
			Stage:  result.Stage,
			Reason: "statement_table_summary is not a mapping",
		}
	}
	for _, key := range []string{"balance_sheet_summary", "income_statement_summary"} {
		if _, ok := tableSummary[key]; !ok {
			return result, &models.ValidationError{
				Stage:  result.Stage,
				Reason: fmt.Sprintf("missing %s in statement table summary", key),
			}
		}
	}

	result.Passed = true
	log.Printf("[Validator] stage 3->4 passed")
	return result, nil
}

// ValidateFinal cross-checks the whole run before results are handed back:
// statement completeness and a non-empty ratio set are fatal, an incomplete
// report or missing chart files only warn.
func (v *StageValidator) ValidateFinal(statement *models.FinancialStatement, ratios []*models.FinancialRatio, reportComplete bool, chartPaths []string) (*StageResult, error) {
	result := &StageResult{Stage: "final"}

	if statement == nil || !statement.IsComplete() {
		return result, &models.ValidationError{
			Stage:  result.Stage,
			Reason: "financial statement is incomplete",
		}
	}
	if len(ratios) == 0 {
		return result, &models.ValidationError{
			Stage:  result.Stage,
			Reason: "no ratios generated",
		}
	}
	if !reportComplete {
		result.warnf("analysis report is incomplete")
	}
	for _, path := range chartPaths {
		if _, err := os.Stat(path); err != nil {
			result.warnf("chart file missing: %s", path)
		}
	}

	result.Passed = true
	log.Printf("[Validator] final validation passed")
	return result, nil
}
