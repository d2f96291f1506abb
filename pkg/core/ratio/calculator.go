// Package ratio computes financial ratios from normalized statement data.
// Categories are independent: a failure in one degrades to fewer ratios
// instead of failing the run.
package ratio

import (
	"fmt"
	"log"
	"math"

	"dart_analysis/pkg/models"
)

// Calculator computes the four ratio categories. Stateless.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// CalculateAll computes every ratio the data supports. Each category is
// attempted independently; per-category errors are logged and swallowed.
// It fails only when no ratio in any category could be computed.
// estimated marks input fields filled by heuristic fallback; ratios built on
// them are tagged so downstream consumers can caveat them.
func (c *Calculator) CalculateAll(data *models.NormalizedData, statementID string, estimated map[string]bool) ([]*models.FinancialRatio, error) {
	var ratios []*models.FinancialRatio

	categories := []struct {
		name string
		fn   func(*models.NormalizedData, string) ([]*models.FinancialRatio, error)
	}{
		{"profitability", c.profitability},
		{"liquidity", c.liquidity},
		{"leverage", c.leverage},
		{"efficiency", c.efficiency},
	}

	for _, category := range categories {
		computed, err := category.fn(data, statementID)
		ratios = append(ratios, computed...)
		if err != nil {
			log.Printf("[RatioCalc] %s category failed: %v", category.name, err)
		}
	}

	if len(ratios) == 0 {
		return nil, &models.CalculationError{Reason: "no ratios could be computed in any category"}
	}

	if estimated["net_income"] {
		for _, r := range ratios {
			switch r.Kind {
			case models.RatioROA, models.RatioROE, models.RatioProfitMargin:
				r.Estimated = true
			}
		}
	}

	log.Printf("[RatioCalc] computed %d ratios for statement %s", len(ratios), statementID)
	return ratios, nil
}

// profitability: ROA, ROE, profit margin, operating margin (all percent).
func (c *Calculator) profitability(data *models.NormalizedData, statementID string) ([]*models.FinancialRatio, error) {
	bs, is := data.BalanceSheet, data.IncomeStatement
	netIncome := is["net_income"]

	var ratios []*models.FinancialRatio
	add := func(kind models.RatioKind, numerator, denominator float64) error {
		if denominator <= 0 {
			log.Printf("[RatioCalc] skipping %s: non-positive denominator", kind)
			return nil
		}
		r, err := models.NewFinancialRatio(kind, round4(numerator/denominator*100), statementID)
		if err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		ratios = append(ratios, r)
		return nil
	}

	if err := add(models.RatioROA, netIncome, bs["total_assets"]); err != nil {
		return ratios, err
	}
	if err := add(models.RatioROE, netIncome, bs["total_equity"]); err != nil {
		return ratios, err
	}
	if err := add(models.RatioProfitMargin, netIncome, is["revenue"]); err != nil {
		return ratios, err
	}
	if err := add(models.RatioOperatingMargin, is["operating_income"], is["revenue"]); err != nil {
		return ratios, err
	}
	return ratios, nil
}

// liquidity: current ratio and quick ratio.
func (c *Calculator) liquidity(data *models.NormalizedData, statementID string) ([]*models.FinancialRatio, error) {
	bs := data.BalanceSheet
	currentLiabilities := bs["current_liabilities"]
	if currentLiabilities <= 0 {
		log.Printf("[RatioCalc] skipping liquidity ratios: non-positive current_liabilities")
		return nil, nil
	}

	var ratios []*models.FinancialRatio

	current, err := models.NewFinancialRatio(models.RatioCurrentRatio,
		round4(bs["current_assets"]/currentLiabilities), statementID)
	if err != nil {
		return ratios, fmt.Errorf("CURRENT_RATIO: %w", err)
	}
	ratios = append(ratios, current)

	quick, err := models.NewFinancialRatio(models.RatioQuickRatio,
		round4((bs["current_assets"]-bs["inventory"])/currentLiabilities), statementID)
	if err != nil {
		return ratios, fmt.Errorf("QUICK_RATIO: %w", err)
	}
	ratios = append(ratios, quick)
	return ratios, nil
}

// leverage: debt ratio and equity multiplier.
func (c *Calculator) leverage(data *models.NormalizedData, statementID string) ([]*models.FinancialRatio, error) {
	bs := data.BalanceSheet
	var ratios []*models.FinancialRatio

	if assets := bs["total_assets"]; assets > 0 {
		debt, err := models.NewFinancialRatio(models.RatioDebtRatio,
			round4(bs["total_liabilities"]/assets), statementID)
		if err != nil {
			return ratios, fmt.Errorf("DEBT_RATIO: %w", err)
		}
		ratios = append(ratios, debt)
	} else {
		log.Printf("[RatioCalc] skipping DEBT_RATIO: non-positive total_assets")
	}

	if equity := bs["total_equity"]; equity > 0 {
		multiplier, err := models.NewFinancialRatio(models.RatioEquityMultiplier,
			round4(bs["total_assets"]/equity), statementID)
		if err != nil {
			return ratios, fmt.Errorf("EQUITY_MULTIPLIER: %w", err)
		}
		ratios = append(ratios, multiplier)
	} else {
		log.Printf("[RatioCalc] skipping EQUITY_MULTIPLIER: non-positive total_equity")
	}
	return ratios, nil
}

// efficiency: asset turnover.
func (c *Calculator) efficiency(data *models.NormalizedData, statementID string) ([]*models.FinancialRatio, error) {
	assets := data.BalanceSheet["total_assets"]
	if assets <= 0 {
		log.Printf("[RatioCalc] skipping ASSET_TURNOVER: non-positive total_assets")
		return nil, nil
	}
	turnover, err := models.NewFinancialRatio(models.RatioAssetTurnover,
		round4(data.IncomeStatement["revenue"]/assets), statementID)
	if err != nil {
		return nil, fmt.Errorf("ASSET_TURNOVER: %w", err)
	}
	return []*models.FinancialRatio{turnover}, nil
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
