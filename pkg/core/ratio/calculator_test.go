package ratio

import (
	"math"
	"testing"

	"dart_analysis/pkg/models"
)

func sampleData() *models.NormalizedData {
	return &models.NormalizedData{
		BalanceSheet: map[string]float64{
			"total_assets":        523659586,
			"total_liabilities":   110158092,
			"total_equity":        413501494,
			"current_assets":      229440881,
			"current_liabilities": 87259259,
			"inventory":           50332392,
		},
		IncomeStatement: map[string]float64{
			"revenue":          239768567,
			"operating_income": 23527391,
			"net_income":       25565060,
		},
		CashFlow: map[string]float64{},
	}
}

func ratioByKind(ratios []*models.FinancialRatio, kind models.RatioKind) *models.FinancialRatio {
	for _, r := range ratios {
		if r.Kind == kind {
			return r
		}
	}
	return nil
}

func TestCalculateAll(t *testing.T) {
	c := NewCalculator()
	ratios, err := c.CalculateAll(sampleData(), "stmt-1", nil)
	if err != nil {
		t.Fatalf("CalculateAll failed: %v", err)
	}
	if len(ratios) != 9 {
		t.Fatalf("got %d ratios, want 9", len(ratios))
	}

	want := map[models.RatioKind]float64{
		models.RatioROA:              round4(25565060.0 / 523659586.0 * 100),
		models.RatioROE:              round4(25565060.0 / 413501494.0 * 100),
		models.RatioProfitMargin:     round4(25565060.0 / 239768567.0 * 100),
		models.RatioOperatingMargin:  round4(23527391.0 / 239768567.0 * 100),
		models.RatioCurrentRatio:     round4(229440881.0 / 87259259.0),
		models.RatioQuickRatio:       round4((229440881.0 - 50332392.0) / 87259259.0),
		models.RatioDebtRatio:        round4(110158092.0 / 523659586.0),
		models.RatioEquityMultiplier: round4(523659586.0 / 413501494.0),
		models.RatioAssetTurnover:    round4(239768567.0 / 523659586.0),
	}
	for kind, wantValue := range want {
		r := ratioByKind(ratios, kind)
		if r == nil {
			t.Errorf("missing ratio %s", kind)
			continue
		}
		if math.Abs(r.Value-wantValue) > 1e-9 {
			t.Errorf("%s = %v, want %v", kind, r.Value, wantValue)
		}
		if r.StatementID != "stmt-1" {
			t.Errorf("%s statement id = %q", kind, r.StatementID)
		}
		if r.Estimated {
			t.Errorf("%s unexpectedly flagged estimated", kind)
		}
	}
	t.Logf("ROA=%.4f ROE=%.4f", want[models.RatioROA], want[models.RatioROE])
}

func TestCalculateAllPartialWithoutEquity(t *testing.T) {
	data := sampleData()
	delete(data.BalanceSheet, "total_equity")

	c := NewCalculator()
	ratios, err := c.CalculateAll(data, "stmt-2", nil)
	if err != nil {
		t.Fatalf("CalculateAll failed: %v", err)
	}

	if ratioByKind(ratios, models.RatioROE) != nil {
		t.Error("ROE computed without total_equity")
	}
	if ratioByKind(ratios, models.RatioEquityMultiplier) != nil {
		t.Error("equity multiplier computed without total_equity")
	}
	if ratioByKind(ratios, models.RatioROA) == nil {
		t.Error("ROA should survive a missing total_equity")
	}
	if ratioByKind(ratios, models.RatioCurrentRatio) == nil {
		t.Error("liquidity ratios should survive a missing total_equity")
	}
}

func TestCalculateAllSkipsLiquidityWithoutCurrentLiabilities(t *testing.T) {
	data := sampleData()
	delete(data.BalanceSheet, "current_liabilities")

	c := NewCalculator()
	ratios, err := c.CalculateAll(data, "stmt-3", nil)
	if err != nil {
		t.Fatalf("CalculateAll failed: %v", err)
	}
	if ratioByKind(ratios, models.RatioCurrentRatio) != nil || ratioByKind(ratios, models.RatioQuickRatio) != nil {
		t.Error("liquidity ratios computed without current_liabilities")
	}
}

func TestCalculateAllEmptyData(t *testing.T) {
	data := &models.NormalizedData{
		BalanceSheet:    map[string]float64{},
		IncomeStatement: map[string]float64{},
		CashFlow:        map[string]float64{},
	}

	c := NewCalculator()
	_, err := c.CalculateAll(data, "stmt-4", nil)
	if err == nil {
		t.Fatal("expected error when nothing is computable")
	}
	if _, ok := err.(*models.CalculationError); !ok {
		t.Errorf("error type = %T, want *models.CalculationError", err)
	}
}

func TestCalculateAllEstimatedNetIncomePropagates(t *testing.T) {
	c := NewCalculator()
	ratios, err := c.CalculateAll(sampleData(), "stmt-5", map[string]bool{"net_income": true})
	if err != nil {
		t.Fatalf("CalculateAll failed: %v", err)
	}

	for _, kind := range []models.RatioKind{models.RatioROA, models.RatioROE, models.RatioProfitMargin} {
		if r := ratioByKind(ratios, kind); r == nil || !r.Estimated {
			t.Errorf("%s should carry the estimated flag", kind)
		}
	}
	if r := ratioByKind(ratios, models.RatioDebtRatio); r != nil && r.Estimated {
		t.Error("debt ratio does not depend on net income, must not be flagged")
	}
}

func TestCalculateAllOutOfBoundsRatioRejected(t *testing.T) {
	// Tiny equity pushes ROE past its construction bound; the rest of the
	// profitability category computed before it must survive.
	data := sampleData()
	data.BalanceSheet["total_equity"] = 1000

	c := NewCalculator()
	ratios, err := c.CalculateAll(data, "stmt-6", nil)
	if err != nil {
		t.Fatalf("CalculateAll failed: %v", err)
	}

	if ratioByKind(ratios, models.RatioROE) != nil {
		t.Error("out-of-bounds ROE should have been rejected")
	}
	if ratioByKind(ratios, models.RatioROA) == nil {
		t.Error("ROA computed before the failure must be kept")
	}
	if ratioByKind(ratios, models.RatioDebtRatio) == nil {
		t.Error("later categories must still run after a profitability failure")
	}
}
