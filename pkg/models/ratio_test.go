package models

import "testing"

func TestNewFinancialRatioBounds(t *testing.T) {
	cases := []struct {
		name  string
		kind  RatioKind
		value float64
		ok    bool
	}{
		{"roa in range", RatioROA, 4.88, true},
		{"roa at upper bound", RatioROA, 500, true},
		{"roa past upper bound", RatioROA, 600, false},
		{"roe deeply negative", RatioROE, -150, false},
		{"current ratio negative", RatioCurrentRatio, -0.1, false},
		{"debt ratio in range", RatioDebtRatio, 0.21, true},
		{"debt ratio past cap", RatioDebtRatio, 12, false},
		{"unknown kind", RatioKind("PE"), 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewFinancialRatio(tc.kind, tc.value, "stmt-1")
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Errorf("expected rejection, got %+v", r)
			}
		})
	}
}

func TestRatioCategories(t *testing.T) {
	roa, _ := NewFinancialRatio(RatioROA, 5, "s")
	if !roa.IsProfitability() || !roa.IsPercentage() {
		t.Error("ROA should be a percentage profitability ratio")
	}
	current, _ := NewFinancialRatio(RatioCurrentRatio, 2, "s")
	if !current.IsLiquidity() || current.IsPercentage() {
		t.Error("current ratio should be a plain liquidity ratio")
	}
	debt, _ := NewFinancialRatio(RatioDebtRatio, 0.5, "s")
	if !debt.IsLeverage() {
		t.Error("debt ratio should be leverage")
	}
	turnover, _ := NewFinancialRatio(RatioAssetTurnover, 0.45, "s")
	if !turnover.IsEfficiency() {
		t.Error("asset turnover should be efficiency")
	}
}

func TestRatioFormat(t *testing.T) {
	roa, _ := NewFinancialRatio(RatioROA, 4.882, "s")
	if got := roa.Format(); got != "4.88%" {
		t.Errorf("Format = %q, want 4.88%%", got)
	}
	current, _ := NewFinancialRatio(RatioCurrentRatio, 2.6294, "s")
	if got := current.Format(); got != "2.63x" {
		t.Errorf("Format = %q, want 2.63x", got)
	}
}
