package models

import (
	"fmt"
	"time"
)

// =============================================================================
// FINANCIAL RATIO VALUE OBJECT
// =============================================================================

// RatioKind enumerates the ratio types the calculator produces.
type RatioKind string

const (
	RatioROA              RatioKind = "ROA"
	RatioROE              RatioKind = "ROE"
	RatioROI              RatioKind = "ROI"
	RatioDebtRatio        RatioKind = "DEBT_RATIO"
	RatioCurrentRatio     RatioKind = "CURRENT_RATIO"
	RatioQuickRatio       RatioKind = "QUICK_RATIO"
	RatioProfitMargin     RatioKind = "PROFIT_MARGIN"
	RatioOperatingMargin  RatioKind = "OPERATING_MARGIN"
	RatioAssetTurnover    RatioKind = "ASSET_TURNOVER"
	RatioEquityMultiplier RatioKind = "EQUITY_MULTIPLIER"
)

// ratioBounds holds the sanity range a ratio value must satisfy at construction.
type ratioBounds struct {
	min float64
	max float64
}

// Percentage-style kinds span [-100, 500]; positive-only kinds span [0, 1000];
// the debt ratio spans [0, 10]. A value outside its range signals an upstream
// extraction or normalization error and is rejected immediately.
var boundsByKind = map[RatioKind]ratioBounds{
	RatioROA:              {-100, 500},
	RatioROE:              {-100, 500},
	RatioROI:              {-100, 500},
	RatioProfitMargin:     {-100, 500},
	RatioOperatingMargin:  {-100, 500},
	RatioCurrentRatio:     {0, 1000},
	RatioQuickRatio:       {0, 1000},
	RatioAssetTurnover:    {0, 1000},
	RatioEquityMultiplier: {0, 1000},
	RatioDebtRatio:        {0, 10},
}

// FinancialRatio is an immutable computed ratio bound to one statement.
type FinancialRatio struct {
	Kind         RatioKind `json:"ratio_type"`
	Value        float64   `json:"value"`
	StatementID  string    `json:"statement_id"`
	Estimated    bool      `json:"estimated,omitempty"` // built from a fallback-derived input
	CalculatedAt time.Time `json:"calculated_at"`
}

// NewFinancialRatio validates bounds and constructs the ratio.
func NewFinancialRatio(kind RatioKind, value float64, statementID string) (*FinancialRatio, error) {
	b, ok := boundsByKind[kind]
	if !ok {
		return nil, fmt.Errorf("unknown ratio kind %q", kind)
	}
	if value < b.min || value > b.max {
		return nil, fmt.Errorf("%s value %.4f outside valid range [%.0f, %.0f]", kind, value, b.min, b.max)
	}
	return &FinancialRatio{
		Kind:         kind,
		Value:        value,
		StatementID:  statementID,
		CalculatedAt: time.Now(),
	}, nil
}

// Bounds returns the valid range for a ratio kind. Used by the stage gate to
// re-verify persisted or deserialized values.
func Bounds(kind RatioKind) (min, max float64, ok bool) {
	b, found := boundsByKind[kind]
	return b.min, b.max, found
}

// IsPercentage reports whether the kind is expressed in percent.
func (r *FinancialRatio) IsPercentage() bool {
	switch r.Kind {
	case RatioROA, RatioROE, RatioROI, RatioProfitMargin, RatioOperatingMargin:
		return true
	}
	return false
}

// IsProfitability reports membership in the profitability category.
func (r *FinancialRatio) IsProfitability() bool {
	switch r.Kind {
	case RatioROA, RatioROE, RatioROI, RatioProfitMargin, RatioOperatingMargin:
		return true
	}
	return false
}

// IsLiquidity reports membership in the liquidity category.
func (r *FinancialRatio) IsLiquidity() bool {
	return r.Kind == RatioCurrentRatio || r.Kind == RatioQuickRatio
}

// IsLeverage reports membership in the leverage category.
func (r *FinancialRatio) IsLeverage() bool {
	return r.Kind == RatioDebtRatio || r.Kind == RatioEquityMultiplier
}

// IsEfficiency reports membership in the efficiency category.
func (r *FinancialRatio) IsEfficiency() bool {
	return r.Kind == RatioAssetTurnover
}

// Format renders the value for reports: percent kinds get a % suffix,
// plain kinds a multiplier suffix.
func (r *FinancialRatio) Format() string {
	if r.IsPercentage() {
		return fmt.Sprintf("%.2f%%", r.Value)
	}
	return fmt.Sprintf("%.2fx", r.Value)
}
