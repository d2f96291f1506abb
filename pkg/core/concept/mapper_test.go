package concept

import (
	"testing"

	"dart_analysis/pkg/models"
)

func TestMapLabelBalanceSheet(t *testing.T) {
	m := NewMapper()

	cases := []struct {
		label string
		want  string
	}{
		{"자산총계", "total_assets"},
		{"유동자산", "current_assets"},
		{"비유동자산", "non_current_assets"},
		{"현금및현금성자산", "cash"},
		{"재고자산", "inventory"},
		{"부채총계", "total_liabilities"},
		{"유동부채", "current_liabilities"},
		{"비유동부채", "non_current_liabilities"},
		{"자본총계", "total_equity"},
		{"ifrs-full:Assets", "total_assets"},
		{"ifrs-full_CurrentLiabilities", "current_liabilities"},
	}

	for _, tc := range cases {
		got, ok := m.MapLabel(tc.label, models.SectionBalanceSheet)
		if !ok {
			t.Errorf("MapLabel(%q) unmapped, want %s", tc.label, tc.want)
			continue
		}
		if got != tc.want {
			t.Errorf("MapLabel(%q) = %s, want %s", tc.label, got, tc.want)
		}
	}
}

func TestMapLabelIncomeStatement(t *testing.T) {
	m := NewMapper()

	cases := []struct {
		label string
		want  string
	}{
		{"매출액", "revenue"},
		{"수익(매출액)", "revenue"},
		{"매출원가", "cost_of_sales"},
		{"매출총이익", "gross_profit"},
		{"영업이익", "operating_income"},
		{"판매비와관리비", "operating_expenses"},
		{"법인세비용차감전순이익", "income_before_tax"},
		{"법인세비용", "income_tax_expense"},
		{"당기순이익", "net_income"},
		{"분기순이익", "net_income"},
		{"연결당기순이익", "net_income"},
		{"기본주당이익", "eps"},
	}

	for _, tc := range cases {
		got, ok := m.MapLabel(tc.label, models.SectionIncomeStatement)
		if !ok {
			t.Errorf("MapLabel(%q) unmapped, want %s", tc.label, tc.want)
			continue
		}
		if got != tc.want {
			t.Errorf("MapLabel(%q) = %s, want %s", tc.label, got, tc.want)
		}
	}
}

// An exact hit on a later field must beat a substring hit on an earlier one.
// 유동부채 contains 부채 which is a total_liabilities synonym, yet it is an
// exact current_liabilities match.
func TestMapLabelExactBeatsSubstring(t *testing.T) {
	m := NewMapper()

	got, ok := m.MapLabel("유동부채", models.SectionBalanceSheet)
	if !ok || got != "current_liabilities" {
		t.Errorf("MapLabel(유동부채) = (%s, %v), want current_liabilities", got, ok)
	}
	got, ok = m.MapLabel("비유동자산", models.SectionBalanceSheet)
	if !ok || got != "non_current_assets" {
		t.Errorf("MapLabel(비유동자산) = (%s, %v), want non_current_assets", got, ok)
	}
}

// The balance-sheet closing row 부채와자본총계 equals total assets. It must
// resolve there exactly, never to total_liabilities through the 부채
// substring.
func TestMapLabelCombinedTotalRow(t *testing.T) {
	m := NewMapper()

	for _, label := range []string{"부채와자본총계", "자본과부채총계", "부채및자본총계", "부채와 자본 총계"} {
		got, ok := m.MapLabel(label, models.SectionBalanceSheet)
		if !ok || got != "total_assets" {
			t.Errorf("MapLabel(%q) = (%s, %v), want total_assets", label, got, ok)
		}
	}
}

func TestMapFactsCombinedTotalDoesNotShadowLiabilities(t *testing.T) {
	m := NewMapper()

	data := m.MapFacts(map[string]float64{
		"ifrs-full:EquityAndLiabilities": 523659586,
		"ifrs-full:Liabilities":          110158092,
		"ifrs-full:Equity":               413501494,
	})
	if got := data.BalanceSheet["total_liabilities"]; got != 110158092 {
		t.Errorf("total_liabilities = %v, want 110158092", got)
	}
	if got := data.BalanceSheet["total_assets"]; got != 523659586 {
		t.Errorf("total_assets = %v, want 523659586", got)
	}

	// Without a dedicated liabilities fact the combined total stays with
	// total_assets; the substring pass must not reassign a claimed key.
	data = m.MapFacts(map[string]float64{
		"ifrs-full:EquityAndLiabilities": 523659586,
		"ifrs-full:Equity":               413501494,
	})
	if got, ok := data.BalanceSheet["total_liabilities"]; ok {
		t.Errorf("total_liabilities = %v, want unmapped", got)
	}
}

func TestMapLabelSpacedVariants(t *testing.T) {
	m := NewMapper()

	got, ok := m.MapLabel("자산 총계", models.SectionBalanceSheet)
	if !ok || got != "total_assets" {
		t.Errorf("MapLabel(자산 총계) = (%s, %v), want total_assets", got, ok)
	}
	got, ok = m.MapLabel("영업 이익", models.SectionIncomeStatement)
	if !ok || got != "operating_income" {
		t.Errorf("MapLabel(영업 이익) = (%s, %v), want operating_income", got, ok)
	}
}

func TestMapLabelUnmapped(t *testing.T) {
	m := NewMapper()

	for _, label := range []string{"기타포괄손익", "특수관계자거래", ""} {
		if field, ok := m.MapLabel(label, models.SectionBalanceSheet); ok {
			t.Errorf("MapLabel(%q) = %s, want unmapped", label, field)
		}
	}
}

func TestMapFacts(t *testing.T) {
	m := NewMapper()

	facts := map[string]float64{
		"ifrs-full:Assets":                              523659586,
		"ifrs-full:Liabilities":                         110158092,
		"ifrs-full:Equity":                              413501494,
		"ifrs-full:Revenue":                             239768567,
		"ifrs-full:ProfitLoss":                          25565060,
		"dart:OperatingIncomeLoss":                      23527391,
		"ifrs-full:CashFlowsFromUsedInOperatingActivities": 44225000,
		"unrelated:Concept":                             999,
	}

	data := m.MapFacts(facts)

	bsWant := map[string]float64{
		"total_assets":      523659586,
		"total_liabilities": 110158092,
		"total_equity":      413501494,
	}
	for field, want := range bsWant {
		if got := data.BalanceSheet[field]; got != want {
			t.Errorf("BalanceSheet[%s] = %v, want %v", field, got, want)
		}
	}
	if got := data.IncomeStatement["revenue"]; got != 239768567 {
		t.Errorf("revenue = %v, want 239768567", got)
	}
	if got := data.IncomeStatement["net_income"]; got != 25565060 {
		t.Errorf("net_income = %v, want 25565060", got)
	}
	if got := data.IncomeStatement["operating_income"]; got != 23527391 {
		t.Errorf("operating_income = %v, want 23527391", got)
	}
	if got := data.CashFlow["operating_cash_flow"]; got != 44225000 {
		t.Errorf("operating_cash_flow = %v, want 44225000", got)
	}

	// Unmapped concepts are dropped on the fact path.
	for field := range data.BalanceSheet {
		if field == "unrelated:Concept" {
			t.Error("unmapped concept leaked into balance sheet")
		}
	}
}
