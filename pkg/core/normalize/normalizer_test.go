package normalize

import (
	"testing"

	"dart_analysis/pkg/core/extract"
	"dart_analysis/pkg/models"
)

func sampleTables() map[models.Section]*extract.RawTable {
	return map[models.Section]*extract.RawTable{
		models.SectionBalanceSheet: {
			Title: "연결 재무상태표",
			Rows: [][]string{
				{"과 목", "당분기말", "전기말"},
				{"Ⅰ.유동자산", "229,440,881", "218,163,185"},
				{"현금및현금성자산 (주3,26)", "62,847,291", "49,680,710"},
				{"재고자산 (주7)", "50,332,392", "51,625,874"},
				{"Ⅱ.비유동자산", "294,218,705", "237,582,279"},
				{"관계기업 투자 (주9)", "11,442,827", "10,893,869"},
				{"자산총계", "523,659,586", "455,745,464"},
				{"Ⅰ.유동부채", "87,259,259", "75,719,452"},
				{"Ⅱ.비유동부채", "22,898,833", "22,228,981"},
				{"부채총계", "110,158,092", "97,948,433"},
				{"자본총계", "413,501,494", "357,797,031"},
			},
		},
		models.SectionIncomeStatement: {
			Title: "연결 손익계산서",
			Rows: [][]string{
				{"과 목", "당분기 3개월", "당분기 누적", "전분기 3개월", "전분기 누적"},
				{"Ⅰ.매출액", "86,062,261", "239,768,567", "79,098,654", "224,266,607"},
				{"Ⅱ.매출원가", "54,562,551", "152,649,117", "50,967,507", "145,891,702"},
				{"Ⅲ.매출총이익", "31,499,710", "87,119,450", "28,131,147", "78,374,905"},
				{"판매비와관리비 (주20)", "22,340,902", "63,592,059", "20,647,740", "60,625,779"},
				{"Ⅳ.영업이익(손실)", "9,158,808", "23,527,391", "7,483,407", "17,749,126"},
				{"Ⅴ.법인세비용차감전순이익", "11,055,763", "28,764,182", "8,122,212", "20,396,418"},
				{"법인세비용", "1,151,364", "3,199,122", "1,886,471", "4,833,798"},
				{"Ⅵ.분기순이익", "9,904,399", "25,565,060", "6,235,741", "15,562,620"},
			},
		},
	}
}

func TestNormalizeTablesQuarterlyFiling(t *testing.T) {
	n := NewNormalizer()
	result, err := n.NormalizeTables(sampleTables())
	if err != nil {
		t.Fatalf("NormalizeTables failed: %v", err)
	}

	bsWant := map[string]float64{
		"current_assets":          229440881,
		"cash":                    62847291,
		"inventory":               50332392,
		"non_current_assets":      294218705,
		"total_assets":            523659586,
		"current_liabilities":     87259259,
		"non_current_liabilities": 22898833,
		"total_liabilities":       110158092,
		"total_equity":            413501494,
	}
	for field, want := range bsWant {
		if got := result.Data.BalanceSheet[field]; got != want {
			t.Errorf("BalanceSheet[%s] = %.0f, want %.0f", field, got, want)
		}
	}

	isWant := map[string]float64{
		"revenue":            239768567,
		"cost_of_sales":      152649117,
		"gross_profit":       87119450,
		"operating_expenses": 63592059,
		"operating_income":   23527391,
		"income_before_tax":  28764182,
		"income_tax_expense": 3199122,
		"net_income":         25565060,
	}
	for field, want := range isWant {
		if got := result.Data.IncomeStatement[field]; got != want {
			t.Errorf("IncomeStatement[%s] = %.0f, want %.0f", field, got, want)
		}
	}

	if len(result.Estimated) != 0 {
		t.Errorf("no estimates expected for a complete filing, got %v", result.Estimated)
	}
	t.Logf("normalized %d BS / %d IS fields with %d warnings",
		len(result.Data.BalanceSheet), len(result.Data.IncomeStatement), len(result.Warnings))
}

func TestNormalizeTablesExcludesNotesRows(t *testing.T) {
	n := NewNormalizer()
	result, err := n.NormalizeTables(sampleTables())
	if err != nil {
		t.Fatalf("NormalizeTables failed: %v", err)
	}

	for _, leaked := range []string{"관계기업 투자", "과 목", "과목"} {
		if _, ok := result.Data.BalanceSheet[leaked]; ok {
			t.Errorf("notes/header row %q leaked into balance sheet", leaked)
		}
	}
}

// DART balance sheets close with a 부채와자본총계 row whose value equals
// total assets. It must not overwrite total_liabilities on its way through
// the aggregate-precedence rule.
func TestNormalizeTablesCombinedTotalRow(t *testing.T) {
	n := NewNormalizer()
	tables := sampleTables()
	bs := tables[models.SectionBalanceSheet]
	bs.Rows = append(bs.Rows, []string{"부채와자본총계", "523,659,586", "455,745,464"})

	result, err := n.NormalizeTables(tables)
	if err != nil {
		t.Fatalf("NormalizeTables failed: %v", err)
	}

	if got := result.Data.BalanceSheet["total_liabilities"]; got != 110158092 {
		t.Errorf("total_liabilities = %.0f, want 110158092", got)
	}
	if got := result.Data.BalanceSheet["total_assets"]; got != 523659586 {
		t.Errorf("total_assets = %.0f, want 523659586", got)
	}
	if got := result.Data.BalanceSheet["total_equity"]; got != 413501494 {
		t.Errorf("total_equity = %.0f, want 413501494", got)
	}
}

func TestNormalizeTablesDerivesTotals(t *testing.T) {
	n := NewNormalizer()
	tables := map[models.Section]*extract.RawTable{
		models.SectionBalanceSheet: {
			Title: "재무상태표",
			Rows: [][]string{
				{"과목", "당기말"},
				{"유동자산", "229,440,881"},
				{"비유동자산", "294,218,705"},
				{"유동부채", "87,259,259"},
				{"비유동부채", "22,898,833"},
			},
		},
	}

	result, err := n.NormalizeTables(tables)
	if err != nil {
		t.Fatalf("NormalizeTables failed: %v", err)
	}

	bs := result.Data.BalanceSheet
	if got := bs["total_assets"]; got != 523659586 {
		t.Errorf("derived total_assets = %.0f, want 523659586", got)
	}
	if got := bs["total_liabilities"]; got != 110158092 {
		t.Errorf("derived total_liabilities = %.0f, want 110158092", got)
	}
	if got := bs["total_equity"]; got != 413501494 {
		t.Errorf("derived total_equity = %.0f, want A-L = 413501494", got)
	}
	if got, ok := bs["inventory"]; !ok || got != 0 {
		t.Errorf("inventory default = (%.0f, %v), want (0, true)", got, ok)
	}
}

func TestNormalizeTablesNetIncomeFallbackFlagged(t *testing.T) {
	n := NewNormalizer()
	tables := map[models.Section]*extract.RawTable{
		models.SectionIncomeStatement: {
			Title: "손익계산서",
			Rows: [][]string{
				{"과목", "당기"},
				{"매출액", "100,000"},
				{"매출원가", "60,000"},
				{"영업이익", "15,000"},
			},
		},
	}

	result, err := n.NormalizeTables(tables)
	if err != nil {
		t.Fatalf("NormalizeTables failed: %v", err)
	}

	if got := result.Data.IncomeStatement["net_income"]; got != 15000 {
		t.Errorf("net_income fallback = %.0f, want operating income 15000", got)
	}
	if !result.Estimated["net_income"] {
		t.Error("net_income fallback must be flagged as estimated")
	}
}

func TestNormalizeTablesEmpty(t *testing.T) {
	n := NewNormalizer()
	_, err := n.NormalizeTables(map[models.Section]*extract.RawTable{})
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, ok := err.(*models.ExtractionError); !ok {
		t.Errorf("error type = %T, want *models.ExtractionError", err)
	}
}

func TestNormalizeFacts(t *testing.T) {
	n := NewNormalizer()
	result, err := n.NormalizeFacts(map[string]string{
		"ifrs-full:Assets":        "523,659,586",
		"ifrs-full:Liabilities":   "110,158,092",
		"ifrs-full:Equity":        "413,501,494",
		"ifrs-full:Revenue":       "239,768,567",
		"ifrs-full:ProfitLoss":    "25,565,060",
		"dart:OperatingIncomeLoss": "23,527,391",
	})
	if err != nil {
		t.Fatalf("NormalizeFacts failed: %v", err)
	}

	if got := result.Data.BalanceSheet["total_assets"]; got != 523659586 {
		t.Errorf("total_assets = %.0f, want 523659586", got)
	}
	if got := result.Data.IncomeStatement["net_income"]; got != 25565060 {
		t.Errorf("net_income = %.0f, want 25565060", got)
	}
}

func TestNormalizeTablesPassThroughKeys(t *testing.T) {
	n := NewNormalizer()
	tables := map[models.Section]*extract.RawTable{
		models.SectionBalanceSheet: {
			Title: "재무상태표",
			Rows: [][]string{
				{"과목", "당기말"},
				{"자산총계", "1,000"},
				{"기타포괄손익누계액", "42"},
			},
		},
	}

	result, err := n.NormalizeTables(tables)
	if err != nil {
		t.Fatalf("NormalizeTables failed: %v", err)
	}
	if got := result.Data.BalanceSheet["기타포괄손익누계액"]; got != 42 {
		t.Errorf("pass-through key = %.0f, want 42", got)
	}
}
