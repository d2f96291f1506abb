package extract

import (
	"testing"

	"dart_analysis/pkg/models"
)

func TestSelectValueColumnIncomeStatement(t *testing.T) {
	table := &RawTable{
		Title: "연결 손익계산서",
		Rows: [][]string{
			{"과목", "당분기 3개월", "당분기 누적", "전분기 3개월", "전분기 누적"},
			{"매출액", "86,062,261", "239,768,567", "79,098,654", "224,266,607"},
		},
	}

	if got := SelectValueColumn(table, models.SectionIncomeStatement); got != 2 {
		t.Errorf("SelectValueColumn = %d, want 2 (current cumulative)", got)
	}
}

func TestSelectValueColumnBalanceSheet(t *testing.T) {
	table := &RawTable{
		Title: "연결 재무상태표",
		Rows: [][]string{
			{"과목", "당분기말", "전기말"},
			{"자산총계", "523,659,586", "455,745,464"},
		},
	}

	if got := SelectValueColumn(table, models.SectionBalanceSheet); got != 1 {
		t.Errorf("SelectValueColumn = %d, want 1 (current period end)", got)
	}
}

func TestSelectValueColumnFiscalOrdinalHeaders(t *testing.T) {
	table := &RawTable{
		Rows: [][]string{
			{"과목", "제 55 기", "제 54 기"},
			{"자산총계", "523,659,586", "455,745,464"},
		},
	}

	if got := SelectValueColumn(table, models.SectionBalanceSheet); got != 1 {
		t.Errorf("SelectValueColumn = %d, want 1 (first fiscal ordinal)", got)
	}
}

func TestSelectValueColumnSplitHeaderRows(t *testing.T) {
	// Period headers split across two header rows must still combine.
	table := &RawTable{
		Rows: [][]string{
			{"과목", "당분기", "전분기"},
			{"", "누적", "누적"},
			{"매출액", "239,768,567", "224,266,607"},
		},
	}

	if got := SelectValueColumn(table, models.SectionIncomeStatement); got != 1 {
		t.Errorf("SelectValueColumn = %d, want 1 (combined split header)", got)
	}
}

func TestSelectValueColumnDefault(t *testing.T) {
	table := &RawTable{
		Rows: [][]string{
			{"과목", "금액"},
			{"자산총계", "100"},
		},
	}

	if got := SelectValueColumn(table, models.SectionBalanceSheet); got != 1 {
		t.Errorf("SelectValueColumn = %d, want fallback 1", got)
	}
}
