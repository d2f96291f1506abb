package extract

import (
	"testing"

	"dart_analysis/pkg/models"
)

func TestIdentifySection(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		content string
		want    models.Section
		ok      bool
	}{
		{"balance sheet title", "연결 재무상태표", "", models.SectionBalanceSheet, true},
		{"legacy balance sheet title", "대차대조표", "", models.SectionBalanceSheet, true},
		{"income statement title", "연결 손익계산서", "", models.SectionIncomeStatement, true},
		{"comprehensive income title", "포괄손익계산서", "", models.SectionIncomeStatement, true},
		{"cash flow title", "연결 현금흐름표", "", models.SectionCashFlow, true},
		{"spaced title", "재 무 상 태 표", "", models.SectionBalanceSheet, true},
		{"no title, period end content", "", "과목 당분기말 전기말", models.SectionBalanceSheet, true},
		{"no title, cumulative content", "", "과목 당분기 누적", models.SectionIncomeStatement, true},
		{"unidentifiable", "주석", "기타 내용", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := IdentifySection(tc.title, tc.content)
			if ok != tc.ok || got != tc.want {
				t.Errorf("IdentifySection(%q, %q) = (%q, %v), want (%q, %v)",
					tc.title, tc.content, got, ok, tc.want, tc.ok)
			}
		})
	}
}

const filingHTML = `
<html><body>
<p>연결 재무상태표</p>
<table>
<tr><td>과 목</td><td>당분기말</td><td>전기말</td></tr>
<tr><td>Ⅰ.유동자산</td><td>229,440,881</td><td>218,163,185</td></tr>
<tr><td>자산총계</td><td>523,659,586</td><td>455,745,464</td></tr>
</table>
<p>연결 손익계산서</p>
<table>
<tr><td>과 목</td><td>당분기 3개월</td><td>당분기 누적</td></tr>
<tr><td>Ⅰ.매출액</td><td>86,062,261</td><td>239,768,567</td></tr>
</table>
<table>
<tr><td>주석 내용</td></tr>
<tr><td>기타</td></tr>
</table>
</body></html>
`

func TestParseHTMLTables(t *testing.T) {
	sections, err := ParseHTMLTables(filingHTML)
	if err != nil {
		t.Fatalf("ParseHTMLTables failed: %v", err)
	}

	bs, ok := sections[models.SectionBalanceSheet]
	if !ok {
		t.Fatal("balance sheet table not identified")
	}
	if len(bs.Rows) != 3 {
		t.Errorf("balance sheet rows = %d, want 3", len(bs.Rows))
	}
	if bs.Rows[2][1] != "523,659,586" {
		t.Errorf("unexpected cell value %q", bs.Rows[2][1])
	}

	is, ok := sections[models.SectionIncomeStatement]
	if !ok {
		t.Fatal("income statement table not identified")
	}
	if is.Rows[1][2] != "239,768,567" {
		t.Errorf("unexpected cumulative cell %q", is.Rows[1][2])
	}

	if _, ok := sections[models.SectionCashFlow]; ok {
		t.Error("notes table misidentified as cash flow")
	}
}

func TestParseHTMLTablesFirstPerSectionWins(t *testing.T) {
	html := `
<p>재무상태표</p>
<table><tr><td>자산총계</td><td>100</td></tr><tr><td>부채총계</td><td>40</td></tr></table>
<p>재무상태표</p>
<table><tr><td>자산총계</td><td>999</td></tr><tr><td>부채총계</td><td>999</td></tr></table>
`
	sections, err := ParseHTMLTables(html)
	if err != nil {
		t.Fatalf("ParseHTMLTables failed: %v", err)
	}
	bs := sections[models.SectionBalanceSheet]
	if bs == nil {
		t.Fatal("balance sheet not identified")
	}
	if bs.Rows[0][1] != "100" {
		t.Errorf("later duplicate table overwrote the first: got %q", bs.Rows[0][1])
	}
}
