package extract

import "testing"

func TestExtractXBRLFactsInline(t *testing.T) {
	html := `
<html><body>
<ix:nonfraction name="ifrs-full:Assets" contextRef="c1">523,659,586</ix:nonfraction>
<ix:nonfraction name="ifrs-full:Assets" contextRef="c0">455,745,464</ix:nonfraction>
<ix:nonfraction name="ifrs-full:Liabilities" contextRef="c1" sign="-">110,158,092</ix:nonfraction>
<ix:nonfraction name="ifrs-full:Equity" contextRef="c1"></ix:nonfraction>
</body></html>
`
	facts, err := ExtractXBRLFacts(html)
	if err != nil {
		t.Fatalf("ExtractXBRLFacts failed: %v", err)
	}

	if got := facts["ifrs-full:Assets"]; got != "523,659,586" {
		t.Errorf("Assets = %q, want first-context value", got)
	}
	if got := facts["ifrs-full:Liabilities"]; got != "-110,158,092" {
		t.Errorf("Liabilities = %q, want sign-applied value", got)
	}
	if _, ok := facts["ifrs-full:Equity"]; ok {
		t.Error("empty fact should be dropped")
	}
}

func TestExtractXBRLFactsTableFallback(t *testing.T) {
	facts, err := ExtractXBRLFacts(filingHTML)
	if err != nil {
		t.Fatalf("ExtractXBRLFacts failed: %v", err)
	}

	if got := facts["자산총계"]; got != "523,659,586" {
		t.Errorf("자산총계 = %q, want table cell value", got)
	}
	if got := facts["매출액"]; got != "239,768,567" {
		t.Errorf("매출액 = %q, want cumulative column value", got)
	}
}
