package extract

import "testing"

func TestIsNotesRow(t *testing.T) {
	c := NewRowClassifier()

	notesRows := []string{
		"삼성전자㈜",
		"Samsung Electronics Co., Ltd",
		"(*1) 주석 참조",
		"관계기업 투자",
		"종속기업 지분",
		"구 분",
		"과 목",
	}
	for _, label := range notesRows {
		if !c.IsNotesRow(label) {
			t.Errorf("IsNotesRow(%q) = false, want true", label)
		}
	}

	dataRows := []string{
		"현금및현금성자산",
		"자산총계",
		"매출액",
		"재고자산",
		"유동부채",
	}
	for _, label := range dataRows {
		if c.IsNotesRow(label) {
			t.Errorf("IsNotesRow(%q) = true, want false", label)
		}
	}
}

func TestIsAggregateRow(t *testing.T) {
	c := NewRowClassifier()

	aggregates := []string{
		"자산총계",
		"부채총계",
		"자본총계",
		"유동자산",
		"비유동자산",
		"매출액",
		"영업이익",
		"당기순이익",
	}
	for _, label := range aggregates {
		if !c.IsAggregateRow(label) {
			t.Errorf("IsAggregateRow(%q) = false, want true", label)
		}
	}

	lineItems := []string{
		"현금및현금성자산",
		"재고자산",
		"매출채권",
		"판매비와관리비",
	}
	for _, label := range lineItems {
		if c.IsAggregateRow(label) {
			t.Errorf("IsAggregateRow(%q) = true, want false", label)
		}
	}

	// Spacing variants address the same aggregate.
	if !c.IsAggregateRow("자산 총계") {
		t.Error("IsAggregateRow should ignore internal spacing")
	}
}
