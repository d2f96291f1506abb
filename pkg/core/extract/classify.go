package extract

import (
	"regexp"
	"strings"
)

// =============================================================================
// ROW CLASSIFICATION - notes rows vs. reportable line items
// =============================================================================

// noteMarkerPattern matches footnote markers like (*1) that prefix
// cross-reference rows in DART tables.
var noteMarkerPattern = regexp.MustCompile(`\(\*\d+\)`)

// Legal-entity suffixes. Rows naming a company belong to subsidiary or
// associate detail tables, never to the primary statement.
var companySuffixes = []string{
	"㈜",
	"(주)",
	"Co., Ltd",
	"Co.,Ltd",
	"Inc.",
	"Corp.",
	"Ltd.",
	"LLC",
}

// Keywords marking footnote and investment-detail sections.
var notesKeywords = []string{
	"주석",
	"관계기업",
	"종속기업",
	"지분법",
	"공동기업",
	"세부내역",
	"참조",
}

// Header artifacts that show up as data rows when tables are extracted
// from PDFs. Matched exactly after whitespace removal ("구 분" == "구분").
var headerArtifacts = map[string]bool{
	"구분":  true,
	"과목":  true,
	"계정과목": true,
	"기업명": true,
	"회사명": true,
}

// Top-line aggregates. An aggregate row always overwrites a previously seen
// value for its key; detail rows only fill vacant keys.
var aggregateLabels = map[string]bool{
	"자산총계":        true,
	"부채총계":        true,
	"자본총계":        true,
	"부채와자본총계":     true,
	"자본과부채총계":     true,
	"유동자산":        true,
	"비유동자산":       true,
	"유동부채":        true,
	"비유동부채":       true,
	"매출액":         true,
	"매출총이익":       true,
	"영업이익":        true,
	"당기순이익":       true,
	"분기순이익":       true,
	"반기순이익":       true,
	"연결당기순이익":     true,
	"법인세비용차감전순이익": true,
	"영업활동현금흐름":    true,
	"투자활동현금흐름":    true,
	"재무활동현금흐름":    true,
}

// RowClassifier decides whether a row is part of the notes section (to be
// discarded) and whether it is a top-line aggregate (to take precedence over
// duplicate line items).
type RowClassifier struct{}

func NewRowClassifier() *RowClassifier {
	return &RowClassifier{}
}

// IsNotesRow reports whether a cleaned row label belongs to the footnote or
// subsidiary-detail section of a filing.
func (c *RowClassifier) IsNotesRow(label string) bool {
	if label == "" {
		return false
	}
	if noteMarkerPattern.MatchString(label) {
		return true
	}
	for _, suffix := range companySuffixes {
		if strings.Contains(label, suffix) {
			return true
		}
	}
	for _, keyword := range notesKeywords {
		if strings.Contains(label, keyword) {
			return true
		}
	}
	return headerArtifacts[stripAllSpace(label)]
}

// IsAggregateRow reports whether a cleaned label names a top-line aggregate.
func (c *RowClassifier) IsAggregateRow(label string) bool {
	return aggregateLabels[stripAllSpace(label)]
}

func stripAllSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '　':
			return -1
		}
		return r
	}, s)
}
