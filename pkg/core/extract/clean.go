package extract

import (
	"regexp"
	"strings"
)

// =============================================================================
// ITEM NAME CLEANING - canonical row labels for concept lookup
// =============================================================================

var (
	// Footnote references: (주3,26), (주 5), (주석 3)
	footnoteRefPattern  = regexp.MustCompile(`\(\s*주[0-9,\s]*\)`)
	footnoteNotePattern = regexp.MustCompile(`\(\s*주석\s*[0-9,\s]*\)`)

	// Unit annotations: (단위 : 원), (단위: 백만원)
	unitPattern = regexp.MustCompile(`\(\s*단위\s*[:：][^)]*\)`)

	// Ordinal prefixes: Ⅰ. / II. / 1.
	ordinalPattern = regexp.MustCompile(`^[ⅠⅡⅢⅣⅤⅥⅦⅧⅨⅩIVX0-9]+\s*\.\s*`)

	// Any parentheticals left at the end of the label, e.g. 영업이익(손실)
	trailingParenPattern = regexp.MustCompile(`(\s*\([^)]*\))+\s*$`)

	innerSpacePattern = regexp.MustCompile(`\s+`)
)

// CleanItemName strips footnote references, unit annotations, and ordinal
// prefixes from a raw row label. Idempotent. Returns "" when nothing
// meaningful remains; callers skip such rows.
//
//	"현금및현금성자산 (주3,26)"   → "현금및현금성자산"
//	"기본주당이익 (단위 : 원)"    → "기본주당이익"
//	"Ⅰ.유동자산"                → "유동자산"
//	"영업이익(손실)"             → "영업이익"
func CleanItemName(raw string) string {
	label := strings.TrimSpace(raw)
	if label == "" {
		return ""
	}

	label = footnoteNotePattern.ReplaceAllString(label, "")
	label = footnoteRefPattern.ReplaceAllString(label, "")
	label = unitPattern.ReplaceAllString(label, "")
	label = ordinalPattern.ReplaceAllString(label, "")
	label = trailingParenPattern.ReplaceAllString(label, "")

	label = innerSpacePattern.ReplaceAllString(label, " ")
	return strings.TrimSpace(label)
}
