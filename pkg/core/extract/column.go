package extract

import (
	"regexp"
	"strings"

	"dart_analysis/pkg/models"
)

// =============================================================================
// COLUMN SELECTION - period disambiguation for multi-column DART tables
// =============================================================================

// fiscalPeriodPattern matches ordinal fiscal-period headers like "제 55 기".
var fiscalPeriodPattern = regexp.MustCompile(`제\s*\d+\s*기`)

// headerScanRows is how many leading rows contribute to each column's header
// text. DART tables often split period headers across several rows.
const headerScanRows = 5

// SelectValueColumn picks the column index holding the figure the pipeline
// wants. DART tables lay several periods side by side (당기/전기, 3개월/누적);
// income statements want the current cumulative column, balance sheets the
// current period-end balance. Column 0 is reserved for item labels.
func SelectValueColumn(table *RawTable, section models.Section) int {
	headers := columnHeaders(table)

	if section == models.SectionIncomeStatement {
		// Current-period cumulative beats everything.
		for col := 1; col < len(headers); col++ {
			h := headers[col]
			if strings.Contains(h, "당") && strings.Contains(h, "누적") {
				return col
			}
		}
		// Current period, excluding quarter-only (3개월) columns.
		for col := 1; col < len(headers); col++ {
			h := headers[col]
			if (strings.Contains(h, "당분기") || strings.Contains(h, "당기")) &&
				!strings.Contains(h, "3개월") {
				return col
			}
		}
		// Fall through to the balance-sheet rule.
	}

	for col := 1; col < len(headers); col++ {
		h := headers[col]
		if strings.Contains(h, "당분기말") || strings.Contains(h, "당기말") ||
			strings.Contains(h, "당분기") || strings.Contains(h, "당기") {
			return col
		}
	}
	for col := 1; col < len(headers); col++ {
		if fiscalPeriodPattern.MatchString(headers[col]) {
			return col
		}
	}
	return 1
}

// columnHeaders concatenates cleaned cell text from the leading rows into one
// header string per column index.
func columnHeaders(table *RawTable) []string {
	width := 0
	limit := headerScanRows
	if len(table.Rows) < limit {
		limit = len(table.Rows)
	}
	for _, row := range table.Rows[:limit] {
		if len(row) > width {
			width = len(row)
		}
	}

	headers := make([]string, width)
	for _, row := range table.Rows[:limit] {
		for col := 1; col < len(row); col++ {
			text := stripAllSpace(row[col])
			if text != "" {
				headers[col] += text
			}
		}
	}
	return headers
}
