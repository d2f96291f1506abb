package extract

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"dart_analysis/pkg/models"
)

// =============================================================================
// RAW TABLES - extraction output consumed by the normalizer
// =============================================================================

// RawTable is the unit of extraction: ordered rows of cell strings, as they
// came out of the document. Nothing is guaranteed about its contents; rows
// may be footnotes, headers, or have inconsistent cell counts. Rows shorter
// than two cells carry no value and are skipped downstream.
type RawTable struct {
	Title string
	Rows  [][]string
}

// MinRowCells is the minimum row width for a row to carry a value.
const MinRowCells = 2

// Statement-section title keywords, checked in order. 포괄손익계산서 must be
// recognized as an income statement, so 손익계산서 is matched as a substring.
var sectionTitleKeywords = []struct {
	keyword string
	section models.Section
}{
	{"재무상태표", models.SectionBalanceSheet},
	{"대차대조표", models.SectionBalanceSheet},
	{"손익계산서", models.SectionIncomeStatement},
	{"현금흐름표", models.SectionCashFlow},
}

// IdentifySection classifies a table by its title, falling back to content
// indicators when DART strips the caption: period-end headers (당분기말,
// 당기말) only appear on balance sheets, cumulative headers on income
// statements.
func IdentifySection(title string, content string) (models.Section, bool) {
	compact := stripAllSpace(title)
	for _, entry := range sectionTitleKeywords {
		if strings.Contains(compact, entry.keyword) {
			return entry.section, true
		}
	}

	body := stripAllSpace(content)
	if strings.Contains(body, "당분기말") || strings.Contains(body, "당기말") {
		return models.SectionBalanceSheet, true
	}
	if strings.Contains(body, "누적") || strings.Contains(body, "당분기") {
		return models.SectionIncomeStatement, true
	}
	return "", false
}

// =============================================================================
// HTML TABLE EXTRACTION - DART filing viewer pages
// =============================================================================

// ParseHTMLTables walks a DART filing HTML document and returns the first
// identified raw table per statement section.
func ParseHTMLTables(html string) (map[models.Section]*RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	found := make(map[models.Section]*RawTable)
	total := 0

	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		total++
		raw := tableToRaw(table)
		if len(raw.Rows) < MinRowCells {
			return
		}
		raw.Title = findTableTitle(table)

		section, ok := IdentifySection(raw.Title, previewContent(raw))
		if !ok {
			return
		}
		if _, seen := found[section]; seen {
			return
		}
		log.Printf("[TableExtract] table #%d title=%q -> %s (%d rows)", i, raw.Title, section, len(raw.Rows))
		found[section] = raw
	})

	log.Printf("[TableExtract] scanned %d tables, identified %d sections", total, len(found))
	return found, nil
}

// tableToRaw flattens an HTML table into rows of trimmed cell strings.
func tableToRaw(table *goquery.Selection) *RawTable {
	raw := &RawTable{}
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) > 0 {
			raw.Rows = append(raw.Rows, row)
		}
	})
	return raw
}

// findTableTitle looks for a caption in the preceding sibling or a single-cell
// first row, the two places DART viewer pages put statement titles.
func findTableTitle(table *goquery.Selection) string {
	if prev := table.Prev(); prev.Length() > 0 {
		text := strings.TrimSpace(prev.Text())
		compact := stripAllSpace(text)
		for _, entry := range sectionTitleKeywords {
			if strings.Contains(compact, entry.keyword) {
				return text
			}
		}
	}

	firstRow := table.Find("tr").First()
	if firstRow.Length() > 0 {
		cells := firstRow.Find("td, th")
		if cells.Length() == 1 {
			return strings.TrimSpace(cells.Text())
		}
	}
	return ""
}

// previewContent joins the leading rows for content-based identification.
func previewContent(raw *RawTable) string {
	limit := headerScanRows
	if len(raw.Rows) < limit {
		limit = len(raw.Rows)
	}
	var sb strings.Builder
	for _, row := range raw.Rows[:limit] {
		for _, cell := range row {
			sb.WriteString(cell)
			sb.WriteString(" ")
		}
	}
	return sb.String()
}
