package extract

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// =============================================================================
// XBRL FACT EXTRACTION - inline XBRL viewer documents
// =============================================================================

// ExtractXBRLFacts pulls (concept, raw value) pairs out of an inline-XBRL
// document. Facts are keyed by the element name attribute, e.g.
// "ifrs-full:Assets". When a document carries no inline facts, the HTML
// tables are flattened into label→value pairs instead, so both DART filing
// styles feed the same concept-mapping path.
func ExtractXBRLFacts(html string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	facts := make(map[string]string)
	doc.Find(`ix\:nonfraction, nonfraction`).Each(func(_ int, fact *goquery.Selection) {
		name, ok := fact.Attr("name")
		if !ok || name == "" {
			return
		}
		value := strings.TrimSpace(fact.Text())
		if value == "" {
			return
		}
		if sign, _ := fact.Attr("sign"); sign == "-" && !strings.HasPrefix(value, "-") {
			value = "-" + value
		}
		// First occurrence wins; later contexts are prior periods.
		if _, seen := facts[name]; !seen {
			facts[name] = value
		}
	})

	if len(facts) > 0 {
		log.Printf("[XBRLExtract] %d inline facts extracted", len(facts))
		return facts, nil
	}

	// Fallback: no inline facts, treat the document as plain tables.
	sections, err := ParseHTMLTables(html)
	if err != nil {
		return nil, err
	}
	for section, table := range sections {
		col := SelectValueColumn(table, section)
		for _, row := range table.Rows {
			if len(row) < MinRowCells || col >= len(row) {
				continue
			}
			label := CleanItemName(row[0])
			if label == "" {
				continue
			}
			if _, seen := facts[label]; !seen {
				facts[label] = row[col]
			}
		}
	}
	log.Printf("[XBRLExtract] no inline facts, flattened %d table entries", len(facts))
	return facts, nil
}
