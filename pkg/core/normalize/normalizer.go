// Package normalize turns raw extracted tables and XBRL fact sets into the
// canonical three-section statement structure, deriving missing aggregates
// where the accounting identities allow it.
package normalize

import (
	"fmt"
	"log"

	"dart_analysis/pkg/core/concept"
	"dart_analysis/pkg/core/extract"
	"dart_analysis/pkg/models"
)

// Result is the output of one normalization run. Estimated marks fields
// filled by heuristic fallback rather than extraction or identity math;
// Warnings collects every required field left unmapped or underivable.
type Result struct {
	Data      *models.NormalizedData
	Estimated map[string]bool
	Warnings  []string
}

// Normalizer orchestrates cleaning, classification, column selection and
// concept mapping over raw tables. Stateless between runs; safe to share
// across goroutines handling independent documents.
type Normalizer struct {
	mapper     *concept.Mapper
	classifier *extract.RowClassifier
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		mapper:     concept.NewMapper(),
		classifier: extract.NewRowClassifier(),
	}
}

// NormalizeTables processes one raw table per section. Missing data never
// fails a run; only a result empty in every section does.
func (n *Normalizer) NormalizeTables(tables map[models.Section]*extract.RawTable) (*Result, error) {
	data := &models.NormalizedData{
		BalanceSheet:    make(map[string]float64),
		IncomeStatement: make(map[string]float64),
		CashFlow:        make(map[string]float64),
	}
	for _, section := range []models.Section{models.SectionBalanceSheet, models.SectionIncomeStatement, models.SectionCashFlow} {
		table, ok := tables[section]
		if !ok {
			continue
		}
		n.normalizeSection(table, section, data.SectionMap(section))
	}
	return n.finish(data)
}

// NormalizeFacts is the XBRL path: a flat concept→raw-value map goes straight
// to the concept mapper; row classification and column selection do not apply
// to fact sets, and unmapped concepts are dropped.
func (n *Normalizer) NormalizeFacts(rawFacts map[string]string) (*Result, error) {
	facts := make(map[string]float64, len(rawFacts))
	for concept, raw := range rawFacts {
		facts[concept] = extract.ParseValue(raw)
	}
	return n.finish(n.mapper.MapFacts(facts))
}

// normalizeSection runs the row pipeline: clean → classify → map → insert.
// Aggregate rows overwrite unconditionally; detail rows only fill vacant
// keys, so a duplicate label in a later detail table cannot clobber the
// statement's own figure.
func (n *Normalizer) normalizeSection(table *extract.RawTable, section models.Section, out map[string]float64) {
	col := extract.SelectValueColumn(table, section)

	for _, row := range table.Rows {
		if len(row) < extract.MinRowCells || col >= len(row) {
			continue
		}
		label := extract.CleanItemName(row[0])
		if label == "" {
			continue
		}
		if n.classifier.IsNotesRow(label) {
			continue
		}

		key, mapped := n.mapper.MapLabel(label, section)
		if !mapped {
			// Pass-through: unrecognized data is kept, not dropped.
			key = label
		}
		value := extract.ParseValue(row[col])

		if n.classifier.IsAggregateRow(label) {
			out[key] = value
		} else if _, exists := out[key]; !exists {
			out[key] = value
		}
	}
}

func (n *Normalizer) finish(data *models.NormalizedData) (*Result, error) {
	if data.BalanceSheet == nil {
		data.BalanceSheet = make(map[string]float64)
	}
	if data.IncomeStatement == nil {
		data.IncomeStatement = make(map[string]float64)
	}
	if data.CashFlow == nil {
		data.CashFlow = make(map[string]float64)
	}

	result := &Result{Data: data, Estimated: make(map[string]bool)}
	n.deriveBalanceSheet(result)
	n.deriveIncomeStatement(result)

	if data.IsEmpty() {
		return nil, &models.ExtractionError{Reason: "no financial data found in any section"}
	}

	for _, field := range models.RequiredFields {
		if !hasField(data, field) {
			warning := fmt.Sprintf("required field %q unmapped and underivable", field)
			result.Warnings = append(result.Warnings, warning)
			log.Printf("[Normalizer] %s", warning)
		}
	}
	return result, nil
}

// deriveBalanceSheet fills missing balance-sheet aggregates from their
// components or from the accounting identity A = L + E.
func (n *Normalizer) deriveBalanceSheet(result *Result) {
	bs := result.Data.BalanceSheet

	if missingOrZero(bs, "total_assets") {
		current, nonCurrent := bs["current_assets"], bs["non_current_assets"]
		if current != 0 || nonCurrent != 0 {
			bs["total_assets"] = current + nonCurrent
			log.Printf("[Normalizer] derived total_assets=%.0f from components", bs["total_assets"])
		} else if bs["total_liabilities"] != 0 && bs["total_equity"] != 0 {
			bs["total_assets"] = bs["total_liabilities"] + bs["total_equity"]
			log.Printf("[Normalizer] derived total_assets=%.0f from L+E identity", bs["total_assets"])
		}
	}

	if missingOrZero(bs, "total_liabilities") {
		current, nonCurrent := bs["current_liabilities"], bs["non_current_liabilities"]
		if current != 0 || nonCurrent != 0 {
			bs["total_liabilities"] = current + nonCurrent
			log.Printf("[Normalizer] derived total_liabilities=%.0f from components", bs["total_liabilities"])
		}
	}

	if missingOrZero(bs, "total_equity") {
		if bs["total_assets"] != 0 && bs["total_liabilities"] != 0 {
			bs["total_equity"] = bs["total_assets"] - bs["total_liabilities"]
			log.Printf("[Normalizer] derived total_equity=%.0f from A-L identity", bs["total_equity"])
		}
	}

	// Back-solve current components when total and non-current are known.
	if missingOrZero(bs, "current_assets") {
		if bs["total_assets"] != 0 && bs["non_current_assets"] != 0 {
			bs["current_assets"] = bs["total_assets"] - bs["non_current_assets"]
		}
	}
	if missingOrZero(bs, "current_liabilities") {
		if bs["total_liabilities"] != 0 && bs["non_current_liabilities"] != 0 {
			bs["current_liabilities"] = bs["total_liabilities"] - bs["non_current_liabilities"]
		}
	}

	// Quick Ratio needs inventory even when the filing omits it.
	if len(bs) > 0 {
		if _, ok := bs["inventory"]; !ok {
			bs["inventory"] = 0
		}
	}
}

// deriveIncomeStatement fills the profit chain top-down. The net-income
// fallback to operating income is an estimate, not an identity, and is
// flagged as such so ratios built on it carry the caveat.
func (n *Normalizer) deriveIncomeStatement(result *Result) {
	is := result.Data.IncomeStatement

	if _, ok := is["gross_profit"]; !ok {
		if revenue := is["revenue"]; revenue != 0 {
			is["gross_profit"] = revenue - is["cost_of_sales"]
		}
	}

	if missingOrZero(is, "operating_income") {
		gross, hasGross := is["gross_profit"]
		expenses, hasExpenses := is["operating_expenses"]
		if hasGross && hasExpenses {
			is["operating_income"] = gross - expenses
		}
	}

	if missingOrZero(is, "net_income") {
		if beforeTax := is["income_before_tax"]; beforeTax != 0 {
			is["net_income"] = beforeTax - is["income_tax_expense"]
			log.Printf("[Normalizer] derived net_income=%.0f from pre-tax income", is["net_income"])
		} else if operating := is["operating_income"]; operating != 0 {
			is["net_income"] = operating
			result.Estimated["net_income"] = true
			log.Printf("[Normalizer] net_income unavailable, falling back to operating_income=%.0f (estimate)", operating)
		}
	}
}

func missingOrZero(section map[string]float64, field string) bool {
	value, ok := section[field]
	return !ok || value == 0
}

func hasField(data *models.NormalizedData, field string) bool {
	for _, section := range []models.Section{models.SectionBalanceSheet, models.SectionIncomeStatement, models.SectionCashFlow} {
		if _, ok := data.SectionMap(section)[field]; ok {
			return true
		}
	}
	return false
}
