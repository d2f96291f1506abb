// Package models defines the core entities of the disclosure analysis pipeline:
// financial statements, their normalized section data, computed ratios, and the
// error taxonomy shared by every pipeline stage.
package models

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// STATEMENT SECTIONS
// =============================================================================

// Section identifies one of the three statement sections a table row can
// belong to. It selects the synonym table used for concept mapping and the
// column-selection rule used for raw tables.
type Section string

const (
	SectionBalanceSheet    Section = "balance_sheet"
	SectionIncomeStatement Section = "income_statement"
	SectionCashFlow        Section = "cash_flow_statement"
)

// NormalizedData is the canonical three-section output of normalization.
// Keys are canonical field names (total_assets, revenue, ...) plus any
// pass-through keys kept for unrecognized line items.
type NormalizedData struct {
	BalanceSheet    map[string]float64 `json:"balance_sheet"`
	IncomeStatement map[string]float64 `json:"income_statement"`
	CashFlow        map[string]float64 `json:"cash_flow_statement"`
}

// SectionMap returns the map for the given section.
func (d *NormalizedData) SectionMap(section Section) map[string]float64 {
	switch section {
	case SectionBalanceSheet:
		return d.BalanceSheet
	case SectionIncomeStatement:
		return d.IncomeStatement
	case SectionCashFlow:
		return d.CashFlow
	}
	return nil
}

// IsEmpty reports whether no section holds any data.
func (d *NormalizedData) IsEmpty() bool {
	return len(d.BalanceSheet) == 0 && len(d.IncomeStatement) == 0 && len(d.CashFlow) == 0
}

// RequiredFields are the canonical fields the ratio calculator depends on.
// Their absence is warned about at every stage but is never fatal on its own.
var RequiredFields = []string{
	"total_assets",
	"total_liabilities",
	"total_equity",
	"revenue",
	"operating_income",
	"net_income",
}

// =============================================================================
// FINANCIAL STATEMENT ENTITY
// =============================================================================

// StatementType distinguishes annual from quarterly filings.
type StatementType string

const (
	StatementAnnual    StatementType = "annual"
	StatementQuarterly StatementType = "quarterly"
)

// FinancialStatement is the owning entity for one normalized filing period.
// Normalized data is immutable once set except via ReplaceNormalizedData,
// which swaps the whole structure (re-normalization).
type FinancialStatement struct {
	ID         string        `json:"id"`
	CorpName   string        `json:"corp_name"`
	Type       StatementType `json:"statement_type"`
	FiscalYear int           `json:"fiscal_year"`
	Quarter    int           `json:"quarter,omitempty"` // 1-4, quarterly only
	Data       *NormalizedData
	// Estimated marks fields whose values were derived by heuristic fallback
	// rather than extracted or computed from an accounting identity.
	Estimated map[string]bool `json:"estimated,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewFinancialStatement validates period metadata and creates an empty statement.
func NewFinancialStatement(corpName string, stype StatementType, fiscalYear, quarter int) (*FinancialStatement, error) {
	if fiscalYear < 1900 || fiscalYear > 2100 {
		return nil, fmt.Errorf("fiscal year %d out of range [1900, 2100]", fiscalYear)
	}
	switch stype {
	case StatementAnnual:
		// Quarter ignored for annual filings.
		quarter = 0
	case StatementQuarterly:
		if quarter < 1 || quarter > 4 {
			return nil, fmt.Errorf("quarterly statement requires quarter 1-4, got %d", quarter)
		}
	default:
		return nil, fmt.Errorf("unknown statement type %q", stype)
	}

	return &FinancialStatement{
		ID:         uuid.New().String(),
		CorpName:   corpName,
		Type:       stype,
		FiscalYear: fiscalYear,
		Quarter:    quarter,
		Estimated:  make(map[string]bool),
		CreatedAt:  time.Now(),
	}, nil
}

// SetNormalizedData attaches normalized data to the statement. Fully empty
// data is rejected; missing required fields are warned, not fatal.
func (s *FinancialStatement) SetNormalizedData(data *NormalizedData) error {
	if s.Data != nil {
		return fmt.Errorf("statement %s already has normalized data; use ReplaceNormalizedData", s.ID)
	}
	return s.attach(data)
}

// ReplaceNormalizedData swaps the statement's data wholesale. Estimated-field
// marks from the previous normalization are discarded.
func (s *FinancialStatement) ReplaceNormalizedData(data *NormalizedData) error {
	s.Estimated = make(map[string]bool)
	return s.attach(data)
}

func (s *FinancialStatement) attach(data *NormalizedData) error {
	if data == nil || data.IsEmpty() {
		return &ExtractionError{Reason: "normalized data is empty in every section"}
	}
	for _, field := range RequiredFields {
		if !s.hasField(data, field) {
			log.Printf("[Statement] %s FY%d: required field %q missing from normalized data", s.CorpName, s.FiscalYear, field)
		}
	}
	s.Data = data
	return nil
}

func (s *FinancialStatement) hasField(data *NormalizedData, field string) bool {
	for _, section := range []Section{SectionBalanceSheet, SectionIncomeStatement, SectionCashFlow} {
		if _, ok := data.SectionMap(section)[field]; ok {
			return true
		}
	}
	return false
}

// MarkEstimated records that a field's value came from a heuristic fallback.
func (s *FinancialStatement) MarkEstimated(field string) {
	if s.Estimated == nil {
		s.Estimated = make(map[string]bool)
	}
	s.Estimated[field] = true
}

// IsEstimated reports whether a field was filled by heuristic fallback.
func (s *FinancialStatement) IsEstimated(field string) bool {
	return s.Estimated[field]
}

// Field looks a canonical field up across all sections.
func (s *FinancialStatement) Field(name string) (float64, bool) {
	if s.Data == nil {
		return 0, false
	}
	for _, section := range []Section{SectionBalanceSheet, SectionIncomeStatement, SectionCashFlow} {
		if v, ok := s.Data.SectionMap(section)[name]; ok {
			return v, true
		}
	}
	return 0, false
}

// IsComplete reports whether the statement carries data and every required
// field is present somewhere.
func (s *FinancialStatement) IsComplete() bool {
	if s.Data == nil || s.Data.IsEmpty() {
		return false
	}
	for _, field := range RequiredFields {
		if _, ok := s.Field(field); !ok {
			return false
		}
	}
	return true
}

// PeriodLabel renders the filing period for logs and reports, e.g. "FY2023 Q3".
func (s *FinancialStatement) PeriodLabel() string {
	if s.Type == StatementQuarterly {
		return fmt.Sprintf("FY%d Q%d", s.FiscalYear, s.Quarter)
	}
	return fmt.Sprintf("FY%d", s.FiscalYear)
}
