package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"dart_analysis/pkg/models"
)

// ErrNotFound is returned when no stored statement matches the lookup key.
var ErrNotFound = errors.New("statement not found")

// StatementRepo persists normalized statements with their ratios.
// One row per (corp_name, fiscal_year, quarter); re-running a pipeline for
// the same period replaces the previous result.
type StatementRepo struct{}

func NewStatementRepo() *StatementRepo {
	return &StatementRepo{}
}

// statementRecord is the JSONB blob layout. Keeping the statement and its
// ratios in one document means loads never need a join.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS financial_statements (
//   corp_name TEXT NOT NULL,
//   fiscal_year INT NOT NULL,
//   quarter INT NOT NULL,
//   statement_id UUID NOT NULL,
//   statement_json JSONB NOT NULL,
//   updated_at TIMESTAMPTZ NOT NULL,
//   PRIMARY KEY (corp_name, fiscal_year, quarter)
// );
type statementRecord struct {
	Statement *models.FinancialStatement `json:"statement"`
	Ratios    []*models.FinancialRatio   `json:"ratios"`
}

// Save upserts a statement and its ratios keyed by corp and period.
func (r *StatementRepo) Save(ctx context.Context, statement *models.FinancialStatement, ratios []*models.FinancialRatio) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(statementRecord{Statement: statement, Ratios: ratios})
	if err != nil {
		return fmt.Errorf("failed to marshal statement record: %w", err)
	}

	query := `
		INSERT INTO financial_statements (corp_name, fiscal_year, quarter, statement_id, statement_json, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (corp_name, fiscal_year, quarter)
		DO UPDATE SET
			statement_id = EXCLUDED.statement_id,
			statement_json = EXCLUDED.statement_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(ctx, query,
		statement.CorpName, statement.FiscalYear, statement.Quarter,
		statement.ID, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save statement: %w", err)
	}
	return nil
}

// Load retrieves a statement and its ratios for a corp and period.
// Quarter 0 addresses annual statements.
func (r *StatementRepo) Load(ctx context.Context, corpName string, fiscalYear, quarter int) (*models.FinancialStatement, []*models.FinancialRatio, error) {
	pool := GetPool()
	if pool == nil {
		return nil, nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT statement_json FROM financial_statements WHERE corp_name = $1 AND fiscal_year = $2 AND quarter = $3`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, corpName, fiscalYear, quarter).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, fmt.Errorf("%w: %s FY%d Q%d", ErrNotFound, corpName, fiscalYear, quarter)
		}
		return nil, nil, fmt.Errorf("failed to load statement: %w", err)
	}

	var record statementRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal statement record: %w", err)
	}
	return record.Statement, record.Ratios, nil
}

// LoadPrior returns the same quarter of the previous fiscal year, for
// year-over-year comparisons. ErrNotFound when the prior period was never
// analyzed.
func (r *StatementRepo) LoadPrior(ctx context.Context, current *models.FinancialStatement) (*models.FinancialStatement, []*models.FinancialRatio, error) {
	return r.Load(ctx, current.CorpName, current.FiscalYear-1, current.Quarter)
}

// Delete removes a stored period. Missing rows are not an error.
func (r *StatementRepo) Delete(ctx context.Context, corpName string, fiscalYear, quarter int) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	_, err := pool.Exec(ctx,
		`DELETE FROM financial_statements WHERE corp_name = $1 AND fiscal_year = $2 AND quarter = $3`,
		corpName, fiscalYear, quarter)
	if err != nil {
		return fmt.Errorf("failed to delete statement: %w", err)
	}
	return nil
}
