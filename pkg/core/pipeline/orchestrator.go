package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"dart_analysis/pkg/core/extract"
	"dart_analysis/pkg/core/narrative"
	"dart_analysis/pkg/core/normalize"
	"dart_analysis/pkg/core/ratio"
	"dart_analysis/pkg/core/store"
	"dart_analysis/pkg/core/validate"
	"dart_analysis/pkg/models"
)

// StatementStore is the persistence surface the orchestrator needs.
// Satisfied by store.StatementRepo; tests inject an in-memory fake.
type StatementStore interface {
	Save(ctx context.Context, statement *models.FinancialStatement, ratios []*models.FinancialRatio) error
}

// PriorLoader is optionally implemented by a StatementStore that can look up
// the prior-year statement, enabling year-over-year figures in the result.
type PriorLoader interface {
	LoadPrior(ctx context.Context, current *models.FinancialStatement) (*models.FinancialStatement, []*models.FinancialRatio, error)
}

var (
	_ StatementStore = (*store.StatementRepo)(nil)
	_ PriorLoader    = (*store.StatementRepo)(nil)
)

// Request describes one filing to analyze. Exactly one of HTML or Facts
// carries the source data: HTML is a DART viewer page whose statement tables
// get parsed, Facts is a pre-extracted inline-XBRL name→value set.
type Request struct {
	CorpName   string
	Type       models.StatementType
	FiscalYear int
	Quarter    int
	Industry   string

	HTML  string
	Facts map[string]string
}

// Result is everything one run produced, including the gate checkpoints.
type Result struct {
	Statement *models.FinancialStatement
	Ratios    []*models.FinancialRatio
	Growth    []*ratio.YoYResult
	Report    *narrative.Report
	Stages    []*validate.StageResult
	Warnings  []string
	Elapsed   time.Duration
}

// Orchestrator wires the pipeline stages:
// extraction -> normalization -> gate -> ratios -> gate -> narrative -> gate -> final check -> storage.
type Orchestrator struct {
	normalizer *normalize.Normalizer
	calculator *ratio.Calculator
	validator  *validate.StageValidator
	analyzer   *narrative.Analyzer
	repo       StatementStore
	config     Config
}

// NewOrchestrator builds an orchestrator. provider may be nil for offline
// runs; every narrative section then uses its template fallback.
func NewOrchestrator(provider narrative.Provider, config Config) *Orchestrator {
	var benchmarks *narrative.Benchmarks
	if config.BenchmarkFile != "" {
		loaded, err := narrative.LoadBenchmarks(config.BenchmarkFile)
		if err != nil {
			fmt.Printf("Warning: benchmark file unusable (%v), using built-ins\n", err)
		} else {
			benchmarks = loaded
		}
	}

	validator := validate.NewStageValidator()
	if config.Validation.BalanceTolerance > 0 {
		validator.BalanceTolerance = config.Validation.BalanceTolerance
	}

	o := &Orchestrator{
		normalizer: normalize.NewNormalizer(),
		calculator: ratio.NewCalculator(),
		validator:  validator,
		analyzer:   narrative.NewAnalyzer(provider, benchmarks),
		config:     config,
	}
	if config.SaveResults {
		o.repo = store.NewStatementRepo()
	}
	return o
}

// SetStore injects a custom statement store (e.g. for testing).
func (o *Orchestrator) SetStore(repo StatementStore) {
	o.repo = repo
}

// Run executes the full pipeline for one filing.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	fmt.Printf("Starting analysis pipeline for %s FY%d...\n", req.CorpName, req.FiscalYear)
	start := time.Now()
	result := &Result{}

	// --- Stage 1: Extraction + Normalization ---
	fmt.Printf("\n--- [Stage 1] Extraction & Normalization ---\n")
	norm, err := o.normalize(req)
	if err != nil {
		return nil, fmt.Errorf("normalization failed: %w", err)
	}
	result.Warnings = append(result.Warnings, norm.Warnings...)
	for _, w := range norm.Warnings {
		fmt.Printf("  ⚠️ %s\n", w)
	}

	statement, err := models.NewFinancialStatement(req.CorpName, req.Type, req.FiscalYear, req.Quarter)
	if err != nil {
		return nil, fmt.Errorf("invalid statement metadata: %w", err)
	}
	if err := statement.SetNormalizedData(norm.Data); err != nil {
		return nil, fmt.Errorf("failed to attach normalized data: %w", err)
	}
	for field := range norm.Estimated {
		statement.MarkEstimated(field)
	}
	result.Statement = statement
	fmt.Printf("  Normalized %d BS / %d IS / %d CF items\n",
		len(norm.Data.BalanceSheet), len(norm.Data.IncomeStatement), len(norm.Data.CashFlow))

	stage, gateErr := o.validator.ValidateNormalized(norm.Data)
	if err := o.gate(result, stage, gateErr); err != nil {
		return result, err
	}

	// --- Stage 2: Ratio Calculation ---
	fmt.Printf("\n--- [Stage 2] Ratio Calculation ---\n")
	ratios, err := o.calculator.CalculateAll(norm.Data, statement.ID, norm.Estimated)
	if err != nil {
		return result, fmt.Errorf("ratio calculation failed: %w", err)
	}
	result.Ratios = ratios
	for _, r := range ratios {
		fmt.Printf("  %s = %s\n", r.Kind, r.Format())
	}

	stage, gateErr = o.validator.ValidateRatios(ratios)
	if err := o.gate(result, stage, gateErr); err != nil {
		return result, err
	}
	result.Growth = o.growth(ctx, statement)
	for _, g := range result.Growth {
		fmt.Printf("  %s YoY %+.2f%%\n", g.Field, g.ChangePct)
	}

	// --- Stage 3: Narrative Generation ---
	fmt.Printf("\n--- [Stage 3] Narrative Generation ---\n")
	report := o.analyzer.GenerateReport(ctx, statement, ratios, o.industry(req))
	result.Report = report
	if len(report.FallbackSections) > 0 {
		fmt.Printf("  Template fallback used for: %v\n", report.FallbackSections)
	}

	stage, gateErr = o.validator.ValidateNarrative(report.Payload(norm.Data))
	if err := o.gate(result, stage, gateErr); err != nil {
		return result, err
	}

	// --- Stage 4: Final Validation ---
	fmt.Printf("\n--- [Stage 4] Final Validation ---\n")
	stage, gateErr = o.validator.ValidateFinal(statement, ratios, report.IsComplete(), nil)
	if err := o.gate(result, stage, gateErr); err != nil {
		return result, err
	}

	// --- Stage 5: Storage ---
	if o.repo != nil {
		fmt.Printf("\n--- [Stage 5] Storage ---\n")
		if err := o.repo.Save(ctx, statement, ratios); err != nil {
			return result, fmt.Errorf("storage failed: %w", err)
		}
		fmt.Printf("  Saved %s %s\n", statement.CorpName, statement.PeriodLabel())
	}

	result.Elapsed = time.Since(start)
	fmt.Printf("\nPipeline completed for %s in %v\n", req.CorpName, result.Elapsed)
	return result, nil
}

func (o *Orchestrator) normalize(req Request) (*normalize.Result, error) {
	if req.HTML != "" {
		tables, err := extract.ParseHTMLTables(req.HTML)
		if err != nil {
			return nil, err
		}
		return o.normalizer.NormalizeTables(tables)
	}
	if len(req.Facts) > 0 {
		return o.normalizer.NormalizeFacts(req.Facts)
	}
	return nil, &models.ExtractionError{Reason: "request carries neither HTML nor facts"}
}

// growth compares headline figures against the prior-year statement when the
// store can supply one. A missing prior period is not an error.
func (o *Orchestrator) growth(ctx context.Context, statement *models.FinancialStatement) []*ratio.YoYResult {
	loader, ok := o.repo.(PriorLoader)
	if !ok {
		return nil
	}
	prior, _, err := loader.LoadPrior(ctx, statement)
	if err != nil {
		fmt.Printf("  No prior period for YoY comparison: %v\n", err)
		return nil
	}

	var results []*ratio.YoYResult
	for _, field := range []string{"revenue", "operating_income", "net_income"} {
		g, err := ratio.YoYFromStatements(statement, prior, field)
		if err != nil || math.IsInf(g.ChangePct, 0) {
			continue
		}
		results = append(results, g)
	}
	return results
}

func (o *Orchestrator) industry(req Request) string {
	if req.Industry != "" {
		return req.Industry
	}
	return o.config.DefaultIndustry
}

// gate records a stage checkpoint and decides whether the run continues.
// Fatal gate failures always stop; warnings stop only under strict
// validation.
func (o *Orchestrator) gate(result *Result, stage *validate.StageResult, err error) error {
	result.Stages = append(result.Stages, stage)
	result.Warnings = append(result.Warnings, stage.Warnings...)

	if err != nil {
		fmt.Printf("  ❌ CRITICAL: %v\n", err)
		return err
	}
	for _, w := range stage.Warnings {
		fmt.Printf("  ⚠️ WARNING: %s\n", w)
	}
	if o.config.Validation.EnableStrictValidation && len(stage.Warnings) > 0 {
		return &models.ValidationError{
			Stage:  stage.Stage,
			Reason: fmt.Sprintf("strict validation: %d warnings treated as errors", len(stage.Warnings)),
		}
	}
	fmt.Printf("  ✅ %s passed\n", stage.Stage)
	return nil
}
