package narrative

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"dart_analysis/pkg/core/utils"
	"dart_analysis/pkg/models"
)

// =============================================================================
// REPORT TYPES
// =============================================================================

// HealthAssessment is the structured financial-health section.
type HealthAssessment struct {
	OverallScore int      `json:"overall_score"`
	Rating       string   `json:"rating"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	KeyRisks     []string `json:"key_risks"`
	Summary      string   `json:"summary"`
}

// InvestmentStance is the structured investment-opinion section.
type InvestmentStance struct {
	Recommendation string   `json:"recommendation"`
	Confidence     string   `json:"confidence"`
	KeyPositives   []string `json:"key_positives"`
	KeyNegatives   []string `json:"key_negatives"`
	RiskFactors    []string `json:"risk_factors"`
	Summary        string   `json:"summary"`
	Disclaimer     string   `json:"disclaimer"`
}

const investmentDisclaimer = "본 분석은 참고용이며, 투자 결정에 대한 책임은 투자자 본인에게 있습니다."

// healthCore and stanceCore name the fields a structured section cannot go
// without. ValidateJSON rejects a response that leaves any of them zero;
// list fields stay optional since a healthy company may have no weaknesses.
type healthCore struct {
	OverallScore int    `json:"overall_score"`
	Rating       string `json:"rating"`
	Summary      string `json:"summary"`
}

type stanceCore struct {
	Recommendation string `json:"recommendation"`
	Confidence     string `json:"confidence"`
	Summary        string `json:"summary"`
}

// Report is the full narrative output for one statement.
type Report struct {
	CorpName         string
	FiscalYear       int
	AnalysisDate     string
	ExecutiveSummary string
	FinancialHealth  *HealthAssessment
	RatioAnalysis    string
	Investment       *InvestmentStance

	// FallbackSections lists sections that used the template fallback
	// because the provider was unavailable or failed.
	FallbackSections []string
}

// IsComplete reports whether every section was generated by the provider.
func (r *Report) IsComplete() bool {
	return r.ExecutiveSummary != "" && r.RatioAnalysis != "" &&
		r.FinancialHealth != nil && r.Investment != nil &&
		len(r.FallbackSections) == 0
}

// Payload shapes the report for the stage 3→4 gate and downstream rendering.
func (r *Report) Payload(data *models.NormalizedData) map[string]interface{} {
	bsSummary := make(map[string]interface{})
	for _, field := range []string{"total_assets", "total_liabilities", "total_equity", "current_assets", "current_liabilities"} {
		if v, ok := data.BalanceSheet[field]; ok {
			bsSummary[field] = utils.FormatKRW(v)
		}
	}
	isSummary := make(map[string]interface{})
	for _, field := range []string{"revenue", "operating_income", "net_income", "gross_profit"} {
		if v, ok := data.IncomeStatement[field]; ok {
			isSummary[field] = utils.FormatKRW(v)
		}
	}

	return map[string]interface{}{
		"kpi_summary": r.ExecutiveSummary,
		"statement_table_summary": map[string]interface{}{
			"balance_sheet_summary":    bsSummary,
			"income_statement_summary": isSummary,
		},
		"ratio_analysis": r.RatioAnalysis,
	}
}

// =============================================================================
// ANALYZER
// =============================================================================

// analysisContext gathers everything the section prompts and the template
// fallbacks need.
type analysisContext struct {
	corpName   string
	fiscalYear int
	industry   string
	ratios     map[models.RatioKind]float64
	benchmarks BenchmarkSet

	totalAssets      float64
	totalLiabilities float64
	totalEquity      float64
	revenue          float64
	operatingIncome  float64
	netIncome        float64
}

// Analyzer generates the four report sections concurrently. A nil provider
// means every section uses its template fallback (offline mode).
type Analyzer struct {
	provider   Provider
	benchmarks *Benchmarks
}

func NewAnalyzer(provider Provider, benchmarks *Benchmarks) *Analyzer {
	if benchmarks == nil {
		benchmarks = DefaultBenchmarks()
	}
	return &Analyzer{provider: provider, benchmarks: benchmarks}
}

// GenerateReport runs the four section generators concurrently and collects
// the report. Section failures never fail the report; they degrade to the
// deterministic templates.
func (a *Analyzer) GenerateReport(ctx context.Context, statement *models.FinancialStatement, ratios []*models.FinancialRatio, industry string) *Report {
	log.Printf("[Narrative] generating analysis for %s %s", statement.CorpName, statement.PeriodLabel())
	actx := a.buildContext(statement, ratios, industry)

	report := &Report{
		CorpName:     statement.CorpName,
		FiscalYear:   statement.FiscalYear,
		AnalysisDate: time.Now().UTC().Format("2006-01-02"),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	fallback := func(section string) {
		mu.Lock()
		report.FallbackSections = append(report.FallbackSections, section)
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		text, usedFallback := a.executiveSummary(ctx, actx)
		report.ExecutiveSummary = text
		if usedFallback {
			fallback("executive_summary")
		}
	}()
	go func() {
		defer wg.Done()
		health, usedFallback := a.financialHealth(ctx, actx)
		report.FinancialHealth = health
		if usedFallback {
			fallback("financial_health")
		}
	}()
	go func() {
		defer wg.Done()
		text, usedFallback := a.ratioAnalysis(ctx, actx)
		report.RatioAnalysis = text
		if usedFallback {
			fallback("ratio_analysis")
		}
	}()
	go func() {
		defer wg.Done()
		stance, usedFallback := a.investmentStance(ctx, actx)
		report.Investment = stance
		if usedFallback {
			fallback("investment_recommendation")
		}
	}()
	wg.Wait()

	return report
}

func (a *Analyzer) buildContext(statement *models.FinancialStatement, ratios []*models.FinancialRatio, industry string) *analysisContext {
	actx := &analysisContext{
		corpName:   statement.CorpName,
		fiscalYear: statement.FiscalYear,
		industry:   industry,
		ratios:     make(map[models.RatioKind]float64, len(ratios)),
		benchmarks: a.benchmarks.For(industry),
	}
	for _, r := range ratios {
		actx.ratios[r.Kind] = r.Value
	}
	if statement.Data != nil {
		bs, is := statement.Data.BalanceSheet, statement.Data.IncomeStatement
		actx.totalAssets = bs["total_assets"]
		actx.totalLiabilities = bs["total_liabilities"]
		actx.totalEquity = bs["total_equity"]
		actx.revenue = is["revenue"]
		actx.operatingIncome = is["operating_income"]
		actx.netIncome = is["net_income"]
	}
	return actx
}

// =============================================================================
// SECTION GENERATORS
// =============================================================================

func (a *Analyzer) executiveSummary(ctx context.Context, actx *analysisContext) (string, bool) {
	if a.provider == nil {
		return fallbackExecutiveSummary(actx), true
	}

	systemPrompt := "당신은 한국 기업 분석 전문가입니다. 재무제표 데이터를 바탕으로 경영진과 투자자를 위한 명확하고 통찰력 있는 분석을 제공합니다. 모든 응답은 한국어로 작성해야 합니다."
	prompt := fmt.Sprintf(`다음 재무 데이터를 바탕으로 %s의 %d년 경영진 요약을 작성하세요.

**재무 현황:**
- 총자산: %s
- 총부채: %s
- 총자본: %s
- 매출액: %s
- 영업이익: %s
- 당기순이익: %s

**주요 재무비율:**
- ROA (총자산이익률): %.2f%%
- ROE (자기자본이익률): %.2f%%
- 부채비율: %.2f
- 유동비율: %.2f

다음 구조로 경영진 요약을 작성하세요 (300단어 이내):
1. 전반적인 재무 건전성 평가
2. 주요 강점
3. 개선이 필요한 영역
4. 핵심 결론`,
		actx.corpName, actx.fiscalYear,
		utils.FormatKRW(actx.totalAssets), utils.FormatKRW(actx.totalLiabilities),
		utils.FormatKRW(actx.totalEquity), utils.FormatKRW(actx.revenue),
		utils.FormatKRW(actx.operatingIncome), utils.FormatKRW(actx.netIncome),
		actx.ratios[models.RatioROA], actx.ratios[models.RatioROE],
		actx.ratios[models.RatioDebtRatio], actx.ratios[models.RatioCurrentRatio])

	text, err := a.provider.GenerateResponse(ctx, prompt, a.provider.AdaptInstructions(systemPrompt), nil)
	if err != nil {
		log.Printf("[Narrative] executive summary generation failed: %v", err)
		return fallbackExecutiveSummary(actx), true
	}
	cleaned := utils.CleanMarkdown(text)
	if !utils.ValidateMarkdown(cleaned) {
		log.Printf("[Narrative] executive summary is not renderable markdown")
		return fallbackExecutiveSummary(actx), true
	}
	return cleaned, false
}

func (a *Analyzer) financialHealth(ctx context.Context, actx *analysisContext) (*HealthAssessment, bool) {
	if a.provider == nil {
		return fallbackFinancialHealth(actx), true
	}

	systemPrompt := "당신은 기업 신용 분석 전문가입니다. 재무제표를 분석하여 기업의 재무 건전성을 평가합니다. JSON 형식으로만 응답하세요."
	prompt := fmt.Sprintf(`다음 재무 데이터를 분석하여 %s의 재무 건전성을 평가하세요.

**업계 평균 대비 비교:**
%s

다음 JSON 형식으로 응답하세요:
{
    "overall_score": <1-100 사이의 점수>,
    "rating": "<AAA/AA/A/BBB/BB/B/CCC 중 하나>",
    "strengths": ["강점1", "강점2"],
    "weaknesses": ["약점1", "약점2"],
    "key_risks": ["리스크1", "리스크2"],
    "summary": "<전체 평가 요약 (2-3문장)>"
}`, actx.corpName, benchmarkComparisonText(actx))

	raw, err := a.provider.GenerateResponse(ctx, prompt, a.provider.AdaptInstructions(systemPrompt),
		map[string]interface{}{"response_format": map[string]interface{}{"type": "json_object"}})
	if err != nil {
		log.Printf("[Narrative] financial health generation failed: %v", err)
		return fallbackFinancialHealth(actx), true
	}

	var health HealthAssessment
	parsed, err := utils.SmartParse(raw, &health)
	if err != nil {
		log.Printf("[Narrative] financial health response unparseable: %v", err)
		return fallbackFinancialHealth(actx), true
	}
	if err := utils.ValidateJSON(parsed, &healthCore{}); err != nil {
		log.Printf("[Narrative] financial health response incomplete: %v", err)
		return fallbackFinancialHealth(actx), true
	}
	return &health, false
}

func (a *Analyzer) ratioAnalysis(ctx context.Context, actx *analysisContext) (string, bool) {
	if a.provider == nil {
		return fallbackRatioAnalysis(actx), true
	}

	systemPrompt := "당신은 재무비율 분석 전문가입니다. 각 재무비율의 의미를 해석하고 기업 경영에 대한 시사점을 도출합니다. 모든 응답은 한국어로 작성하세요."
	prompt := fmt.Sprintf(`다음 %s의 재무비율을 분석하세요.

**수익성 지표:**
- ROA: %.2f%% (업계평균: %.1f%%)
- ROE: %.2f%% (업계평균: %.1f%%)
- 순이익률: %.2f%% (업계평균: %.1f%%)
- 영업이익률: %.2f%%

**안정성 지표:**
- 유동비율: %.2f (업계평균: %.1f)
- 당좌비율: %.2f
- 부채비율: %.2f (업계평균: %.1f)

**효율성 지표:**
- 총자산회전율: %.2f
- 자기자본배율: %.2f

각 카테고리별로 분석하고 종합 평가로 마무리하세요 (400단어 이내).`,
		actx.corpName,
		actx.ratios[models.RatioROA], actx.benchmarks.ROA,
		actx.ratios[models.RatioROE], actx.benchmarks.ROE,
		actx.ratios[models.RatioProfitMargin], actx.benchmarks.ProfitMargin,
		actx.ratios[models.RatioOperatingMargin],
		actx.ratios[models.RatioCurrentRatio], actx.benchmarks.CurrentRatio,
		actx.ratios[models.RatioQuickRatio],
		actx.ratios[models.RatioDebtRatio], actx.benchmarks.DebtRatio,
		actx.ratios[models.RatioAssetTurnover],
		actx.ratios[models.RatioEquityMultiplier])

	text, err := a.provider.GenerateResponse(ctx, prompt, a.provider.AdaptInstructions(systemPrompt), nil)
	if err != nil {
		log.Printf("[Narrative] ratio analysis generation failed: %v", err)
		return fallbackRatioAnalysis(actx), true
	}
	cleaned := utils.CleanMarkdown(text)
	if !utils.ValidateMarkdown(cleaned) {
		log.Printf("[Narrative] ratio analysis is not renderable markdown")
		return fallbackRatioAnalysis(actx), true
	}
	return cleaned, false
}

func (a *Analyzer) investmentStance(ctx context.Context, actx *analysisContext) (*InvestmentStance, bool) {
	if a.provider == nil {
		return fallbackInvestmentStance(actx), true
	}

	systemPrompt := "당신은 증권 분석가입니다. 재무 데이터를 바탕으로 투자 의견을 제시합니다. JSON 형식으로만 응답하세요."
	prompt := fmt.Sprintf(`%s의 재무 분석을 바탕으로 투자 의견을 제시하세요.

**핵심 지표:**
- ROE: %.2f%%
- ROA: %.2f%%
- 부채비율: %.2f
- 유동비율: %.2f
- 순이익률: %.2f%%

다음 JSON 형식으로 응답하세요:
{
    "recommendation": "<매수/보유/매도 중 하나>",
    "confidence": "<높음/중간/낮음 중 하나>",
    "key_positives": ["긍정요인1", "긍정요인2"],
    "key_negatives": ["부정요인1", "부정요인2"],
    "risk_factors": ["리스크1", "리스크2"],
    "summary": "<투자 의견 요약 (2-3문장)>"
}`,
		actx.corpName,
		actx.ratios[models.RatioROE], actx.ratios[models.RatioROA],
		actx.ratios[models.RatioDebtRatio], actx.ratios[models.RatioCurrentRatio],
		actx.ratios[models.RatioProfitMargin])

	raw, err := a.provider.GenerateResponse(ctx, prompt, a.provider.AdaptInstructions(systemPrompt),
		map[string]interface{}{"response_format": map[string]interface{}{"type": "json_object"}})
	if err != nil {
		log.Printf("[Narrative] investment stance generation failed: %v", err)
		return fallbackInvestmentStance(actx), true
	}

	var stance InvestmentStance
	parsed, err := utils.SmartParse(raw, &stance)
	if err != nil {
		log.Printf("[Narrative] investment stance response unparseable: %v", err)
		return fallbackInvestmentStance(actx), true
	}
	if err := utils.ValidateJSON(parsed, &stanceCore{}); err != nil {
		log.Printf("[Narrative] investment stance response incomplete: %v", err)
		return fallbackInvestmentStance(actx), true
	}
	stance.Disclaimer = investmentDisclaimer
	return &stance, false
}

func benchmarkComparisonText(actx *analysisContext) string {
	type comparison struct {
		label     string
		kind      models.RatioKind
		benchmark float64
	}
	comparisons := []comparison{
		{"ROA", models.RatioROA, actx.benchmarks.ROA},
		{"ROE", models.RatioROE, actx.benchmarks.ROE},
		{"순이익률", models.RatioProfitMargin, actx.benchmarks.ProfitMargin},
		{"유동비율", models.RatioCurrentRatio, actx.benchmarks.CurrentRatio},
		{"부채비율", models.RatioDebtRatio, actx.benchmarks.DebtRatio},
	}

	var lines []string
	for _, cmp := range comparisons {
		actual, ok := actx.ratios[cmp.kind]
		if !ok {
			continue
		}
		status := "above"
		if actual < cmp.benchmark {
			status = "below"
		}
		lines = append(lines, fmt.Sprintf("- %s: 실제 %.2f vs 업계평균 %.2f (%s)", cmp.label, actual, cmp.benchmark, status))
	}
	return strings.Join(lines, "\n")
}
