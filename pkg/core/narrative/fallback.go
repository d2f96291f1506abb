package narrative

import (
	"fmt"

	"dart_analysis/pkg/models"
)

// Template fallbacks used when the provider is unavailable or fails. They
// are deterministic functions of the computed ratios, long enough to pass
// the narrative stage gate, and clearly less nuanced than generated text.

func fallbackExecutiveSummary(actx *analysisContext) string {
	roe := actx.ratios[models.RatioROE]
	roa := actx.ratios[models.RatioROA]
	debtRatio := actx.ratios[models.RatioDebtRatio]
	currentRatio := actx.ratios[models.RatioCurrentRatio]

	assessment := "재무 개선이 필요한 상황입니다."
	if roe > 10 && debtRatio < 0.5 {
		assessment = "양호한 재무 상태를 유지하고 있습니다."
	} else if roe > 5 && debtRatio < 0.7 {
		assessment = "안정적인 재무 구조를 보이고 있습니다."
	}

	conclusion := "재무 구조 개선을 통한 경쟁력 강화가 필요합니다."
	if roe > 8 && debtRatio < 0.6 {
		conclusion = "전반적으로 건전한 재무 구조를 유지하고 있으며 지속적인 성장이 기대됩니다."
	}

	return fmt.Sprintf(`**%s %d년 경영진 요약**

**1. 전반적 재무 건전성**
%s은(는) %s

**2. 주요 지표**
- ROA %.1f%%, ROE %.1f%%로 자산 및 자기자본 대비 수익 창출 능력을 보이고 있습니다.
- 유동비율 %.2f로 단기 지급 능력을 확인할 수 있습니다.

**3. 개선 필요 영역**
- 부채비율 %.2f 수준의 부채 관리가 핵심 과제입니다.

**4. 핵심 결론**
%s의 %d년 재무 성과를 종합하면, %s`,
		actx.corpName, actx.fiscalYear,
		actx.corpName, assessment,
		roa, roe, currentRatio, debtRatio,
		actx.corpName, actx.fiscalYear, conclusion)
}

func fallbackFinancialHealth(actx *analysisContext) *HealthAssessment {
	ratios := actx.ratios

	score := 50
	if ratios[models.RatioROE] > 10 {
		score += 15
	}
	if ratios[models.RatioDebtRatio] < 0.5 && ratios[models.RatioDebtRatio] > 0 {
		score += 15
	}
	if ratios[models.RatioCurrentRatio] > 1.5 {
		score += 10
	}
	if ratios[models.RatioProfitMargin] > 5 {
		score += 10
	}
	if score > 100 {
		score = 100
	}

	rating := "B"
	switch {
	case score >= 90:
		rating = "AA"
	case score >= 80:
		rating = "A"
	case score >= 70:
		rating = "BBB"
	case score >= 60:
		rating = "BB"
	}

	health := &HealthAssessment{
		OverallScore: score,
		Rating:       rating,
		Summary:      fmt.Sprintf("%s의 재무 건전성 점수는 %d점(%s 등급)입니다. 주요 재무비율 기반의 기계적 평가입니다.", actx.corpName, score, rating),
	}
	if ratios[models.RatioROE] > 10 {
		health.Strengths = append(health.Strengths, fmt.Sprintf("ROE %.1f%%의 양호한 자본 수익성", ratios[models.RatioROE]))
	}
	if ratios[models.RatioCurrentRatio] > 1.5 {
		health.Strengths = append(health.Strengths, fmt.Sprintf("유동비율 %.2f의 충분한 단기 유동성", ratios[models.RatioCurrentRatio]))
	}
	if len(health.Strengths) == 0 {
		health.Strengths = append(health.Strengths, "추가 분석이 필요합니다")
	}
	if ratios[models.RatioDebtRatio] >= 0.5 {
		health.Weaknesses = append(health.Weaknesses, fmt.Sprintf("부채비율 %.2f의 부담", ratios[models.RatioDebtRatio]))
		health.KeyRisks = append(health.KeyRisks, "부채 수준 관리 필요")
	}
	if len(health.Weaknesses) == 0 {
		health.Weaknesses = append(health.Weaknesses, "특이사항 없음")
	}
	if len(health.KeyRisks) == 0 {
		health.KeyRisks = append(health.KeyRisks, "일반적인 시장 리스크")
	}
	return health
}

func fallbackRatioAnalysis(actx *analysisContext) string {
	ratios := actx.ratios
	b := actx.benchmarks

	compare := func(actual, benchmark float64) string {
		if actual >= benchmark {
			return "업계 평균을 상회"
		}
		return "업계 평균을 하회"
	}

	return fmt.Sprintf(`**%s 재무비율 분석**

**1. 수익성 분석**
ROA %.2f%%는 업계평균 %.1f%% 대비 %s하고 있으며, ROE %.2f%%는 업계평균 %.1f%% 대비 %s하고 있습니다. 순이익률은 %.2f%%, 영업이익률은 %.2f%%입니다.

**2. 안정성 분석**
유동비율 %.2f(업계평균 %.1f)로 단기 지급 능력을, 부채비율 %.2f(업계평균 %.1f)로 장기 재무 안정성을 평가할 수 있습니다. 당좌비율은 %.2f입니다.

**3. 효율성 분석**
총자산회전율 %.2f는 자산 활용 효율성을 나타내며, 자기자본배율은 %.2f입니다.

**4. 종합 평가**
상기 비율은 업계 평균과의 기계적 비교 결과이며, 산업 특성과 사업 구조를 반영한 정성적 해석이 별도로 필요합니다.`,
		actx.corpName,
		ratios[models.RatioROA], b.ROA, compare(ratios[models.RatioROA], b.ROA),
		ratios[models.RatioROE], b.ROE, compare(ratios[models.RatioROE], b.ROE),
		ratios[models.RatioProfitMargin], ratios[models.RatioOperatingMargin],
		ratios[models.RatioCurrentRatio], b.CurrentRatio,
		ratios[models.RatioDebtRatio], b.DebtRatio,
		ratios[models.RatioQuickRatio],
		ratios[models.RatioAssetTurnover], ratios[models.RatioEquityMultiplier])
}

func fallbackInvestmentStance(actx *analysisContext) *InvestmentStance {
	roe := actx.ratios[models.RatioROE]
	debtRatio := actx.ratios[models.RatioDebtRatio]

	recommendation := "보유"
	if roe > 12 && debtRatio < 0.5 {
		recommendation = "매수"
	} else if roe < 3 || debtRatio > 0.8 {
		recommendation = "매도"
	}

	return &InvestmentStance{
		Recommendation: recommendation,
		Confidence:     "낮음",
		KeyPositives:   []string{fmt.Sprintf("ROE %.1f%%", roe)},
		KeyNegatives:   []string{fmt.Sprintf("부채비율 %.2f", debtRatio)},
		RiskFactors:    []string{"기계적 평가에 따른 해석 한계", "일반적인 시장 리스크"},
		Summary:        fmt.Sprintf("%s에 대한 템플릿 기반 투자 의견은 '%s'입니다. 재무비율만을 근거로 한 기계적 판단입니다.", actx.corpName, recommendation),
		Disclaimer:     investmentDisclaimer,
	}
}
