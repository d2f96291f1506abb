package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"dart_analysis/pkg/core/narrative"
	"dart_analysis/pkg/core/pipeline"
	"dart_analysis/pkg/models"
)

// Bundled quarterly filing excerpt in DART viewer table form, amounts in
// millions of KRW. Lets the pipeline run end to end without network access.
const sampleFilingHTML = `
<html><body>
<p>연결 재무상태표</p>
<table>
<tr><td>과 목</td><td>당분기말</td><td>전기말</td></tr>
<tr><td>Ⅰ.유동자산</td><td>229,440,881</td><td>218,163,185</td></tr>
<tr><td>현금및현금성자산 (주3,26)</td><td>62,847,291</td><td>49,680,710</td></tr>
<tr><td>재고자산 (주7)</td><td>50,332,392</td><td>51,625,874</td></tr>
<tr><td>Ⅱ.비유동자산</td><td>294,218,705</td><td>237,582,279</td></tr>
<tr><td>관계기업 투자 (주9)</td><td>11,442,827</td><td>10,893,869</td></tr>
<tr><td>자산총계</td><td>523,659,586</td><td>455,745,464</td></tr>
<tr><td>Ⅰ.유동부채</td><td>87,259,259</td><td>75,719,452</td></tr>
<tr><td>Ⅱ.비유동부채</td><td>22,898,833</td><td>22,228,981</td></tr>
<tr><td>부채총계</td><td>110,158,092</td><td>97,948,433</td></tr>
<tr><td>자본총계</td><td>413,501,494</td><td>357,797,031</td></tr>
</table>
<p>연결 손익계산서</p>
<table>
<tr><td>과 목</td><td>당분기 3개월</td><td>당분기 누적</td><td>전분기 3개월</td><td>전분기 누적</td></tr>
<tr><td>Ⅰ.매출액</td><td>86,062,261</td><td>239,768,567</td><td>79,098,654</td><td>224,266,607</td></tr>
<tr><td>Ⅱ.매출원가</td><td>54,562,551</td><td>152,649,117</td><td>50,967,507</td><td>145,891,702</td></tr>
<tr><td>Ⅲ.매출총이익</td><td>31,499,710</td><td>87,119,450</td><td>28,131,147</td><td>78,374,905</td></tr>
<tr><td>판매비와관리비 (주20)</td><td>22,340,902</td><td>63,592,059</td><td>20,647,740</td><td>60,625,779</td></tr>
<tr><td>Ⅳ.영업이익(손실)</td><td>9,158,808</td><td>23,527,391</td><td>7,483,407</td><td>17,749,126</td></tr>
<tr><td>Ⅴ.법인세비용차감전순이익</td><td>11,055,763</td><td>28,764,182</td><td>8,122,212</td><td>20,396,418</td></tr>
<tr><td>법인세비용</td><td>1,151,364</td><td>3,199,122</td><td>1,886,471</td><td>4,833,798</td></tr>
<tr><td>Ⅵ.분기순이익</td><td>9,904,399</td><td>25,565,060</td><td>6,235,741</td><td>15,562,620</td></tr>
</table>
</body></html>
`

func main() {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	fmt.Println("🚀 DART Disclosure Analysis Pipeline Starting...")

	cfg := pipeline.DefaultConfig()
	if path := os.Getenv("PIPELINE_CONFIG"); path != "" {
		loaded, err := pipeline.LoadConfig(path)
		if err != nil {
			log.Fatalf("Error: unusable config %s: %v", path, err)
		}
		cfg = loaded
	}

	// Without an API key the narrative sections come from the deterministic
	// templates, which is enough for the bundled sample.
	var provider narrative.Provider
	if os.Getenv("GEMINI_API_KEY") != "" {
		registry := narrative.NewRegistry("gemini")
		p, err := registry.Active()
		if err != nil {
			log.Fatalf("Error: provider setup failed: %v", err)
		}
		provider = p
	} else {
		fmt.Println("GEMINI_API_KEY not set, running offline with template narratives.")
	}

	orch := pipeline.NewOrchestrator(provider, cfg)
	result, err := orch.Run(context.Background(), pipeline.Request{
		CorpName:   "삼성전자",
		Type:       models.StatementQuarterly,
		FiscalYear: 2023,
		Quarter:    3,
		Industry:   "technology",
		HTML:       sampleFilingHTML,
	})
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	printReport(result)
}

func printReport(result *pipeline.Result) {
	statement := result.Statement
	report := result.Report

	fmt.Println("\n################################################################################")
	fmt.Println("                    DART ANALYSIS ENGINE - ANALYST REPORT")
	fmt.Printf("                    Target: %s (%s)\n", statement.CorpName, statement.PeriodLabel())
	fmt.Println("################################################################################")

	fmt.Println("\n[1] 경영진 요약")
	fmt.Println(report.ExecutiveSummary)

	fmt.Println("\n[2] 재무 건전성")
	health := report.FinancialHealth
	fmt.Printf("Score: %d/100 (Rating: %s)\n", health.OverallScore, health.Rating)
	fmt.Printf("Strengths:  %s\n", strings.Join(health.Strengths, " / "))
	fmt.Printf("Weaknesses: %s\n", strings.Join(health.Weaknesses, " / "))
	fmt.Println(health.Summary)

	fmt.Println("\n[3] 재무비율")
	fmt.Printf("%-20s | %12s | %s\n", "Ratio", "Value", "Flags")
	fmt.Println(strings.Repeat("-", 50))
	for _, r := range result.Ratios {
		flag := ""
		if r.Estimated {
			flag = "estimated"
		}
		fmt.Printf("%-20s | %12s | %s\n", r.Kind, r.Format(), flag)
	}

	fmt.Println("\n[4] 재무비율 분석")
	fmt.Println(report.RatioAnalysis)

	fmt.Println("\n[5] 투자 의견")
	stance := report.Investment
	fmt.Printf("Recommendation: %s (Confidence: %s)\n", stance.Recommendation, stance.Confidence)
	fmt.Println(stance.Summary)
	fmt.Println(stance.Disclaimer)

	if len(result.Warnings) > 0 {
		fmt.Printf("\n[!] %d warnings accumulated during the run\n", len(result.Warnings))
	}
	fmt.Printf("\n[Done] Analysis complete in %v.\n", result.Elapsed)
}
