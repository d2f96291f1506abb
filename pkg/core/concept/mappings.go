// Package concept maps extracted item names and XBRL concept identifiers to
// canonical financial-statement field names via per-section synonym tables.
package concept

import "dart_analysis/pkg/models"

// fieldSynonyms binds one canonical field to every raw spelling it is known
// by: DART taxonomy element IDs in underscore and colon forms, plain English
// names, and Korean labels with and without internal spacing. Order matters;
// earlier synonyms are tried first and earlier fields claim facts first.
type fieldSynonyms struct {
	field    string
	synonyms []string
}

// Balance sheet fields, per the official DART K-IFRS account taxonomy.
var balanceSheetMappings = []fieldSynonyms{
	// The closing row 부채와자본총계 (equity and liabilities) equals total
	// assets; mapping it here keeps the substring tier from claiming it
	// for total_liabilities.
	{"total_assets", []string{
		"ifrs-full_Assets", "dart_Assets",
		"ifrs-full:Assets", "dart:Assets",
		"ifrs-full_EquityAndLiabilities", "ifrs-full:EquityAndLiabilities",
		"Assets", "TotalAssets", "EquityAndLiabilities",
		"자산총계", "자산", "총자산", "자산 총계", "자산합계",
		"부채와자본총계", "자본과부채총계", "부채및자본총계", "자본및부채총계",
	}},
	{"current_assets", []string{
		"ifrs-full_CurrentAssets", "dart_CurrentAssets",
		"ifrs-full:CurrentAssets", "dart:CurrentAssets",
		"CurrentAssets",
		"유동자산", "유동 자산", "유동자산합계",
	}},
	{"non_current_assets", []string{
		"ifrs-full_NoncurrentAssets", "dart_NoncurrentAssets",
		"ifrs-full:NoncurrentAssets", "dart:NoncurrentAssets",
		"NoncurrentAssets", "NonCurrentAssets",
		"비유동자산", "비유동 자산", "비유동자산합계", "고정자산",
	}},
	{"cash", []string{
		"ifrs-full_CashAndCashEquivalents", "dart_CashAndCashEquivalents",
		"ifrs-full:CashAndCashEquivalents", "dart:CashAndCashEquivalents",
		"CashAndCashEquivalents", "Cash",
		"현금및현금성자산", "현금및예치금", "현금", "현금성자산",
	}},
	{"inventory", []string{
		"ifrs-full_Inventories", "dart_Inventories",
		"ifrs-full:Inventories", "dart:Inventories",
		"Inventories",
		"재고자산",
	}},
	{"trade_receivables", []string{
		"ifrs-full_TradeAndOtherCurrentReceivables", "dart_ShortTermTradeReceivable",
		"ifrs-full:TradeAndOtherCurrentReceivables", "dart:ShortTermTradeReceivable",
		"TradeAndOtherCurrentReceivables", "TradeReceivables",
		"매출채권 및 기타유동채권", "매출채권", "매출채권및기타채권",
	}},
	{"total_liabilities", []string{
		"ifrs-full_Liabilities", "dart_Liabilities",
		"ifrs-full:Liabilities", "dart:Liabilities",
		"Liabilities", "TotalLiabilities",
		"부채총계", "부채", "총부채", "부채 총계", "부채합계",
	}},
	{"current_liabilities", []string{
		"ifrs-full_CurrentLiabilities", "dart_CurrentLiabilities",
		"ifrs-full:CurrentLiabilities", "dart:CurrentLiabilities",
		"CurrentLiabilities",
		"유동부채", "유동 부채", "유동부채합계",
	}},
	{"non_current_liabilities", []string{
		"ifrs-full_NoncurrentLiabilities", "dart_NoncurrentLiabilities",
		"ifrs-full:NoncurrentLiabilities", "dart:NoncurrentLiabilities",
		"NoncurrentLiabilities", "NonCurrentLiabilities",
		"비유동부채", "비유동 부채", "비유동부채합계", "고정부채",
	}},
	{"trade_payables", []string{
		"ifrs-full_TradeAndOtherCurrentPayables", "dart_TradePayables",
		"ifrs-full:TradeAndOtherCurrentPayables", "dart:TradePayables",
		"TradeAndOtherCurrentPayables", "TradePayables",
		"매입채무 및 기타유동채무", "매입채무", "매입채무및기타채무",
	}},
	{"total_equity", []string{
		"ifrs-full_Equity", "dart_Equity",
		"ifrs-full:Equity", "dart:Equity",
		"ifrs-full_EquityAttributableToOwnersOfParent",
		"ifrs-full:EquityAttributableToOwnersOfParent",
		"Equity", "TotalEquity", "StockholdersEquity",
		"자본총계", "자본", "총자본", "자본 총계", "자본합계",
		"자기자본", "순자산", "지배기업의 소유주에게 귀속되는 자본",
	}},
	{"share_capital", []string{
		"ifrs-full_IssuedCapital", "dart_IssuedCapitalOfCommonStock",
		"ifrs-full:IssuedCapital", "dart:IssuedCapital",
		"IssuedCapital",
		"자본금", "보통주자본금", "우선주자본금",
	}},
	{"retained_earnings", []string{
		"ifrs-full_RetainedEarnings", "dart_RetainedEarnings",
		"ifrs-full:RetainedEarnings", "dart:RetainedEarnings",
		"RetainedEarnings",
		"이익잉여금", "미처분이익잉여금",
	}},
}

// Income statement fields.
var incomeStatementMappings = []fieldSynonyms{
	{"revenue", []string{
		"ifrs-full_Revenue", "dart_Revenue",
		"ifrs-full:Revenue", "dart:Revenue",
		"Revenue", "SalesRevenue", "TotalRevenue",
		"수익(매출액)", "매출액", "수익", "영업수익",
		"매출", "총매출액", "영업 수익", "순매출액", "매출수익",
	}},
	{"cost_of_sales", []string{
		"ifrs-full_CostOfSales", "dart_CostOfSales",
		"ifrs-full:CostOfSales", "dart:CostOfSales",
		"CostOfSales",
		"매출원가", "영업비용",
	}},
	{"gross_profit", []string{
		"ifrs-full_GrossProfit", "dart_GrossProfit",
		"ifrs-full:GrossProfit", "dart:GrossProfit",
		"GrossProfit",
		"매출총이익",
	}},
	{"operating_income", []string{
		"dart_OperatingIncomeLoss", "ifrs-full_ProfitLossFromOperatingActivities",
		"dart:OperatingIncomeLoss", "ifrs-full:ProfitLossFromOperatingActivities",
		"OperatingIncomeLoss", "OperatingProfit", "OperatingIncome",
		"영업이익(손실)", "영업이익", "영업 이익", "영업손익",
	}},
	{"operating_expenses", []string{
		"ifrs-full_SellingGeneralAndAdministrativeExpense",
		"ifrs-full:SellingGeneralAndAdministrativeExpense",
		"SellingGeneralAndAdministrativeExpense", "OperatingExpenses",
		"판매비와관리비", "판관비",
	}},
	{"interest_expense", []string{
		"dart_InterestExpenseFinanceExpense", "ifrs-full_InterestExpense",
		"dart:InterestExpenseFinanceExpense", "ifrs-full:InterestExpense",
		"InterestExpense",
		"이자비용", "금융비용",
	}},
	{"interest_income", []string{
		"dart_InterestIncomeFinanceIncome", "ifrs-full_InterestIncome",
		"dart:InterestIncomeFinanceIncome", "ifrs-full:InterestIncome",
		"InterestIncome",
		"이자수익", "금융수익",
	}},
	{"income_before_tax", []string{
		"ifrs-full_ProfitLossBeforeTax", "dart_ProfitLossBeforeTax",
		"ifrs-full:ProfitLossBeforeTax", "dart:ProfitLossBeforeTax",
		"ProfitLossBeforeTax", "ProfitBeforeTax",
		"법인세비용차감전순이익(손실)", "법인세비용차감전순이익", "세전이익",
	}},
	{"income_tax_expense", []string{
		"ifrs-full_IncomeTaxExpenseContinuingOperations", "ifrs-full_IncomeTaxExpense",
		"dart_IncomeTaxExpense",
		"ifrs-full:IncomeTaxExpenseContinuingOperations", "ifrs-full:IncomeTaxExpense",
		"IncomeTaxExpense", "IncomeTaxExpenseContinuingOperations",
		"법인세비용",
	}},
	{"net_income", []string{
		"ifrs-full_ProfitLoss", "dart_ProfitLoss",
		"ifrs-full:ProfitLoss", "dart:ProfitLoss",
		"ifrs-full_ProfitLossAttributableToOwnersOfParent",
		"ifrs-full:ProfitLossAttributableToOwnersOfParent",
		"ProfitLossAttributableToOwnersOfParent",
		"ifrs-full_ProfitLossFromContinuingOperations",
		"ifrs-full:ProfitLossFromContinuingOperations",
		"ProfitLossFromContinuingOperations",
		"ProfitLoss", "NetIncome", "Profit", "NetProfit",
		"당기순이익(손실)", "당기순이익", "순이익", "당기 순이익",
		"당기순손익", "계속영업이익(손실)",
		"지배기업의 소유주에게 귀속되는 당기순이익(손실)",
		"지배기업의 소유주에게 귀속되는 당기순이익",
		"지배기업소유주지분순이익", "지배기업의소유주에게귀속되는순이익",
		"분기순이익", "분기순이익(손실)", "연결분기순이익",
		"연결당기순이익", "연결당기순이익(손실)",
		"당기순이익(지배)",
	}},
	{"eps", []string{
		"ifrs-full:BasicEarningsLossPerShare", "EarningsPerShare",
		"기본주당이익", "dart:EarningsPerShare", "주당순이익",
	}},
}

// Cash flow statement fields.
var cashFlowMappings = []fieldSynonyms{
	{"operating_cash_flow", []string{
		"ifrs-full_CashFlowsFromUsedInOperatingActivities",
		"ifrs-full:CashFlowsFromUsedInOperatingActivities",
		"CashFlowsFromUsedInOperatingActivities",
		"영업활동현금흐름", "영업활동 현금흐름", "영업활동으로 인한 현금흐름",
	}},
	{"investing_cash_flow", []string{
		"ifrs-full_CashFlowsFromUsedInInvestingActivities",
		"ifrs-full:CashFlowsFromUsedInInvestingActivities",
		"CashFlowsFromUsedInInvestingActivities",
		"투자활동현금흐름", "투자활동 현금흐름", "투자활동으로 인한 현금흐름",
	}},
	{"financing_cash_flow", []string{
		"ifrs-full_CashFlowsFromUsedInFinancingActivities",
		"ifrs-full:CashFlowsFromUsedInFinancingActivities",
		"CashFlowsFromUsedInFinancingActivities",
		"재무활동현금흐름", "재무활동 현금흐름", "재무활동으로 인한 현금흐름",
	}},
	{"net_cash_flow", []string{
		"ifrs-full_IncreaseDecreaseInCashAndCashEquivalents",
		"ifrs-full:IncreaseDecreaseInCashAndCashEquivalents",
		"IncreaseDecreaseInCashAndCashEquivalents",
		"ifrs-full_IncreaseDecreaseInCashAndCashEquivalentsBeforeEffectOfExchangeRateChanges",
		"현금및현금성자산의순증가(감소)", "현금및현금성자산의 순증감",
		"환율변동효과 반영전 현금및현금성자산의 순증가(감소)",
	}},
	{"capex", []string{
		"ifrs-full_PurchaseOfPropertyPlantAndEquipmentClassifiedAsInvestingActivities",
		"ifrs-full:PurchaseOfPropertyPlantAndEquipmentClassifiedAsInvestingActivities",
		"PurchaseOfPropertyPlantAndEquipmentClassifiedAsInvestingActivities",
		"ifrs-full_PurchaseOfPropertyPlantAndEquipment",
		"ifrs-full:PurchaseOfPropertyPlantAndEquipment",
		"dart_PurchaseOfOtherPropertyPlantAndEquipment",
		"유형자산의 취득", "유형자산의취득", "유형자산취득",
	}},
	{"depreciation", []string{
		"dart_DepreciationExpense", "dart:DepreciationExpense",
		"ifrs-full_DepreciationAndAmortisationExpense",
		"ifrs-full:DepreciationAndAmortisationExpense",
		"DepreciationAndAmortisationExpense", "DepreciationExpense",
		"감가상각비", "감가상각",
	}},
	{"amortization", []string{
		"dart_AmortisationExpense", "dart:AmortisationExpense",
		"ifrs-full_AmortisationExpense", "ifrs-full:AmortisationExpense",
		"AmortisationExpense",
		"무형자산상각비", "상각비",
	}},
	{"beginning_cash", []string{
		"dart_CashAndCashEquivalentsAtBeginningOfPeriodCf",
		"dart:CashAndCashEquivalentsAtBeginningOfPeriodCf",
		"기초현금및현금성자산", "기초 현금및현금성자산",
	}},
	{"ending_cash", []string{
		"dart_CashAndCashEquivalentsAtEndOfPeriodCf",
		"dart:CashAndCashEquivalentsAtEndOfPeriodCf",
		"기말현금및현금성자산", "기말 현금및현금성자산",
	}},
}

// mappingsFor returns the ordered synonym table for a section.
func mappingsFor(section models.Section) []fieldSynonyms {
	switch section {
	case models.SectionBalanceSheet:
		return balanceSheetMappings
	case models.SectionIncomeStatement:
		return incomeStatementMappings
	case models.SectionCashFlow:
		return cashFlowMappings
	}
	return nil
}

// criticalFields are the fields the ratio calculator cannot work without;
// failing to map one is logged at warning severity.
var criticalFields = map[string]bool{
	"net_income":        true,
	"revenue":           true,
	"total_assets":      true,
	"total_equity":      true,
	"total_liabilities": true,
	"operating_income":  true,
}
