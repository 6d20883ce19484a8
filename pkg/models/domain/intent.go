package domain

// Intent identifies the analysis flow a consultation question is routed to.
// Every question resolves to exactly one intent.
type Intent string

const (
	IntentRevisitRate       Intent = "revisit_rate_analysis"
	IntentCustomerPersona   Intent = "customer_persona_analysis"
	IntentCommercialArea    Intent = "commercial_area_strategy"
	IntentIndustryMarketing Intent = "industry_marketing"
	IntentLunchTurnover     Intent = "lunch_turnover_strategy"
)

// Intents returns every known intent.
func Intents() []Intent {
	return []Intent{
		IntentRevisitRate,
		IntentCustomerPersona,
		IntentCommercialArea,
		IntentIndustryMarketing,
		IntentLunchTurnover,
	}
}

func (i Intent) Valid() bool {
	switch i {
	case IntentRevisitRate, IntentCustomerPersona, IntentCommercialArea,
		IntentIndustryMarketing, IntentLunchTurnover:
		return true
	}
	return false
}

// Label returns the Korean report title for the intent.
func (i Intent) Label() string {
	switch i {
	case IntentRevisitRate:
		return "재방문율 진단"
	case IntentCustomerPersona:
		return "고객 페르소나 분석"
	case IntentCommercialArea:
		return "상권 유동인구 전략"
	case IntentIndustryMarketing:
		return "업종 맞춤 마케팅"
	case IntentLunchTurnover:
		return "점심시간 회전율 전략"
	}
	return string(i)
}
