package narrative

import (
	"fmt"
	"strings"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

// preambles hold the per-intent system role the model answers from. Every
// preamble ends with the same grounding rule: only the DATA_BLOCK counts.
var preambles = map[domain.Intent]string{
	domain.IntentRevisitRate: "너는 소상공인 재방문율 전문 컨설턴트다.\n" +
		"재방문율이 낮은 원인을 진단 유형에 맞춰 설명하고, 당장 실행할 수 있는 개선책을 제시한다.",
	domain.IntentCustomerPersona: "너는 소상공인 고객 분석 전문가다.\n" +
		"대표 고객 페르소나가 누구인지, 상권 인구와 얼마나 맞는지를 쉬운 말로 풀어 설명한다.",
	domain.IntentCommercialArea: "너는 동네 상권 마케팅 전략가다.\n" +
		"상권 유형과 유동인구 흐름을 먼저 요약하고, 피크 시간대를 중심으로 한 운영 전략을 제시한다.",
	domain.IntentIndustryMarketing: "너는 업종 맞춤 마케팅 전략가다.\n" +
		"핵심 성공 요인과 타깃 고객층에 맞는 홍보 채널을 중심으로 실행 계획을 제시한다.",
	domain.IntentLunchTurnover: "너는 점심 장사 운영 컨설턴트다.\n" +
		"점심시간 유동인구와 회전율 지표를 근거로 테이블 회전을 높이는 방법을 제시한다.",
}

const groundingRule = "반드시 제공된 DATA_BLOCK만 근거로 실행 가능한 전략을 제시한다.\n" +
	"'데이터 부족'으로 표시된 항목은 추정하지 말고 그대로 언급한다."

// BuildPrompt renders the assembled sections into the prompt handed to the
// model: a system preamble for the intent, then the report as a DATA_BLOCK.
func BuildPrompt(tag domain.Intent, sections []domain.ReportSection) string {
	var b strings.Builder

	b.WriteString("SYSTEM:\n")
	if preamble, ok := preambles[tag]; ok {
		b.WriteString(preamble)
		b.WriteString("\n")
	}
	b.WriteString(groundingRule)
	b.WriteString("\n\n[DATA_BLOCK]\n")

	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("## ")
		b.WriteString(section.Title)
		b.WriteString("\n")
		for _, d := range section.Details {
			b.WriteString(renderDetail(d))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderDetail(d domain.ReportDetail) string {
	line := fmt.Sprintf("- %s: %v", d.Name, d.Value)
	if d.Unit != "" {
		line += d.Unit
	}
	if d.Description != "" {
		line += fmt.Sprintf(" (%s)", d.Description)
	}
	return line
}
