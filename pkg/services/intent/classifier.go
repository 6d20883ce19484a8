package intent

import (
	"strings"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

// Rule binds an intent to its trigger phrases.
type Rule struct {
	Intent   domain.Intent
	Triggers []string
}

// rules is the routing table, evaluated top to bottom. The first rule with any
// trigger contained in the question wins, so more specific intents sit above
// the ones whose triggers they overlap: 재방문 유도 must route to the
// commercial area flow before 재방문 can claim it for revisit analysis.
var rules = []Rule{
	{domain.IntentLunchTurnover, []string{"점심시간", "점심", "회전율", "직장인"}},
	{domain.IntentCommercialArea, []string{"유동인구", "지하철", "출퇴근", "재방문 유도", "역세권", "상권 분석"}},
	{domain.IntentRevisitRate, []string{"재방문율", "재방문", "단골"}},
	{domain.IntentIndustryMarketing, []string{"마케팅", "홍보", "광고", "채널"}},
	{domain.IntentCustomerPersona, []string{"고객 특성", "고객 분석", "주요 고객", "고객층", "페르소나"}},
}

// defaultIntent answers questions that match no trigger at all. The persona
// analysis is the broadest diagnosis, so it serves as the fallback.
const defaultIntent = domain.IntentCustomerPersona

// Classifier routes free-text questions to analysis intents. It has no state
// and the same question always yields the same intent.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify resolves the question to exactly one intent.
func (c *Classifier) Classify(question string) domain.Intent {
	for _, r := range rules {
		for _, trigger := range r.Triggers {
			if strings.Contains(question, trigger) {
				return r.Intent
			}
		}
	}
	return defaultIntent
}

// Default returns the intent used when no trigger matches.
func Default() domain.Intent {
	return defaultIntent
}

// Rules returns a copy of the routing table in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{
			Intent:   r.Intent,
			Triggers: append([]string(nil), r.Triggers...),
		}
	}
	return out
}
