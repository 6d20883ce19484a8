package derivers

import (
	"context"
	"errors"
	"fmt"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

// IndustryMarketing matches the store against the curated strategy catalog
// and picks the marketing channel its dominant customer band responds to.
type IndustryMarketing struct{}

func NewIndustryMarketing() *IndustryMarketing { return &IndustryMarketing{} }

func (d *IndustryMarketing) Intent() domain.Intent { return domain.IntentIndustryMarketing }

func (d *IndustryMarketing) Derive(_ context.Context, m domain.Merchant, store Store) (domain.MetricsBundle, error) {
	if store == nil {
		return domain.MetricsBundle{}, errors.New("nil store")
	}

	bundle := domain.MetricsBundle{Intent: d.Intent()}

	match := store.LookupTemplate(m.Category, m.AreaLabel())
	if match.Tier == domain.MatchNone {
		bundle.Diagnosis = append(bundle.Diagnosis,
			finding("key_factor", "핵심 성공 요인", "데이터 없음"),
			finding("strategy", "핵심 경영 전략", "일반적인 개선 전략 필요"))
		bundle.Actions = append(bundle.Actions,
			finding("strategy_action", "전략 실행",
				"업종 공통의 기본기인 리뷰 관리와 시즌 프로모션부터 차례로 갖추세요"))
	} else {
		bundle.Diagnosis = append(bundle.Diagnosis,
			finding("key_factor", "핵심 성공 요인", match.Template.KeyFactor),
			finding("strategy", "핵심 경영 전략", match.Template.Strategy))
		bundle.Evidence = append(bundle.Evidence,
			finding("template_origin", "전략 출처", tierLabel(match.Tier)),
			metric("importance", "전략 중요도", match.Template.Importance, ""))
		bundle.Actions = append(bundle.Actions,
			finding("strategy_action", "전략 실행",
				fmt.Sprintf("핵심 성공 요인인 '%s'을(를) 끌어올리는 일부터 우선순위에 두세요", match.Template.KeyFactor)))
	}

	ranked := rankedShares(m.PersonaShares)
	if len(ranked) == 0 {
		bundle.Diagnosis = append(bundle.Diagnosis,
			insufficient("target_persona", "타깃 페르소나", "고객 구성 데이터가 없습니다"))
		return bundle, nil
	}

	band := ranked[0].Band
	p := personaCatalog[band]
	bundle.Diagnosis = append(bundle.Diagnosis,
		finding("target_persona", "타깃 페르소나", fmt.Sprintf("%s (%s)", p.name, band)))
	bundle.Evidence = append(bundle.Evidence,
		metric("target_share", "타깃 고객층 비중", ranked[0].Share, "%"))
	bundle.Actions = append(bundle.Actions,
		finding("channel_action", "추천 채널",
			fmt.Sprintf("%s에 홍보를 집중하세요", channelByAgeRank[band.AgeRank()])))

	return bundle, nil
}

func tierLabel(tier domain.MatchTier) string {
	switch tier {
	case domain.MatchExact:
		return "동일 상권·동일 업종 전략"
	case domain.MatchCategory:
		return "동일 업종 전략 (상권 일반화)"
	case domain.MatchArea:
		return "동일 상권 전략 (업종 일반화)"
	}
	return "대체 전략 없음"
}
