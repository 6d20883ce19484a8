package derivers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

// Segment fit scoring: base points by how many of the merchant's top two
// bands appear in the area's top two, plus proximity bonuses between the two
// dominant bands.
const (
	fitBothMatch = 85.0
	fitOneMatch  = 45.0
	fitNoMatch   = 5.0
	fitAgeBonus  = 10.0
	fitNearBonus = 5.0
)

// CustomerPersona profiles who actually visits the store and how well that
// mix lines up with the people moving through the area.
type CustomerPersona struct{}

func NewCustomerPersona() *CustomerPersona { return &CustomerPersona{} }

func (d *CustomerPersona) Intent() domain.Intent { return domain.IntentCustomerPersona }

func (d *CustomerPersona) Derive(_ context.Context, m domain.Merchant, store Store) (domain.MetricsBundle, error) {
	if store == nil {
		return domain.MetricsBundle{}, errors.New("nil store")
	}

	bundle := domain.MetricsBundle{Intent: d.Intent()}

	ranked := rankedShares(m.PersonaShares)
	if len(ranked) == 0 {
		bundle.Diagnosis = append(bundle.Diagnosis,
			insufficient("dominant_persona", "대표 고객 페르소나", "고객 구성 데이터가 없습니다"))
	} else {
		dominant := ranked[0]
		p := personaCatalog[dominant.Band]
		bundle.Diagnosis = append(bundle.Diagnosis,
			finding("dominant_persona", "대표 고객 페르소나", fmt.Sprintf("%s (%s)", p.name, dominant.Band)),
			metric("dominant_share", "대표 고객층 비중", dominant.Share, "%"))
		bundle.Evidence = append(bundle.Evidence,
			finding("persona_traits", "페르소나 특징", p.features))

		for i, s := range ranked[:min(2, len(ranked))] {
			bundle.Evidence = append(bundle.Evidence,
				metric(fmt.Sprintf("merchant_band_%d", i+1),
					fmt.Sprintf("매장 주 고객층 %d위 · %s", i+1, s.Band), s.Share, "%"))
		}
	}

	area, ok := combinedAreaProfile(store)
	if !ok {
		bundle.Diagnosis = append(bundle.Diagnosis,
			insufficient("segment_fit", "상권 적합도", "상권 인구 데이터가 없습니다"))
	} else {
		areaTop := topBands(area, 2)
		labels := make([]string, 0, len(areaTop))
		for _, b := range areaTop {
			labels = append(labels, string(b))
		}
		bundle.Evidence = append(bundle.Evidence,
			finding("area_top_bands", "상권 주 인구층", strings.Join(labels, ", ")))

		if len(ranked) == 0 {
			bundle.Diagnosis = append(bundle.Diagnosis,
				insufficient("segment_fit", "상권 적합도", "고객 구성 데이터가 없습니다"))
		} else {
			merchantTop := make([]domain.SegmentBand, 0, 2)
			for _, s := range ranked[:min(2, len(ranked))] {
				merchantTop = append(merchantTop, s.Band)
			}
			fit := segmentFit(merchantTop, areaTop)
			bundle.Diagnosis = append(bundle.Diagnosis, metric("segment_fit", "상권 적합도", fit, "점"))
			bundle.Actions = append(bundle.Actions, finding("fit_action", "타깃 전략", fitAction(fit)))
		}
	}

	health := emphasize(scorePercentile(store.Merchants(), compositeScore(m)))
	bundle.Diagnosis = append(bundle.Diagnosis, metric("health_score", "종합 경쟁력 점수", health, "점"))

	if len(ranked) > 0 {
		p := personaCatalog[ranked[0].Band]
		bundle.Actions = append(bundle.Actions,
			finding("persona_action", "페르소나 공략",
				fmt.Sprintf("대표 고객인 %s의 특성에 맞춰 메뉴 구성과 매장 경험을 설계하세요", p.name)))
	}

	return bundle, nil
}

// segmentFit scores how well the merchant's top customer bands line up with
// the area's. The result is clamped to 0..100.
func segmentFit(merchantTop, areaTop []domain.SegmentBand) float64 {
	if len(merchantTop) == 0 || len(areaTop) == 0 {
		return math.NaN()
	}

	var overlap int
	for _, mb := range merchantTop {
		for _, ab := range areaTop {
			if mb == ab {
				overlap++
			}
		}
	}

	score := fitNoMatch
	switch {
	case overlap >= 2:
		score = fitBothMatch
	case overlap == 1:
		score = fitOneMatch
	}

	md, ad := merchantTop[0], areaTop[0]
	ageGap := md.AgeRank() - ad.AgeRank()
	if ageGap < 0 {
		ageGap = -ageGap
	}
	if ageGap == 0 {
		score += fitAgeBonus
	} else if md.Gender() == ad.Gender() && ageGap == 1 {
		score += fitNearBonus
	}

	return math.Min(100, math.Max(0, score))
}

func fitAction(fit float64) string {
	switch {
	case fit >= fitBothMatch:
		return "상권과 고객층이 잘 맞습니다. 현재 타깃을 유지하면서 객단가와 방문 빈도를 키우세요"
	case fit >= fitOneMatch:
		return "상권 주 고객층과 일부 겹칩니다. 겹치는 고객층을 중심으로 방문 빈도를 끌어올리세요"
	default:
		return "상권 주 고객층과 어긋나 있습니다. 상권의 주 연령대를 겨냥한 보조 상품을 더해 보세요"
	}
}

// combinedAreaProfile merges the gender and age foot traffic with the
// workplace population into one per-band distribution. The operator-selected
// micro area slice wins over the whole survey area when it exists.
func combinedAreaProfile(store Store) ([]domain.FlowEntry, bool) {
	flow, err := store.FlowSlice(domain.ScopeSelected, domain.DimGenderAge)
	if err != nil {
		flow, err = store.FlowSlice(domain.ScopeAreaWide, domain.DimGenderAge)
	}
	if err != nil {
		return nil, false
	}

	counts := make(map[string]float64, len(flow.Entries))
	order := make([]string, 0, len(flow.Entries))
	for _, e := range flow.Entries {
		counts[e.Label] += e.Count
		order = append(order, e.Label)
	}

	if wf, wfErr := store.WorkforceSlice(domain.ScopeAreaWide); wfErr == nil {
		for _, e := range wf.Entries {
			if _, seen := counts[e.Label]; !seen {
				order = append(order, e.Label)
			}
			counts[e.Label] += e.Count
		}
	}

	entries := make([]domain.FlowEntry, 0, len(order))
	for _, label := range order {
		entries = append(entries, domain.FlowEntry{Label: label, Count: counts[label]})
	}
	return entries, true
}

func compositeScore(m domain.Merchant) float64 {
	return nanMean([]float64{m.SalesScore, m.CustomerScore, m.TicketScore, m.TenureScore})
}

// scorePercentile ranks the composite score against every merchant on file,
// counting ties at half weight.
func scorePercentile(all []domain.Merchant, v float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}

	var below, equal, n float64
	for _, m := range all {
		c := compositeScore(m)
		if math.IsNaN(c) {
			continue
		}
		n++
		switch {
		case c < v:
			below++
		case c == v:
			equal++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return (below + equal/2) / n * 100
}

// emphasize stretches the distance from the middle of the percentile scale so
// small differences read more clearly, keeping the sign.
func emphasize(p float64) float64 {
	if math.IsNaN(p) {
		return math.NaN()
	}
	d := (p - 50) / 50
	return 50 + 50*math.Copysign(math.Pow(math.Abs(d), 0.7), d)
}
