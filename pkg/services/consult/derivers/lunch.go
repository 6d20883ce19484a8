package derivers

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

const (
	lunchBandLabel     = "12~14시"
	lunchBandHours     = 2.0
	dayHours           = 24.0
	workplaceHeavyRate = 30.0
)

// LunchTurnover reads how much of the day's traffic lands in the 12~14시
// window and whether the store is positioned to serve it quickly.
type LunchTurnover struct{}

func NewLunchTurnover() *LunchTurnover { return &LunchTurnover{} }

func (d *LunchTurnover) Intent() domain.Intent { return domain.IntentLunchTurnover }

func (d *LunchTurnover) Derive(_ context.Context, m domain.Merchant, store Store) (domain.MetricsBundle, error) {
	if store == nil {
		return domain.MetricsBundle{}, errors.New("nil store")
	}

	bundle := domain.MetricsBundle{Intent: d.Intent()}

	times, timeErr := store.FlowSlice(domain.ScopeAreaWide, domain.DimTimeBand)
	if timeErr != nil {
		bundle.Diagnosis = append(bundle.Diagnosis,
			insufficient("lunch_share", "점심시간 유동인구 비중", "시간대별 유동인구 데이터가 없습니다"))
	} else {
		bundle.Diagnosis = append(bundle.Diagnosis,
			metric("lunch_share", "점심시간(12~14시) 유동인구 비중", times.Share(lunchBandLabel), "%"))
		bundle.Diagnosis = append(bundle.Diagnosis,
			metric("lunch_concentration", "점심 집중도 (일평균 대비)", lunchConcentration(times), "배"))
	}

	bundle.Diagnosis = append(bundle.Diagnosis,
		metric("workplace_rate", "직장인 고객 비중", m.WorkplaceRate, "%"))

	if days, err := store.FlowSlice(domain.ScopeAreaWide, domain.DimDayOfWeek); err != nil {
		bundle.Evidence = append(bundle.Evidence,
			insufficient("weekday_share", "주중 유동인구 비중", ""))
	} else {
		bundle.Evidence = append(bundle.Evidence,
			metric("weekday_share", "주중 유동인구 비중", weekdayShare(days), "%"))
	}

	if wf, err := store.WorkforceSlice(domain.ScopeAreaWide); err != nil {
		bundle.Evidence = append(bundle.Evidence,
			insufficient("workforce_top", "상권 직장인구 주 구성", "직장인구 데이터가 없습니다"))
	} else {
		bands := topBands(wf.Entries, 2)
		labels := make([]string, 0, len(bands))
		for _, b := range bands {
			labels = append(labels, string(b))
		}
		bundle.Evidence = append(bundle.Evidence,
			finding("workforce_top", "상권 직장인구 주 구성", strings.Join(labels, ", ")))
	}

	if selTimes, err := store.FlowSlice(domain.ScopeSelected, domain.DimTimeBand); err != nil {
		bundle.Evidence = append(bundle.Evidence,
			insufficient("selected_lunch_share", "선택영역 점심 비중", "선택영역 유동인구 데이터가 없습니다"))
	} else {
		bundle.Evidence = append(bundle.Evidence,
			metric("selected_lunch_share", "선택영역 점심시간 비중", selTimes.Share(lunchBandLabel), "%"))
	}

	bundle.Actions = append(bundle.Actions,
		finding("turnover_action", "회전율 개선",
			"주문과 결제 동선을 줄이고 점심 한정 세트로 주방 부하를 평준화해 테이블 회전을 앞당기세요"))

	if !math.IsNaN(m.WorkplaceRate) && m.WorkplaceRate >= workplaceHeavyRate {
		bundle.Actions = append(bundle.Actions,
			finding("workplace_action", "직장인 공략",
				"직장인 비중이 높은 매장입니다. 사전 주문과 단체 예약을 받아 피크를 분산하세요"))
	}

	return bundle, nil
}

// lunchConcentration compares the lunch window's visitors per hour with the
// all-day hourly average.
func lunchConcentration(times domain.FlowSlice) float64 {
	total := times.Total()
	if total == 0 {
		return math.NaN()
	}
	var lunch float64
	for _, e := range times.Entries {
		if e.Label == lunchBandLabel {
			lunch = e.Count
			break
		}
	}
	return (lunch / lunchBandHours) / (total / dayHours)
}
