package derivers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

var weekdayLabels = []string{"월", "화", "수", "목", "금"}

// CommercialArea reads the foot traffic around the store: peak days and
// hours, how the operator-selected micro area differs from the whole survey
// area, and what kind of commercial area the store sits in.
type CommercialArea struct{}

func NewCommercialArea() *CommercialArea { return &CommercialArea{} }

func (d *CommercialArea) Intent() domain.Intent { return domain.IntentCommercialArea }

func (d *CommercialArea) Derive(_ context.Context, m domain.Merchant, store Store) (domain.MetricsBundle, error) {
	if store == nil {
		return domain.MetricsBundle{}, errors.New("nil store")
	}

	bundle := domain.MetricsBundle{Intent: d.Intent()}

	archetype, ok := areaArchetype(m)
	if !ok {
		bundle.Diagnosis = append(bundle.Diagnosis,
			insufficient("area_archetype", "상권 유형", "고객 구성 비율 데이터가 없습니다"))
	} else {
		bundle.Diagnosis = append(bundle.Diagnosis, finding("area_archetype", "상권 유형", archetype))
		bundle.Actions = append(bundle.Actions, finding("archetype_action", "상권 공략", archetypeAction(archetype)))
	}

	days, dayErr := store.FlowSlice(domain.ScopeAreaWide, domain.DimDayOfWeek)
	if dayErr != nil {
		bundle.Diagnosis = append(bundle.Diagnosis,
			insufficient("peak_days", "유동인구 피크 요일", ""))
	} else {
		bundle.Diagnosis = append(bundle.Diagnosis,
			finding("peak_days", "유동인구 피크 요일", joinLabels(days.Top(2))))
		bundle.Evidence = append(bundle.Evidence,
			metric("weekday_share", "주중 유동인구 비중", weekdayShare(days), "%"))
	}

	times, timeErr := store.FlowSlice(domain.ScopeAreaWide, domain.DimTimeBand)
	if timeErr != nil {
		bundle.Diagnosis = append(bundle.Diagnosis,
			insufficient("peak_hours", "유동인구 피크 시간대", ""))
	} else {
		bundle.Diagnosis = append(bundle.Diagnosis,
			finding("peak_hours", "유동인구 피크 시간대", joinLabels(times.Top(3))))
	}

	if selDays, err := store.FlowSlice(domain.ScopeSelected, domain.DimDayOfWeek); err != nil || dayErr != nil {
		bundle.Evidence = append(bundle.Evidence,
			insufficient("selected_day_gap", "선택영역 요일 편차", "선택영역 유동인구 데이터가 없습니다"))
	} else {
		hi, lo := extremeDeviation(selDays, days)
		bundle.Evidence = append(bundle.Evidence,
			finding("selected_day_gap", "선택영역 요일 편차",
				fmt.Sprintf("%s요일은 상권 평균 대비 %+.1f%%p, %s요일은 %+.1f%%p입니다",
					hi.label, hi.delta, lo.label, lo.delta)))
	}

	if selTimes, err := store.FlowSlice(domain.ScopeSelected, domain.DimTimeBand); err != nil || timeErr != nil {
		bundle.Evidence = append(bundle.Evidence,
			insufficient("selected_time_gap", "선택영역 시간대 편차", "선택영역 유동인구 데이터가 없습니다"))
	} else {
		hi, lo := extremeDeviation(selTimes, times)
		bundle.Evidence = append(bundle.Evidence,
			finding("selected_time_gap", "선택영역 시간대 편차",
				fmt.Sprintf("%s는 상권 평균 대비 %+.1f%%p, %s는 %+.1f%%p입니다",
					hi.label, hi.delta, lo.label, lo.delta)))
	}

	if dayErr == nil && timeErr == nil {
		topDay := joinLabels(days.Top(1))
		topHour := joinLabels(times.Top(1))
		bundle.Actions = append(bundle.Actions,
			finding("peak_action", "피크 집중 운영",
				fmt.Sprintf("유동인구가 가장 몰리는 %s요일 %s에 인력과 재고를 집중하세요", topDay, topHour)))
	}

	return bundle, nil
}

// areaArchetype labels the commercial area. A store with an attached subway
// station is 역세권; otherwise the largest known customer mix ratio decides.
func areaArchetype(m domain.Merchant) (string, bool) {
	if m.Station != "" {
		return "역세권", true
	}

	candidates := []struct {
		name string
		rate float64
	}{
		{"직장인 상권", m.WorkplaceRate},
		{"주거 상권", m.ResidentRate},
		{"유동인구 상권", m.FloatingRate},
	}

	var best string
	bestRate := math.NaN()
	for _, c := range candidates {
		if math.IsNaN(c.rate) {
			continue
		}
		if math.IsNaN(bestRate) || c.rate > bestRate {
			best, bestRate = c.name, c.rate
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

func archetypeAction(archetype string) string {
	switch archetype {
	case "역세권":
		return "출퇴근 동선에 반복 노출되는 외부 사인과 출근/퇴근 한정 혜택으로 재방문을 유도하세요"
	case "직장인 상권":
		return "평일 점심과 퇴근 시간대에 빠르게 소화할 수 있는 구성을 앞세우세요"
	case "주거 상권":
		return "저녁과 주말의 주민 수요에 맞춘 메뉴와 적립 혜택을 운영하세요"
	default:
		return "눈에 띄는 간판과 시그니처 메뉴로 지나가는 발걸음을 매장 안으로 끌어들이세요"
	}
}

func joinLabels(entries []domain.FlowEntry) string {
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.Label)
	}
	return strings.Join(labels, ", ")
}

func weekdayShare(days domain.FlowSlice) float64 {
	total := days.Total()
	if total == 0 {
		return math.NaN()
	}
	var weekday float64
	for _, label := range weekdayLabels {
		weekday += days.Share(label)
	}
	return weekday
}

type deviation struct {
	label string
	delta float64
}

// extremeDeviation finds the labels where the selected micro area differs
// most from the whole area, in share percentage points, in both directions.
func extremeDeviation(sel, whole domain.FlowSlice) (hi, lo deviation) {
	first := true
	for _, e := range sel.Entries {
		d := deviation{label: e.Label, delta: sel.Share(e.Label) - whole.Share(e.Label)}
		if first {
			hi, lo = d, d
			first = false
			continue
		}
		if d.delta > hi.delta {
			hi = d
		}
		if d.delta < lo.delta {
			lo = d
		}
	}
	return hi, lo
}
