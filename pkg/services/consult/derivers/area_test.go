package derivers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

func daySlice(scope domain.FlowScope, counts map[string]float64) domain.FlowSlice {
	entries := make([]domain.FlowEntry, 0, 7)
	for _, label := range []string{"월", "화", "수", "목", "금", "토", "일"} {
		entries = append(entries, domain.FlowEntry{Label: label, Count: counts[label]})
	}
	return domain.FlowSlice{Scope: scope, Dimension: domain.DimDayOfWeek, Entries: entries}
}

func timeSlice(scope domain.FlowScope, counts map[string]float64) domain.FlowSlice {
	entries := make([]domain.FlowEntry, 0, 6)
	for _, label := range []string{"05~09시", "09~12시", "12~14시", "14~18시", "18~23시", "23~05시"} {
		entries = append(entries, domain.FlowEntry{Label: label, Count: counts[label]})
	}
	return domain.FlowSlice{Scope: scope, Dimension: domain.DimTimeBand, Entries: entries}
}

func areaWideFlows() map[sliceKey]domain.FlowSlice {
	return map[sliceKey]domain.FlowSlice{
		{scope: domain.ScopeAreaWide, dim: domain.DimDayOfWeek}: daySlice(domain.ScopeAreaWide, map[string]float64{
			"월": 100, "화": 100, "수": 100, "목": 100, "금": 300, "토": 250, "일": 50,
		}),
		{scope: domain.ScopeAreaWide, dim: domain.DimTimeBand}: timeSlice(domain.ScopeAreaWide, map[string]float64{
			"05~09시": 100, "09~12시": 100, "12~14시": 300, "14~18시": 200, "18~23시": 250, "23~05시": 50,
		}),
	}
}

func TestCommercialArea_StationMakesItStationArea(t *testing.T) {
	m := blankRates("ABC12345", "카페", "성수동")
	m.Station = "성수역"

	bundle, err := NewCommercialArea().Derive(context.Background(), m, &stubStore{})
	require.NoError(t, err)

	archetype, ok := metricByKey(bundle.Diagnosis, "area_archetype")
	require.True(t, ok)
	assert.Equal(t, "역세권", archetype.Text)

	action, ok := metricByKey(bundle.Actions, "archetype_action")
	require.True(t, ok)
	assert.Contains(t, action.Text, "출퇴근")
}

func TestCommercialArea_ArchetypeFollowsDominantMix(t *testing.T) {
	m := blankRates("ABC12345", "카페", "성수동")
	m.WorkplaceRate = 40
	m.ResidentRate = 20
	m.FloatingRate = 10

	bundle, err := NewCommercialArea().Derive(context.Background(), m, &stubStore{})
	require.NoError(t, err)

	archetype, ok := metricByKey(bundle.Diagnosis, "area_archetype")
	require.True(t, ok)
	assert.Equal(t, "직장인 상권", archetype.Text)
}

func TestCommercialArea_ArchetypeWithoutMixDegrades(t *testing.T) {
	m := blankRates("ABC12345", "카페", "성수동")

	bundle, err := NewCommercialArea().Derive(context.Background(), m, &stubStore{})
	require.NoError(t, err)

	archetype, ok := metricByKey(bundle.Diagnosis, "area_archetype")
	require.True(t, ok)
	assert.True(t, archetype.Insufficient)
}

func TestCommercialArea_PeaksAndWeekdayShare(t *testing.T) {
	m := blankRates("ABC12345", "카페", "성수동")
	store := &stubStore{flows: areaWideFlows()}

	bundle, err := NewCommercialArea().Derive(context.Background(), m, store)
	require.NoError(t, err)

	days, ok := metricByKey(bundle.Diagnosis, "peak_days")
	require.True(t, ok)
	assert.Equal(t, "금, 토", days.Text)

	hours, ok := metricByKey(bundle.Diagnosis, "peak_hours")
	require.True(t, ok)
	assert.Equal(t, "12~14시, 18~23시, 14~18시", hours.Text)

	weekday, ok := metricByKey(bundle.Evidence, "weekday_share")
	require.True(t, ok)
	assert.InDelta(t, 70, weekday.Value, 0.001)

	action, ok := metricByKey(bundle.Actions, "peak_action")
	require.True(t, ok)
	assert.Contains(t, action.Text, "금요일 12~14시")
}

func TestCommercialArea_SelectedAreaDeviation(t *testing.T) {
	m := blankRates("ABC12345", "카페", "성수동")
	flows := areaWideFlows()
	flows[sliceKey{scope: domain.ScopeSelected, dim: domain.DimDayOfWeek}] = daySlice(domain.ScopeSelected, map[string]float64{
		"월": 100, "화": 100, "수": 100, "목": 100, "금": 500, "토": 100, "일": 0,
	})

	bundle, err := NewCommercialArea().Derive(context.Background(), m, &stubStore{flows: flows})
	require.NoError(t, err)

	gap, ok := metricByKey(bundle.Evidence, "selected_day_gap")
	require.True(t, ok)
	assert.Contains(t, gap.Text, "금요일은 상권 평균 대비 +20.0%p")
	assert.Contains(t, gap.Text, "토요일은 -15.0%p")
}

func TestCommercialArea_MissingSelectedSliceDegrades(t *testing.T) {
	m := blankRates("ABC12345", "카페", "성수동")
	store := &stubStore{flows: areaWideFlows()}

	bundle, err := NewCommercialArea().Derive(context.Background(), m, store)
	require.NoError(t, err)

	dayGap, ok := metricByKey(bundle.Evidence, "selected_day_gap")
	require.True(t, ok)
	assert.True(t, dayGap.Insufficient)
	assert.Contains(t, dayGap.Note, "선택영역")

	timeGap, ok := metricByKey(bundle.Evidence, "selected_time_gap")
	require.True(t, ok)
	assert.True(t, timeGap.Insufficient)
}

func TestCommercialArea_NoFlowsAtAllStillAssemblesBundle(t *testing.T) {
	m := blankRates("ABC12345", "카페", "성수동")
	m.WorkplaceRate = 40

	bundle, err := NewCommercialArea().Derive(context.Background(), m, &stubStore{})
	require.NoError(t, err)
	assert.False(t, bundle.Empty())

	peakDays, ok := metricByKey(bundle.Diagnosis, "peak_days")
	require.True(t, ok)
	assert.True(t, peakDays.Insufficient)

	_, hasPeakAction := metricByKey(bundle.Actions, "peak_action")
	assert.False(t, hasPeakAction, "peak action needs both slices")
}
