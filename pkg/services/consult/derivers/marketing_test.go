package derivers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

func TestIndustryMarketing_ExactTemplate(t *testing.T) {
	m := blankRates("ABC12345", "카페", "성수동")
	store := &stubStore{
		match: domain.TemplateMatch{
			Template: domain.StrategyTemplate{
				CommercialArea: "성수동",
				Category:       "카페",
				KeyFactor:      "방문 빈도",
				Strategy:       "단골 적립과 시즌 한정 메뉴로 방문 주기를 당기세요",
				Importance:     4.5,
			},
			Tier: domain.MatchExact,
		},
	}

	bundle, err := NewIndustryMarketing().Derive(context.Background(), m, store)
	require.NoError(t, err)

	keyFactor, ok := metricByKey(bundle.Diagnosis, "key_factor")
	require.True(t, ok)
	assert.Equal(t, "방문 빈도", keyFactor.Text)

	strategy, ok := metricByKey(bundle.Diagnosis, "strategy")
	require.True(t, ok)
	assert.Contains(t, strategy.Text, "단골 적립")

	origin, ok := metricByKey(bundle.Evidence, "template_origin")
	require.True(t, ok)
	assert.Equal(t, "동일 상권·동일 업종 전략", origin.Text)

	importance, ok := metricByKey(bundle.Evidence, "importance")
	require.True(t, ok)
	assert.InDelta(t, 4.5, importance.Value, 0.001)

	action, ok := metricByKey(bundle.Actions, "strategy_action")
	require.True(t, ok)
	assert.Contains(t, action.Text, "방문 빈도")
}

func TestIndustryMarketing_TierLabels(t *testing.T) {
	tiers := map[domain.MatchTier]string{
		domain.MatchCategory: "동일 업종 전략 (상권 일반화)",
		domain.MatchArea:     "동일 상권 전략 (업종 일반화)",
	}

	for tier, label := range tiers {
		m := blankRates("ABC12345", "카페", "성수동")
		store := &stubStore{
			match: domain.TemplateMatch{
				Template: domain.StrategyTemplate{KeyFactor: "배달 비중", Strategy: "배달 접점을 여세요"},
				Tier:     tier,
			},
		}

		bundle, err := NewIndustryMarketing().Derive(context.Background(), m, store)
		require.NoError(t, err)

		origin, ok := metricByKey(bundle.Evidence, "template_origin")
		require.True(t, ok, tier)
		assert.Equal(t, label, origin.Text, tier)
	}
}

func TestIndustryMarketing_NoTemplateFallsBack(t *testing.T) {
	m := blankRates("ABC12345", "수제버거", "외곽동")
	store := &stubStore{match: domain.TemplateMatch{Tier: domain.MatchNone}}

	bundle, err := NewIndustryMarketing().Derive(context.Background(), m, store)
	require.NoError(t, err)

	keyFactor, ok := metricByKey(bundle.Diagnosis, "key_factor")
	require.True(t, ok)
	assert.Equal(t, "데이터 없음", keyFactor.Text)

	strategy, ok := metricByKey(bundle.Diagnosis, "strategy")
	require.True(t, ok)
	assert.Equal(t, "일반적인 개선 전략 필요", strategy.Text)

	_, hasOrigin := metricByKey(bundle.Evidence, "template_origin")
	assert.False(t, hasOrigin)

	action, ok := metricByKey(bundle.Actions, "strategy_action")
	require.True(t, ok)
	assert.Contains(t, action.Text, "기본기")
}

func TestIndustryMarketing_ChannelFollowsDominantBand(t *testing.T) {
	cases := []struct {
		band    domain.SegmentBand
		channel string
	}{
		{domain.BandFemale1020, "숏폼"},
		{domain.BandMale30, "네이버 플레이스"},
		{domain.BandFemale40, "블로그 체험단"},
		{domain.BandMale50, "동네 커뮤니티"},
		{domain.BandFemale60, "대면 홍보"},
	}

	for _, tc := range cases {
		m := blankRates("ABC12345", "카페", "성수동")
		m.PersonaShares = []domain.SegmentShare{
			{Band: tc.band, Share: 55, Known: true},
			{Band: domain.BandMale40, Share: 10, Known: true},
		}
		store := &stubStore{match: domain.TemplateMatch{Tier: domain.MatchNone}}

		bundle, err := NewIndustryMarketing().Derive(context.Background(), m, store)
		require.NoError(t, err)

		target, ok := metricByKey(bundle.Diagnosis, "target_persona")
		require.True(t, ok, tc.band)
		assert.Contains(t, target.Text, string(tc.band))

		channel, ok := metricByKey(bundle.Actions, "channel_action")
		require.True(t, ok, tc.band)
		assert.Contains(t, channel.Text, tc.channel, tc.band)
	}
}

func TestIndustryMarketing_NoSharesSkipsChannel(t *testing.T) {
	m := blankRates("ABC12345", "카페", "성수동")
	store := &stubStore{match: domain.TemplateMatch{Tier: domain.MatchNone}}

	bundle, err := NewIndustryMarketing().Derive(context.Background(), m, store)
	require.NoError(t, err)

	target, ok := metricByKey(bundle.Diagnosis, "target_persona")
	require.True(t, ok)
	assert.True(t, target.Insufficient)

	_, hasChannel := metricByKey(bundle.Actions, "channel_action")
	assert.False(t, hasChannel)
}
