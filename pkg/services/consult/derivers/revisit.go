package derivers

import (
	"context"
	"errors"
	"math"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

// Revisit diagnosis thresholds, in percent or band score points.
const (
	healthyRevisitRate   = 30.0
	minPeerGroup         = 3
	newStoreTenureScore  = 2.0
	newStoreNewRate      = 60.0
	priceGapThreshold    = -1.0
	residentGapThreshold = -15.0
	deliveryGapThreshold = -20.0
)

// RevisitRate diagnoses why customers are not coming back, by comparing the
// merchant against peers of the same category in the same commercial area.
type RevisitRate struct{}

func NewRevisitRate() *RevisitRate { return &RevisitRate{} }

func (d *RevisitRate) Intent() domain.Intent { return domain.IntentRevisitRate }

func (d *RevisitRate) Derive(_ context.Context, m domain.Merchant, store Store) (domain.MetricsBundle, error) {
	if store == nil {
		return domain.MetricsBundle{}, errors.New("nil store")
	}

	bundle := domain.MetricsBundle{Intent: d.Intent()}
	bundle.Diagnosis = append(bundle.Diagnosis, metric("revisit_rate", "재방문 고객 비중", m.RevisitRate, "%"))
	bundle.Evidence = append(bundle.Evidence, metric("new_rate", "신규 고객 비중", m.NewRate, "%"))

	if !math.IsNaN(m.RevisitRate) && m.RevisitRate >= healthyRevisitRate {
		bundle.Diagnosis = append(bundle.Diagnosis,
			finding("revisit_health", "진단 유형", "재방문율이 이미 건강한 수준입니다"))
		bundle.Actions = append(bundle.Actions,
			finding("keep_course", "유지 전략",
				"현재의 단골 관리 방식을 유지하면서 재방문 고객의 객단가를 높이는 쪽으로 여력을 쓰세요"))
		return bundle, nil
	}

	var peers []domain.Merchant
	for _, p := range store.Peers(m.Category, m.CommercialArea) {
		if p.ID != m.ID {
			peers = append(peers, p)
		}
	}
	bundle.Evidence = append(bundle.Evidence, metric("peer_count", "비교 매장 수", float64(len(peers)), "곳"))

	peerRates := known(pluck(peers, func(p domain.Merchant) float64 { return p.RevisitRate }))
	if len(peerRates) < minPeerGroup {
		bundle.Diagnosis = append(bundle.Diagnosis,
			insufficient("peer_median", "동종·동상권 재방문율 중앙값", "비교 가능한 매장이 3곳 미만이라 판단을 보류합니다"))
		bundle.Actions = append(bundle.Actions,
			finding("revisit_action", "기본 전략",
				"비교군이 쌓일 때까지 재방문 쿠폰과 리뷰 관리 같은 기본기를 먼저 갖추세요"))
		return bundle, nil
	}

	med := median(peerRates)
	bundle.Diagnosis = append(bundle.Diagnosis, metric("peer_median", "동종·동상권 재방문율 중앙값", med, "%"))

	if math.IsNaN(m.RevisitRate) {
		bundle.Diagnosis = append(bundle.Diagnosis, insufficient("peer_position", "상대 위치", ""))
	} else {
		position := "동종·동상권 중앙값 이상입니다"
		if m.RevisitRate < med {
			position = "동종·동상권 중앙값보다 낮습니다"
		}
		bundle.Diagnosis = append(bundle.Diagnosis, finding("peer_position", "상대 위치", position))
	}

	// The gap analysis compares against the peers doing well: those at or
	// above the median revisit rate.
	var successful []domain.Merchant
	for _, p := range peers {
		if !math.IsNaN(p.RevisitRate) && p.RevisitRate >= med {
			successful = append(successful, p)
		}
	}

	priceGap := m.TicketScore - nanMean(pluck(successful, func(p domain.Merchant) float64 { return p.TicketScore }))
	residentGap := m.ResidentRate - nanMean(pluck(successful, func(p domain.Merchant) float64 { return p.ResidentRate }))
	deliveryGap := m.DeliveryRate - nanMean(pluck(successful, func(p domain.Merchant) float64 { return p.DeliveryRate }))

	bundle.Evidence = append(bundle.Evidence,
		metric("price_gap", "객단가 점수 격차", priceGap, "점"),
		metric("resident_gap", "주거 고객 비중 격차", residentGap, "%p"),
		metric("delivery_gap", "배달 매출 비중 격차", deliveryGap, "%p"),
	)

	cause, action := diagnoseRevisit(m, priceGap, residentGap, deliveryGap)
	bundle.Diagnosis = append(bundle.Diagnosis, finding("revisit_cause", "진단 유형", cause))
	bundle.Actions = append(bundle.Actions, finding("revisit_action", "개선 전략", action))

	return bundle, nil
}

// diagnoseRevisit buckets the merchant into the first matching cause. NaN
// gaps fail every comparison and fall through to the general bucket.
func diagnoseRevisit(m domain.Merchant, priceGap, residentGap, deliveryGap float64) (string, string) {
	switch {
	case !math.IsNaN(m.TenureScore) && m.TenureScore <= newStoreTenureScore && m.NewRate > newStoreNewRate:
		return "첫인상만 좋은 신규 매장",
			"첫 방문이 두 번째 방문으로 이어지도록 30일 내 사용할 수 있는 재방문 쿠폰을 운영하세요"
	case priceGap < priceGapThreshold:
		return "재방문하기엔 부담스러운 가격",
			"세트 구성이나 시간대 한정 메뉴로 체감 가격을 낮춰 재방문 문턱을 내리세요"
	case residentGap < residentGapThreshold:
		return "동네 주민을 사로잡지 못하는 매장",
			"주민 대상 적립 혜택과 동네 커뮤니티 홍보로 근거리 단골부터 만드세요"
	case deliveryGap < deliveryGapThreshold:
		return "배달 채널 부재",
			"배달 접점을 열어 매장 방문 없이도 소비가 이어지게 하세요"
	default:
		return "총체적 마케팅 부재",
			"리뷰 관리, 재방문 쿠폰, 단골 적립처럼 기본이 되는 장치부터 갖추세요"
	}
}
