package derivers

import "github.com/sb-tools/merchant-lens/pkg/models/domain"

// persona is the curated profile of one customer band.
type persona struct {
	name     string
	features string
}

var personaCatalog = map[domain.SegmentBand]persona{
	domain.BandFemale1020: {
		name:     "디지털 큐레이터",
		features: "SNS 공유거리와 비주얼 경험을 중시하는 트렌드 탐색형 고객",
	},
	domain.BandMale1020: {
		name:     "트렌드 검증가",
		features: "리뷰와 평점을 확인하고 방문을 결정하는 검증형 고객",
	},
	domain.BandFemale30: {
		name:     "전략적 최적화 전문가",
		features: "시간과 비용 대비 만족도를 꼼꼼히 따지는 계획형 고객",
	},
	domain.BandMale30: {
		name:     "효율 추구 프로페셔널",
		features: "빠르고 확실한 서비스를 원하는 실용형 고객",
	},
	domain.BandFemale40: {
		name:     "가족 웰빙 설계자",
		features: "가족 단위 소비와 건강한 메뉴 구성을 중시하는 고객",
	},
	domain.BandMale40: {
		name:     "안정 추구 리더",
		features: "검증된 단골 매장을 선호하는 보수적 소비 성향의 고객",
	},
	domain.BandFemale50: {
		name:     "커뮤니티 앵커",
		features: "동네 모임과 입소문의 중심이 되는 지역 밀착형 고객",
	},
	domain.BandMale50: {
		name:     "로컬 허브",
		features: "생활 반경 안에서 소비를 해결하는 지역 기반 고객",
	},
	domain.BandFemale60: {
		name:     "웰니스 라이프 추구자",
		features: "건강과 편안한 이용 경험을 우선하는 여유 소비 고객",
	},
	domain.BandMale60: {
		name:     "경험 가치 투자자",
		features: "축적된 경험과 품질 기준으로 매장을 선택하는 고객",
	},
}

// channelByAgeRank maps a band's age rank to the marketing channels that
// reach it best.
var channelByAgeRank = map[int]string{
	1: "인스타그램 릴스와 숏폼 콘텐츠 중심의 SNS 채널",
	2: "인스타그램 피드와 네이버 플레이스 리뷰 관리",
	3: "네이버 블로그 체험단과 카카오톡 채널 메시지",
	4: "카카오톡 채널과 동네 커뮤니티 기반 홍보",
	5: "오프라인 접점과 단골 중심의 대면 홍보",
}
