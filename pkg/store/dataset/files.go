package dataset

import "github.com/sb-tools/merchant-lens/pkg/models/domain"

// Dataset file names, fixed by the upstream export pipeline. The 선택영역
// variants cover the operator-selected micro area and may be absent.
const (
	FileMerchants         = "전체JOIN_업종정규화_v2.csv"
	FileStrategyTemplates = "AI상담사_핵심전략_프롬프트.csv"
	FileFlowGenderAge     = "성별연령대별_유동인구.csv"
	FileFlowGenderAgeSel  = "성별연령대별_유동인구_선택영역.csv"
	FileFlowDayOfWeek     = "요일별_유동인구.csv"
	FileFlowDayOfWeekSel  = "요일별_유동인구_선택영역.csv"
	FileFlowTimeBand      = "시간대별_유동인구.csv"
	FileFlowTimeBandSel   = "시간대별_유동인구_선택영역.csv"
	FileWorkforce         = "성별연령대별_직장인구.csv"
)

// Merchant JOIN table columns.
const (
	colMerchantID   = "ENCODED_MCT"
	colMerchantName = "MCT_NM"
	colMonth        = "TA_YM"
	colCategory     = "업종_정규화2_대분류"
	colArea         = "상권"
	colAddress      = "MCT_BSE_AR"
	colStation      = "HPSN_MCT_ZCD_NM"

	colSalesTier    = "RC_M1_SAA"
	colCustomerTier = "RC_M1_TO_UE_CT"
	colTicketTier   = "RC_M1_AV_NP_AT"
	colTenureTier   = "MCT_OPE_MS_CN"

	colRevisitRate   = "MCT_UE_CLN_REU_RAT"
	colNewRate       = "MCT_UE_CLN_NEW_RAT"
	colResidentRate  = "RC_M1_SHC_RSD_UE_CLN_RAT"
	colWorkplaceRate = "RC_M1_SHC_WP_UE_CLN_RAT"
	colFloatingRate  = "RC_M1_SHC_FLP_UE_CLN_RAT"
	colDeliveryRate  = "DLV_SAA_RAT"
)

// Strategy template table columns.
const (
	colTemplateArea       = "상권"
	colTemplateCategory   = "업종"
	colTemplateFactor     = "핵심성공변수(DNA)"
	colTemplateStrategy   = "핵심경영전략"
	colTemplateImportance = "중요도(Cohen_d)"
)

// Population tables carry a 구분 discriminator; the loader reads the first
// row whose 구분 mentions 인구.
const colGroup = "구분"

var tierColumns = [4]string{colSalesTier, colCustomerTier, colTicketTier, colTenureTier}

var rateColumns = [6]string{
	colRevisitRate, colNewRate, colResidentRate,
	colWorkplaceRate, colFloatingRate, colDeliveryRate,
}

// personaColumns maps the twelve-month customer mix columns of the JOIN table
// to segment bands, in canonical band order.
var personaColumns = []struct {
	col  string
	band domain.SegmentBand
}{
	{"M12_MAL_1020_RAT", domain.BandMale1020},
	{"M12_MAL_30_RAT", domain.BandMale30},
	{"M12_MAL_40_RAT", domain.BandMale40},
	{"M12_MAL_50_RAT", domain.BandMale50},
	{"M12_MAL_60_RAT", domain.BandMale60},
	{"M12_FME_1020_RAT", domain.BandFemale1020},
	{"M12_FME_30_RAT", domain.BandFemale30},
	{"M12_FME_40_RAT", domain.BandFemale40},
	{"M12_FME_50_RAT", domain.BandFemale50},
	{"M12_FME_60_RAT", domain.BandFemale60},
}

// genderAgeColumns maps population table columns to segment bands.
var genderAgeColumns = []struct {
	col  string
	band domain.SegmentBand
}{
	{"남성_1020", domain.BandMale1020},
	{"남성_30대", domain.BandMale30},
	{"남성_40대", domain.BandMale40},
	{"남성_50대", domain.BandMale50},
	{"남성_60대이상", domain.BandMale60},
	{"여성_1020", domain.BandFemale1020},
	{"여성_30대", domain.BandFemale30},
	{"여성_40대", domain.BandFemale40},
	{"여성_50대", domain.BandFemale50},
	{"여성_60대이상", domain.BandFemale60},
}

var dayColumns = []string{"월", "화", "수", "목", "금", "토", "일"}

var timeBandColumns = []string{"05~09시", "09~12시", "12~14시", "14~18시", "18~23시", "23~05시"}
