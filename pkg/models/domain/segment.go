package domain

// SegmentBand is one gender and age band of the customer mix.
type SegmentBand string

const (
	BandMale1020   SegmentBand = "남성 10-20대"
	BandMale30     SegmentBand = "남성 30대"
	BandMale40     SegmentBand = "남성 40대"
	BandMale50     SegmentBand = "남성 50대"
	BandMale60     SegmentBand = "남성 60대 이상"
	BandFemale1020 SegmentBand = "여성 10-20대"
	BandFemale30   SegmentBand = "여성 30대"
	BandFemale40   SegmentBand = "여성 40대"
	BandFemale50   SegmentBand = "여성 50대"
	BandFemale60   SegmentBand = "여성 60대 이상"
)

// SegmentBands returns the ten bands in canonical order. Ties between equal
// shares are broken by this order.
func SegmentBands() []SegmentBand {
	return []SegmentBand{
		BandMale1020, BandMale30, BandMale40, BandMale50, BandMale60,
		BandFemale1020, BandFemale30, BandFemale40, BandFemale50, BandFemale60,
	}
}

// Gender returns 남성 or 여성.
func (b SegmentBand) Gender() string {
	switch b {
	case BandMale1020, BandMale30, BandMale40, BandMale50, BandMale60:
		return "남성"
	case BandFemale1020, BandFemale30, BandFemale40, BandFemale50, BandFemale60:
		return "여성"
	}
	return ""
}

// AgeRank returns the ordinal position of the band's age group, 1 for 10-20대
// through 5 for 60대 이상. Bands whose ranks differ by one are adjacent.
func (b SegmentBand) AgeRank() int {
	switch b {
	case BandMale1020, BandFemale1020:
		return 1
	case BandMale30, BandFemale30:
		return 2
	case BandMale40, BandFemale40:
		return 3
	case BandMale50, BandFemale50:
		return 4
	case BandMale60, BandFemale60:
		return 5
	}
	return 0
}

// SegmentShare is the share of one band in a customer mix, in percent.
// Known is false when the source data carried no usable value for the band.
type SegmentShare struct {
	Band  SegmentBand
	Share float64
	Known bool
}
