package domain

// Merchant is the collapsed profile of one store. Categorical fields come from
// the latest month on record; rate fields are averaged over all months with a
// usable value, and are NaN when no month carried one.
type Merchant struct {
	ID             string
	Name           string
	Category       string // normalized top-level industry
	CommercialArea string // empty when the store sits outside a named area
	Address        string
	Station        string // attached subway station, empty when none
	LatestMonth    string // YYYYMM of the newest row

	SalesTier    string // monthly sales percentile band
	CustomerTier string // customer count percentile band
	TicketTier   string // average transaction amount percentile band
	TenureTier   string // operating months percentile band

	SalesScore    float64 // band score averaged over months, NaN when never banded
	CustomerScore float64
	TicketScore   float64
	TenureScore   float64

	RevisitRate   float64 // returning customer share, percent
	NewRate       float64 // new customer share, percent
	ResidentRate  float64 // resident customer share, percent
	WorkplaceRate float64 // workplace customer share, percent
	FloatingRate  float64 // floating customer share, percent
	DeliveryRate  float64 // delivery sales share, percent

	PersonaShares []SegmentShare // canonical band order
}

// InArea reports whether the merchant belongs to the given commercial area,
// treating two empty areas as a match.
func (m Merchant) InArea(area string) bool {
	return m.CommercialArea == area
}

// AreaLabel returns the commercial area name, or 비상권 for merchants outside
// every named area.
func (m Merchant) AreaLabel() string {
	if m.CommercialArea == "" {
		return "비상권"
	}
	return m.CommercialArea
}
