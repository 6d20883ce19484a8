package domain

// StrategyTemplate is one curated strategy entry keyed by commercial area and
// industry category.
type StrategyTemplate struct {
	CommercialArea string
	Category       string
	KeyFactor      string  // the variable that best separates top performers
	Strategy       string  // the management strategy text
	Importance     float64 // effect size of the key factor
}

type MatchTier string

const (
	MatchExact    MatchTier = "exact"    // area and category both matched
	MatchCategory MatchTier = "category" // same category, any area
	MatchArea     MatchTier = "area"     // same area, any category
	MatchNone     MatchTier = "none"
)

// TemplateMatch is the result of a tiered template lookup.
type TemplateMatch struct {
	Template StrategyTemplate
	Tier     MatchTier
}
