package domain

import "time"

// Consultation is one issued answer: the question, the routed intent, the
// assembled sections and, when requested, the generated narrative.
type Consultation struct {
	ID         string
	MerchantID string
	Intent     Intent
	Question   string
	Sections   []ReportSection
	Narrative  string
	CreatedAt  time.Time
}
