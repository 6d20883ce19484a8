package store

import "time"

// ConsultationRecord is the archive row for one issued consultation. Sections
// are kept as a JSON document.
type ConsultationRecord struct {
	ID           string
	MerchantID   string
	Intent       string
	Question     string
	SectionsJSON string
	Narrative    string
	CreatedAt    time.Time
}
