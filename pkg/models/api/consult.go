package api

import "time"

type ConsultRequest struct {
	Question      string `json:"question"`
	WithNarrative bool   `json:"with_narrative,omitempty"`
}

type Consultation struct {
	Id         string          `json:"id"`
	MerchantId string          `json:"merchant_id"`
	Intent     string          `json:"intent"`
	Question   string          `json:"question"`
	Sections   []ReportSection `json:"sections"`
	Narrative  string          `json:"narrative,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type ReportSection struct {
	Title    string                 `json:"title"`
	Summary  map[string]interface{} `json:"summary,omitempty"`
	Details  []ReportDetail         `json:"details"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type ReportDetail struct {
	Name        string      `json:"name"`
	Value       interface{} `json:"value,omitempty"`
	Unit        string      `json:"unit,omitempty"`
	Description string      `json:"description,omitempty"`
}

type Merchant struct {
	Id             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	CommercialArea string   `json:"commercial_area"`
	Address        string   `json:"address,omitempty"`
	Station        string   `json:"station,omitempty"`
	LatestMonth    string   `json:"latest_month"`
	RevisitRate    *float64 `json:"revisit_rate,omitempty"`
	NewRate        *float64 `json:"new_rate,omitempty"`
	DeliveryRate   *float64 `json:"delivery_rate,omitempty"`
}
