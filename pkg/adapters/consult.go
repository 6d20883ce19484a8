package adapters

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/sb-tools/merchant-lens/pkg/models/api"
	"github.com/sb-tools/merchant-lens/pkg/models/domain"
	"github.com/sb-tools/merchant-lens/pkg/models/store"
)

func MapConsultationDomainToApi(c domain.Consultation) api.Consultation {
	return api.Consultation{
		Id:         c.ID,
		MerchantId: c.MerchantID,
		Intent:     string(c.Intent),
		Question:   c.Question,
		Sections:   MapSectionsDomainToApi(c.Sections),
		Narrative:  c.Narrative,
		CreatedAt:  c.CreatedAt,
	}
}

func MapSectionsDomainToApi(sections []domain.ReportSection) []api.ReportSection {
	mapped := make([]api.ReportSection, 0, len(sections))
	for _, s := range sections {
		mapped = append(mapped, MapSectionDomainToApi(s))
	}
	return mapped
}

func MapSectionDomainToApi(s domain.ReportSection) api.ReportSection {
	section := api.ReportSection{
		Title:    s.Title,
		Summary:  s.Summary,
		Details:  []api.ReportDetail{},
		Metadata: s.Metadata,
	}

	for _, d := range s.Details {
		section.Details = append(section.Details, api.ReportDetail{
			Name:        d.Name,
			Value:       d.Value,
			Unit:        d.Unit,
			Description: d.Description,
		})
	}

	return section
}

func MapMerchantDomainToApi(m domain.Merchant) api.Merchant {
	return api.Merchant{
		Id:             m.ID,
		Name:           m.Name,
		Category:       m.Category,
		CommercialArea: m.AreaLabel(),
		Address:        m.Address,
		Station:        m.Station,
		LatestMonth:    m.LatestMonth,
		RevisitRate:    knownRate(m.RevisitRate),
		NewRate:        knownRate(m.NewRate),
		DeliveryRate:   knownRate(m.DeliveryRate),
	}
}

func MapDomainConsultationToStoreRecord(c domain.Consultation) (store.ConsultationRecord, error) {
	sections, err := json.Marshal(MapSectionsDomainToApi(c.Sections))
	if err != nil {
		return store.ConsultationRecord{}, fmt.Errorf("encoding sections: %w", err)
	}

	return store.ConsultationRecord{
		ID:           c.ID,
		MerchantID:   c.MerchantID,
		Intent:       string(c.Intent),
		Question:     c.Question,
		SectionsJSON: string(sections),
		Narrative:    c.Narrative,
		CreatedAt:    c.CreatedAt,
	}, nil
}

func MapStoreRecordToDomainConsultation(r store.ConsultationRecord) (domain.Consultation, error) {
	var sections []api.ReportSection
	if r.SectionsJSON != "" {
		if err := json.Unmarshal([]byte(r.SectionsJSON), &sections); err != nil {
			return domain.Consultation{}, fmt.Errorf("decoding sections: %w", err)
		}
	}

	domainSections := make([]domain.ReportSection, 0, len(sections))
	for _, s := range sections {
		section := domain.ReportSection{
			Title:    s.Title,
			Summary:  s.Summary,
			Metadata: s.Metadata,
		}
		for _, d := range s.Details {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        d.Name,
				Value:       d.Value,
				Unit:        d.Unit,
				Description: d.Description,
			})
		}
		domainSections = append(domainSections, section)
	}

	return domain.Consultation{
		ID:         r.ID,
		MerchantID: r.MerchantID,
		Intent:     domain.Intent(r.Intent),
		Question:   r.Question,
		Sections:   domainSections,
		Narrative:  r.Narrative,
		CreatedAt:  r.CreatedAt,
	}, nil
}

func knownRate(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
