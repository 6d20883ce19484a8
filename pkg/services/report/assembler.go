package report

import (
	"fmt"
	"math"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

// Section titles shared by every intent. The basic info section always opens
// the report; the caveat text marks metrics the datasets could not support.
const (
	BasicInfoTitle = "가맹점 기본 정보"
	EvidenceTitle  = "근거 지표"
	ActionsTitle   = "추천 실행 방안"

	insufficientText = "데이터 부족"
)

// AssemblyError reports a bundle that violates the assembler's contract.
// It signals a programming error in the deriver, not bad merchant data.
type AssemblyError struct {
	Reason string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembling report: %s", e.Reason)
}

// Assembler turns a metrics bundle into the ordered section list handed to
// narrative generation. It performs no computation of its own.
type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble composes the report sections for one consultation. The first
// section is always the merchant basic info; the bundle's groups follow in
// diagnosis, evidence, action order, skipping groups the deriver left empty.
func (a *Assembler) Assemble(
	tag domain.Intent,
	m domain.Merchant,
	bundle domain.MetricsBundle,
) ([]domain.ReportSection, error) {
	if !tag.Valid() {
		return nil, &AssemblyError{Reason: fmt.Sprintf("unknown intent %q", tag)}
	}
	if bundle.Intent != tag {
		return nil, &AssemblyError{
			Reason: fmt.Sprintf("bundle intent %q does not match requested intent %q", bundle.Intent, tag),
		}
	}
	if bundle.Empty() {
		return nil, &AssemblyError{Reason: "empty metrics bundle"}
	}

	sections := []domain.ReportSection{BasicInfoSection(m)}

	groups := []struct {
		title   string
		metrics []domain.Metric
	}{
		{tag.Label(), bundle.Diagnosis},
		{EvidenceTitle, bundle.Evidence},
		{ActionsTitle, bundle.Actions},
	}
	for _, g := range groups {
		if len(g.metrics) == 0 {
			continue
		}
		sections = append(sections, metricsSection(g.title, g.metrics))
	}

	return sections, nil
}

// BasicInfoSection synthesizes the mandatory opening section from the
// merchant profile.
func BasicInfoSection(m domain.Merchant) domain.ReportSection {
	details := []domain.ReportDetail{
		{Name: "가맹점 ID", Value: m.ID},
		{Name: "상호명", Value: m.Name},
		{Name: "업종", Value: m.Category},
		{Name: "상권", Value: m.AreaLabel()},
	}
	if m.Address != "" {
		details = append(details, domain.ReportDetail{Name: "주소", Value: m.Address})
	}
	if m.Station != "" {
		details = append(details, domain.ReportDetail{Name: "인근 지하철역", Value: m.Station})
	}
	details = append(details,
		domain.ReportDetail{Name: "기준월", Value: m.LatestMonth},
		rateDetail("재방문 고객 비중", m.RevisitRate),
		rateDetail("신규 고객 비중", m.NewRate),
		rateDetail("배달 매출 비중", m.DeliveryRate),
	)

	return domain.ReportSection{
		Title:    BasicInfoTitle,
		Details:  details,
		Metadata: map[string]interface{}{"merchant_id": m.ID},
	}
}

func metricsSection(title string, metrics []domain.Metric) domain.ReportSection {
	section := domain.ReportSection{Title: title}
	for _, m := range metrics {
		section.Details = append(section.Details, detail(m))
	}
	return section
}

// detail renders one metric. Insufficient metrics become explicit caveat
// rows instead of being dropped.
func detail(m domain.Metric) domain.ReportDetail {
	d := domain.ReportDetail{Name: m.Label, Unit: m.Unit}
	switch {
	case m.Insufficient:
		d.Value = insufficientText
		d.Unit = ""
		if m.Note != "" && m.Note != insufficientText {
			d.Description = m.Note
		}
	case m.Text != "":
		d.Value = m.Text
	default:
		d.Value = m.Value
	}
	return d
}

func rateDetail(name string, rate float64) domain.ReportDetail {
	if math.IsNaN(rate) {
		return domain.ReportDetail{Name: name, Value: insufficientText}
	}
	return domain.ReportDetail{Name: name, Value: math.Round(rate*10) / 10, Unit: "%"}
}
