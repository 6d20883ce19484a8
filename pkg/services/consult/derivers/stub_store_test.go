package derivers

import (
	"errors"
	"math"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

var errStubMissing = errors.New("not in stub")

type sliceKey struct {
	scope domain.FlowScope
	dim   domain.FlowDimension
}

// stubStore hands back exactly what a test wires into it.
type stubStore struct {
	merchants []domain.Merchant
	peers     map[string][]domain.Merchant
	flows     map[sliceKey]domain.FlowSlice
	workforce map[domain.FlowScope]domain.WorkforceSlice
	match     domain.TemplateMatch
}

func (s *stubStore) Merchants() []domain.Merchant { return s.merchants }

func (s *stubStore) Peers(category, area string) []domain.Merchant {
	return s.peers[category+"|"+area]
}

func (s *stubStore) FlowSlice(scope domain.FlowScope, dim domain.FlowDimension) (domain.FlowSlice, error) {
	slice, ok := s.flows[sliceKey{scope: scope, dim: dim}]
	if !ok {
		return domain.FlowSlice{}, errStubMissing
	}
	return slice, nil
}

func (s *stubStore) WorkforceSlice(scope domain.FlowScope) (domain.WorkforceSlice, error) {
	slice, ok := s.workforce[scope]
	if !ok {
		return domain.WorkforceSlice{}, errStubMissing
	}
	return slice, nil
}

func (s *stubStore) LookupTemplate(category, area string) domain.TemplateMatch {
	return s.match
}

// blankRates returns a merchant whose every rate field is NaN, the shape the
// dataset layer produces when no month carried a value.
func blankRates(id, category, area string) domain.Merchant {
	nan := math.NaN()
	return domain.Merchant{
		ID:             id,
		Category:       category,
		CommercialArea: area,
		SalesScore:     nan,
		CustomerScore:  nan,
		TicketScore:    nan,
		TenureScore:    nan,
		RevisitRate:    nan,
		NewRate:        nan,
		ResidentRate:   nan,
		WorkplaceRate:  nan,
		FloatingRate:   nan,
		DeliveryRate:   nan,
	}
}

func metricByKey(metrics []domain.Metric, key string) (domain.Metric, bool) {
	for _, m := range metrics {
		if m.Key == key {
			return m, true
		}
	}
	return domain.Metric{}, false
}
