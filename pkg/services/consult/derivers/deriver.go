package derivers

import (
	"context"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

// Store is the dataset view derivers read from.
type Store interface {
	Merchants() []domain.Merchant
	Peers(category, area string) []domain.Merchant
	FlowSlice(scope domain.FlowScope, dim domain.FlowDimension) (domain.FlowSlice, error)
	WorkforceSlice(scope domain.FlowScope) (domain.WorkforceSlice, error)
	LookupTemplate(category, area string) domain.TemplateMatch
}

// Deriver computes the metrics bundle for one intent. Data the store cannot
// supply degrades to insufficient markers inside the bundle; an error return
// means the deriver was called outside its contract.
type Deriver interface {
	Intent() domain.Intent
	Derive(ctx context.Context, merchant domain.Merchant, store Store) (domain.MetricsBundle, error)
}
