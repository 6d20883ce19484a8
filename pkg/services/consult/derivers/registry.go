package derivers

import (
	"fmt"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

// Registry resolves intents to their derivers. It is built once at startup
// and read only afterwards.
type Registry struct {
	derivers map[domain.Intent]Deriver
}

func NewRegistry(derivers ...Deriver) (*Registry, error) {
	r := &Registry{derivers: make(map[domain.Intent]Deriver)}
	for _, d := range derivers {
		if _, exists := r.derivers[d.Intent()]; exists {
			return nil, fmt.Errorf("duplicate deriver for intent %s", d.Intent())
		}
		r.derivers[d.Intent()] = d
	}
	return r, nil
}

// Default returns a registry with every deriver wired.
func Default() *Registry {
	r, err := NewRegistry(
		NewRevisitRate(),
		NewCustomerPersona(),
		NewCommercialArea(),
		NewIndustryMarketing(),
		NewLunchTurnover(),
	)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Resolve(intent domain.Intent) (Deriver, error) {
	d, ok := r.derivers[intent]
	if !ok {
		return nil, fmt.Errorf("no deriver for intent %s", intent)
	}
	return d, nil
}
