package report

import (
	"fmt"
	"sync"

	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
)

// Registry holds the report variants known to the dispatcher
type Registry interface {
	// Register adds a variant; ids must be unique
	Register(v Variant) error
	// Get returns the variant for kind
	Get(kind domain.Kind) (Variant, bool)
	// List returns the registered kinds in registration order
	List() []domain.KindInfo
}

type registry struct {
	mu       sync.RWMutex
	variants map[domain.Kind]Variant
	order    []domain.Kind
}

func NewRegistry(variants ...Variant) (Registry, error) {
	r := &registry{variants: make(map[domain.Kind]Variant)}
	for _, v := range variants {
		if err := r.Register(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) Register(v Variant) error {
	if v.ID == "" {
		return fmt.Errorf("report kind cannot be empty")
	}
	if v.Fetch == nil || v.Aggregate == nil {
		return fmt.Errorf("report kind %q needs fetch and aggregate functions", v.ID)
	}
	if len(v.Columns) == 0 {
		return fmt.Errorf("report kind %q has no columns", v.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.variants[v.ID]; exists {
		return fmt.Errorf("report kind %q is already registered", v.ID)
	}

	r.variants[v.ID] = v
	r.order = append(r.order, v.ID)
	return nil
}

func (r *registry) Get(kind domain.Kind) (Variant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.variants[kind]
	return v, ok
}

func (r *registry) List() []domain.KindInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.KindInfo, 0, len(r.order))
	for _, id := range r.order {
		v := r.variants[id]
		kinds = append(kinds, domain.KindInfo{ID: v.ID, Title: v.Title, Columns: v.Columns})
	}
	return kinds
}
