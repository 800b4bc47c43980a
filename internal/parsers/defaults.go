package parsers

import (
	"github.com/custodia-labs/sapbatch/internal/parsers/iw38"
	"github.com/custodia-labs/sapbatch/internal/parsers/zi73"
)

// RegisterDefaults registers all built-in transaction families.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register(zi73.New())
	r.Register(iw38.New())
}

// NewDefaultRegistry returns a registry with the built-in families.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
