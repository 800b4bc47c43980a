// Package encoders provides the table encoders used for the in-process copy.
package encoders

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
)

// BuilderFunc creates a TableEncoder from generic config.
// Config is a map of encoder-specific settings parsed from user config.
type BuilderFunc func(cfg map[string]any) (driven.TableEncoder, error)

// Registry maps output formats to their builders.
type Registry struct {
	builders map[domain.OutputFormat]BuilderFunc
}

// NewRegistry creates a new encoder registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[domain.OutputFormat]BuilderFunc),
	}
}

// Register adds an encoder builder to the registry.
// Format should match the encoder's Format() return value.
func (r *Registry) Register(format domain.OutputFormat, builder BuilderFunc) {
	r.builders[format] = builder
}

// Build creates an encoder for format with the given config.
func (r *Registry) Build(format domain.OutputFormat, cfg map[string]any) (driven.TableEncoder, error) {
	builder, ok := r.builders[format]
	if !ok {
		return nil, fmt.Errorf("%w: output format %q", domain.ErrUnsupportedType, format)
	}
	return builder(cfg)
}

// Has returns true if an encoder for the format is registered.
func (r *Registry) Has(format domain.OutputFormat) bool {
	_, ok := r.builders[format]
	return ok
}

// Formats returns all registered formats in sorted order.
func (r *Registry) Formats() []domain.OutputFormat {
	formats := make([]domain.OutputFormat, 0, len(r.builders))
	for format := range r.builders {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
