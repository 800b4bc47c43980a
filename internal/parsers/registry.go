package parsers

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ParserRegistry = (*Registry)(nil)

// Registry maps transaction codes to their parsers.
// Codes are matched case-insensitively.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]driven.TableParser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]driven.TableParser),
	}
}

// Register adds a parser, replacing any parser for the same code.
func (r *Registry) Register(parser driven.TableParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[normalise(parser.Transaction())] = parser
}

// Resolve returns the parser for a transaction code.
func (r *Registry) Resolve(transaction string) (driven.TableParser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parser, ok := r.parsers[normalise(transaction)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTransaction, transaction)
	}
	return parser, nil
}

// Has returns true if a parser is registered for the code.
func (r *Registry) Has(transaction string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.parsers[normalise(transaction)]
	return ok
}

// Transactions returns all registered codes in sorted order.
func (r *Registry) Transactions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.parsers))
	for _, p := range r.parsers {
		codes = append(codes, p.Transaction())
	}
	sort.Strings(codes)
	return codes
}

func normalise(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
