// Package family implements a TableParser that dispatches a transaction's
// function variants to layout routines.
package family

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
)

// Routine extracts a table from raw export content.
type Routine func(content []byte) (*domain.Table, error)

// Ensure Family implements the interface.
var _ driven.TableParser = (*Family)(nil)

// Family is the parser for one transaction code. Each supported layout
// version ("01", "02", ...) maps to its own routine.
type Family struct {
	code     string
	routines map[string]Routine
}

// New creates a family for code with the given version routines.
func New(code string, routines map[string]Routine) *Family {
	r := make(map[string]Routine, len(routines))
	for version, routine := range routines {
		r[version] = routine
	}
	return &Family{code: code, routines: r}
}

// Transaction returns the transaction code.
func (f *Family) Transaction() string {
	return f.code
}

// Variants returns the supported function codes, e.g. "ZI73_01".
func (f *Family) Variants() []string {
	variants := make([]string, 0, len(f.routines))
	for version := range f.routines {
		variants = append(variants, f.code+"_"+version)
	}
	sort.Strings(variants)
	return variants
}

// Parse runs the routine for function, which must be <code>_<version>.
func (f *Family) Parse(content []byte, function string) (*domain.Table, error) {
	routine, err := f.routine(function)
	if err != nil {
		return nil, err
	}
	table, err := routine(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", function, err)
	}
	return table, nil
}

func (f *Family) routine(function string) (Routine, error) {
	code, version, ok := strings.Cut(strings.TrimSpace(function), "_")
	if !ok || !strings.EqualFold(code, f.code) {
		return nil, fmt.Errorf("%w: %q is not a %s function", domain.ErrUnsupportedFunctionVariant, function, f.code)
	}
	routine, ok := f.routines[version]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", domain.ErrUnsupportedFunctionVariant, function, strings.Join(f.Variants(), ", "))
	}
	return routine, nil
}
