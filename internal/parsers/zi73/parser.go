// Package zi73 registers the parser for transaction ZI73, the turnaround
// work order list.
package zi73

import (
	"github.com/custodia-labs/sapbatch/internal/parsers/family"
	"github.com/custodia-labs/sapbatch/internal/parsers/saplist"
)

// Code is the SAP transaction code.
const Code = "ZI73"

// New returns the ZI73 parser.
func New() *family.Family {
	return family.New(Code, map[string]family.Routine{
		"01": saplist.V1.Parse,
	})
}
