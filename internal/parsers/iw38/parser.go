// Package iw38 registers the parser for transaction IW38, the PM order list.
package iw38

import (
	"github.com/custodia-labs/sapbatch/internal/parsers/family"
	"github.com/custodia-labs/sapbatch/internal/parsers/saplist"
)

// Code is the SAP transaction code.
const Code = "IW38"

// New returns the IW38 parser. Variant 01 shares the list layout of ZI73_01.
func New() *family.Family {
	return family.New(Code, map[string]family.Routine{
		"01": saplist.V1.Parse,
	})
}
