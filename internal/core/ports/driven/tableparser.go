package driven

import "github.com/custodia-labs/sapbatch/internal/core/domain"

// TableParser converts the markup of one transaction family into a table.
// A family supports one or more function variants (e.g. "ZI73_01").
type TableParser interface {
	// Transaction returns the transaction code this parser handles.
	Transaction() string

	// Variants returns the supported function variant codes.
	Variants() []string

	// Parse extracts the table for the given function variant.
	// Returns domain.ErrUnsupportedFunctionVariant for unknown variants and
	// domain.ErrMalformedSourceTable when the markup has the wrong shape.
	Parse(content []byte, function string) (*domain.Table, error)
}

// ParserRegistry maps transaction codes to parsers.
// It is populated once at start-up.
type ParserRegistry interface {
	// Register adds a parser, replacing any parser for the same code.
	Register(parser TableParser)

	// Resolve returns the parser for a transaction code.
	// Returns domain.ErrUnknownTransaction when none is registered.
	Resolve(transaction string) (TableParser, error)

	// Transactions returns all registered codes in sorted order.
	Transactions() []string
}
