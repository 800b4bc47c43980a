package driven

import "github.com/custodia-labs/sapbatch/internal/core/domain"

// TableEncoder serialises a table for storage.
type TableEncoder interface {
	// Format returns the output format this encoder writes.
	Format() domain.OutputFormat

	// Extension returns the file extension without the leading dot.
	Extension() string

	// Encode renders the table to bytes.
	Encode(table *domain.Table) ([]byte, error)
}
