// Package tsv writes tables as tab-delimited text.
package tsv

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
)

// Extension is used for tab-delimited output. Downstream consumers key
// on ".csv" even though the separator is a tab.
const Extension = "csv"

// Ensure Encoder implements the interface.
var _ driven.TableEncoder = (*Encoder)(nil)

// Encoder renders a header line followed by one line per row.
type Encoder struct {
	crlf bool
}

// Option configures the encoder.
type Option func(*Encoder)

// WithCRLF terminates lines with \r\n.
func WithCRLF() Option {
	return func(e *Encoder) {
		e.crlf = true
	}
}

// New creates a tab-delimited encoder.
func New(opts ...Option) *Encoder {
	e := &Encoder{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Format returns domain.FormatCSV.
func (e *Encoder) Format() domain.OutputFormat {
	return domain.FormatCSV
}

// Extension returns "csv".
func (e *Encoder) Extension() string {
	return Extension
}

// Encode writes the header and rows. Fields containing tabs, quotes or
// newlines are quoted.
func (e *Encoder) Encode(table *domain.Table) ([]byte, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: table is nil", domain.ErrInvalidInput)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '\t'
	w.UseCRLF = e.crlf

	if err := w.Write(table.Header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return nil, fmt.Errorf("write rows: %w", err)
	}
	return buf.Bytes(), nil
}
