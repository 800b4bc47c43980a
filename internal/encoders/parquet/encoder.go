// Package parquet writes tables as Parquet files with every column stored
// as an optional UTF8 string.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pq "github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
	"github.com/xitongsys/parquet-go-source/local"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
)

const (
	// Extension is used for Parquet output.
	Extension = "parquet"

	defaultParallelism = 4
)

// Ensure Encoder implements the interface.
var _ driven.TableEncoder = (*Encoder)(nil)

// Encoder renders tables through a temporary local file.
type Encoder struct {
	parallelism int64
	tempDir     string
}

// Option configures the encoder.
type Option func(*Encoder)

// WithParallelism sets the number of concurrent column writers.
func WithParallelism(n int) Option {
	return func(e *Encoder) {
		if n > 0 {
			e.parallelism = int64(n)
		}
	}
}

// WithTempDir sets the directory for intermediate files.
func WithTempDir(dir string) Option {
	return func(e *Encoder) {
		e.tempDir = dir
	}
}

// New creates a Parquet encoder.
func New(opts ...Option) *Encoder {
	e := &Encoder{parallelism: defaultParallelism}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Format returns domain.FormatParquet.
func (e *Encoder) Format() domain.OutputFormat {
	return domain.FormatParquet
}

// Extension returns "parquet".
func (e *Encoder) Extension() string {
	return Extension
}

// Encode writes the table and returns the file contents.
func (e *Encoder) Encode(table *domain.Table) ([]byte, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: table is nil", domain.ErrInvalidInput)
	}
	if len(table.Header) == 0 {
		return nil, fmt.Errorf("%w: table has no columns", domain.ErrInvalidInput)
	}

	names := ColumnNames(table.Header)
	schema, err := jsonSchema(names)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(e.tempDir, "sapbatch-*.parquet")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(path)

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	pw, err := writer.NewJSONWriter(schema, fw, e.parallelism)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = pq.CompressionCodec_SNAPPY

	for i, row := range table.Rows {
		record := make(map[string]string, len(names))
		for ci, name := range names {
			record[name] = row[ci]
		}
		line, err := json.Marshal(record)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if err := pw.Write(string(line)); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("finalise parquet: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("close parquet file: %w", err)
	}

	return os.ReadFile(filepath.Clean(path))
}

// ColumnNames maps table headers to Parquet-safe column names. Characters
// outside [A-Za-z0-9_] become underscores, names starting with a digit get
// a "c_" prefix, and duplicates are suffixed with their position.
func ColumnNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := sanitise(h)
		if seen[name] {
			name = name + "_" + strconv.Itoa(i)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func sanitise(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" {
		return "column"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "c_" + name
	}
	return name
}

type schemaNode struct {
	Tag    string       `json:"Tag"`
	Fields []schemaNode `json:"Fields,omitempty"`
}

func jsonSchema(names []string) (string, error) {
	root := schemaNode{Tag: "name=parquet_go_root, repetitiontype=REQUIRED"}
	for _, name := range names {
		root.Fields = append(root.Fields, schemaNode{
			Tag: fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", name),
		})
	}
	out, err := json.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("build parquet schema: %w", err)
	}
	return string(out), nil
}
