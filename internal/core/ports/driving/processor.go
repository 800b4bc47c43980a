package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
)

// Processor moves raw exports into the in-process area.
type Processor interface {
	// Process transforms one source object: read, parse, write, then delete.
	Process(ctx context.Context, req Request) (*Result, error)

	// Sweep processes every object under a source folder.
	Sweep(ctx context.Context, req SweepRequest) (*SweepResult, error)

	// Preview parses one source object without writing or deleting anything.
	Preview(ctx context.Context, req Request) (*Preview, error)
}

// Request identifies one source object.
// Empty containers fall back to the configured defaults.
type Request struct {
	// SourceContainer holds the raw export.
	SourceContainer string

	// SourcePath is the folder of the raw export within SourceContainer.
	SourcePath string

	// Filename is the raw export object name.
	Filename string

	// SinkContainer receives the transformed table.
	SinkContainer string
}

// Result describes a completed Process call.
type Result struct {
	// Source is the object that was read and then deleted.
	Source domain.ObjectRef

	// Descriptor holds the parsed filename fields.
	Descriptor domain.FileDescriptor

	// Destination is the derived target.
	Destination domain.DestinationTarget

	// Written is the object that was written.
	Written domain.ObjectRef

	// FilenameColumn is the value placed in the filename column.
	FilenameColumn string

	// Rows is the number of data rows written.
	Rows int

	// Duration is the wall time of the call.
	Duration time.Duration
}

// Summary returns a one-line description for HTTP and CLI output.
func (r *Result) Summary() string {
	return r.Descriptor.Function() + ": " + r.Source.String() + " -> " + r.Written.String()
}

// SweepRequest identifies a source folder.
type SweepRequest struct {
	SourceContainer string
	SourcePath      string
	SinkContainer   string
}

// SweepResult describes a completed Sweep call.
type SweepResult struct {
	// Processed holds one result per successfully moved object.
	Processed []Result

	// Failed maps object names to their error.
	Failed map[string]error
}

// Preview is the outcome of parsing without side effects.
type Preview struct {
	Descriptor     domain.FileDescriptor
	Destination    domain.DestinationTarget
	FilenameColumn string
	Table          *domain.Table
}

// Namer derives names from a filename without touching storage.
type Namer interface {
	// Describe parses filename and derives its destination. The returned
	// Preview has no Table.
	Describe(filename, sinkContainer string) (*Preview, error)
}
