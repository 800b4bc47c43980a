package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driving"
	"github.com/custodia-labs/sapbatch/internal/logger"
	"github.com/custodia-labs/sapbatch/internal/naming"
)

// Ensure Processor implements the interfaces.
var (
	_ driving.Processor = (*Processor)(nil)
	_ driving.Namer     = (*Processor)(nil)
)

// ProcessorConfig holds the storage layout used by the Processor.
type ProcessorConfig struct {
	// RawContainer is used when a request names no source container.
	RawContainer string

	// InProcessContainer is used when a request names no sink container.
	InProcessContainer string

	// Root is the in-process path root.
	Root string

	// GroupByTransaction adds a transaction folder below Root.
	GroupByTransaction bool

	// SweepRate limits objects per second during Sweep; 0 means unlimited.
	SweepRate float64
}

// ProcessorConfigFromSettings maps application settings to a ProcessorConfig.
func ProcessorConfigFromSettings(s *domain.AppSettings) ProcessorConfig {
	return ProcessorConfig{
		RawContainer:       s.Sink.RawContainer,
		InProcessContainer: s.Sink.InProcessContainer,
		Root:               s.Sink.Root,
		GroupByTransaction: s.Sink.GroupByTransaction,
		SweepRate:          s.Sweep.Rate,
	}
}

// Processor moves raw SAP exports into the in-process area.
// A Processor holds no per-invocation state and is safe for concurrent use;
// two calls on the same source object are not coordinated.
type Processor struct {
	store   driven.BlobStore
	parsers driven.ParserRegistry
	encoder driven.TableEncoder
	names   *naming.Parser
	cfg     ProcessorConfig
}

// NewProcessor creates a new processor.
func NewProcessor(
	store driven.BlobStore,
	parsers driven.ParserRegistry,
	encoder driven.TableEncoder,
	names *naming.Parser,
	cfg ProcessorConfig,
) *Processor {
	return &Processor{
		store:   store,
		parsers: parsers,
		encoder: encoder,
		names:   names,
		cfg:     cfg,
	}
}

// plan is everything derived from one source object before any write.
type plan struct {
	source      domain.ObjectRef
	descriptor  domain.FileDescriptor
	destination domain.DestinationTarget
	column      string
	table       *domain.Table
}

// Process reads one raw export, writes the transformed table and deletes
// the source. The source is only deleted once the write has succeeded.
func (p *Processor) Process(ctx context.Context, req driving.Request) (*driving.Result, error) {
	start := time.Now()

	pl, err := p.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	log := logger.With(
		zap.String("source", pl.source.String()),
		zap.String("function", pl.descriptor.Function()),
	)

	// 6. Encode and write
	content, err := p.encoder.Encode(pl.table)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", pl.source, err)
	}
	written := pl.destination.Ref(p.encoder.Extension())
	if err := p.store.Write(ctx, written, content); err != nil {
		log.Error("write failed, source kept", zap.String("destination", written.String()), zap.Error(err))
		return nil, fmt.Errorf("write %s: %w", written, err)
	}

	// 7. Delete source
	if err := p.store.Delete(ctx, pl.source); err != nil {
		log.Error("delete failed after write", zap.String("destination", written.String()), zap.Error(err))
		return nil, fmt.Errorf("delete %s: %w", pl.source, err)
	}

	result := &driving.Result{
		Source:         pl.source,
		Descriptor:     pl.descriptor,
		Destination:    pl.destination,
		Written:        written,
		FilenameColumn: pl.column,
		Rows:           pl.table.NumRows(),
		Duration:       time.Since(start),
	}
	log.Info("processed",
		zap.String("destination", written.String()),
		zap.Int("rows", result.Rows),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// Preview reads and parses one raw export without writing or deleting.
func (p *Processor) Preview(ctx context.Context, req driving.Request) (*driving.Preview, error) {
	pl, err := p.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return &driving.Preview{
		Descriptor:     pl.descriptor,
		Destination:    pl.destination,
		FilenameColumn: pl.column,
		Table:          pl.table,
	}, nil
}

// prepare performs every step up to the write.
func (p *Processor) prepare(ctx context.Context, req driving.Request) (*plan, error) {
	if strings.TrimSpace(req.Filename) == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	source := domain.ObjectRef{
		Container: firstNonEmpty(req.SourceContainer, p.cfg.RawContainer),
		Path:      domain.JoinKey(req.SourcePath),
		Name:      req.Filename,
	}

	// 1. Read source
	logger.Debug("reading source", zap.String("source", source.String()))
	content, err := p.store.Read(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	// 2. Parse filename
	descriptor, err := p.names.Parse(req.Filename)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed filename",
		zap.String("event", descriptor.Event),
		zap.String("function", descriptor.Function()),
		zap.String("date", descriptor.Date),
		zap.String("step", descriptor.Step),
	)

	// 3. Resolve parser and parse table
	parser, err := p.parsers.Resolve(descriptor.Transaction)
	if err != nil {
		return nil, err
	}
	table, err := parser.Parse(content, descriptor.Function())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	// 4. Append filename column
	column := naming.FilenameColumn(descriptor)
	table.SetColumn(domain.FilenameColumn, column)

	// 5. Derive destination
	destination := p.destination(descriptor, req.SinkContainer)

	return &plan{
		source:      source,
		descriptor:  descriptor,
		destination: destination,
		column:      column,
		table:       table,
	}, nil
}

// Describe parses filename and derives its destination without reading
// the source.
func (p *Processor) Describe(filename, sinkContainer string) (*driving.Preview, error) {
	descriptor, err := p.names.Parse(filename)
	if err != nil {
		return nil, err
	}
	return &driving.Preview{
		Descriptor:     descriptor,
		Destination:    p.destination(descriptor, sinkContainer),
		FilenameColumn: naming.FilenameColumn(descriptor),
	}, nil
}

func (p *Processor) destination(d domain.FileDescriptor, sinkContainer string) domain.DestinationTarget {
	return naming.Destination(d, naming.Sink{
		Container:          firstNonEmpty(sinkContainer, p.cfg.InProcessContainer),
		Root:               p.cfg.Root,
		GroupByTransaction: p.cfg.GroupByTransaction,
	})
}

// Sweep processes every object under the source folder in name order.
// Failures are collected per object and the remaining objects are still
// processed; the returned error joins every failure.
func (p *Processor) Sweep(ctx context.Context, req driving.SweepRequest) (*driving.SweepResult, error) {
	container := firstNonEmpty(req.SourceContainer, p.cfg.RawContainer)
	folder := domain.JoinKey(req.SourcePath)

	logger.Section("Sweep")
	infos, err := p.store.List(ctx, container, folder)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", domain.JoinKey(container, folder), err)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if p.cfg.SweepRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(p.cfg.SweepRate), 1)
	}

	result := &driving.SweepResult{Failed: make(map[string]error)}
	var errs []error
	for _, info := range infos {
		rel := strings.TrimPrefix(info.Name, folder+"/")
		if folder == "" {
			rel = info.Name
		}
		// Only direct children of the folder are swept.
		if rel == "" || strings.Contains(rel, "/") {
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return result, errors.Join(append(errs, err)...)
		}

		res, err := p.Process(ctx, driving.Request{
			SourceContainer: container,
			SourcePath:      folder,
			Filename:        rel,
			SinkContainer:   req.SinkContainer,
		})
		if err != nil {
			logger.Warn("sweep item failed", zap.String("name", info.Name), zap.Error(err))
			result.Failed[rel] = err
			errs = append(errs, fmt.Errorf("%s: %w", rel, err))
			continue
		}
		result.Processed = append(result.Processed, *res)
	}

	logger.Info("sweep finished",
		zap.String("folder", domain.JoinKey(container, folder)),
		zap.Int("processed", len(result.Processed)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, errors.Join(errs...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
