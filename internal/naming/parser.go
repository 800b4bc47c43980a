package naming

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
)

// DefaultPrefix is the literal the SAP job scheduler puts on every export.
const DefaultPrefix = "Job SAP-"

// DateLayout is the snapshot date format, YYYYMMDD.
const DateLayout = "20060102"

var (
	extension   = regexp.MustCompile(`\.[A-Za-z0-9]{1,5}$`)
	eightDigits = regexp.MustCompile(`^[0-9]{8}$`)
)

// Parser turns export filenames into descriptors.
// The zero value is not usable; construct with NewParser.
type Parser struct {
	prefix string
	loc    *time.Location
	now    func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithPrefix overrides the literal stripped from the start of filenames.
func WithPrefix(prefix string) Option {
	return func(p *Parser) {
		p.prefix = prefix
	}
}

// WithClock overrides the clock used for the default snapshot date.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// NewParser creates a parser. loc is the zone in which "today" is
// computed when a filename has no explicit date; nil means UTC.
func NewParser(loc *time.Location, opts ...Option) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	p := &Parser{
		prefix: DefaultPrefix,
		loc:    loc,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Location returns the zone used for default dates.
func (p *Parser) Location() *time.Location {
	return p.loc
}

// Parse extracts the descriptor from a filename. Leading folders are
// ignored. Returns an error wrapping domain.ErrMalformedFilename when
// the event, transaction or version cannot be found.
func (p *Parser) Parse(filename string) (domain.FileDescriptor, error) {
	name := filename
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimPrefix(name, p.prefix)

	core, suffix, hasStep := strings.Cut(name, ",")
	if !hasStep {
		core = stripExtension(core)
	}

	segments := strings.Split(core, "-")
	if len(segments) < 2 || len(segments) > 3 {
		return domain.FileDescriptor{}, malformed(filename, "expected event-transaction_version[-date], got %d segments", len(segments))
	}

	event := strings.TrimSpace(segments[0])
	if event == "" {
		return domain.FileDescriptor{}, malformed(filename, "empty event")
	}

	txPart := strings.TrimSpace(segments[1])
	transaction, version, ok := strings.Cut(txPart, "_")
	if !ok {
		return domain.FileDescriptor{}, malformed(filename, "transaction %q has no version suffix", txPart)
	}
	transaction = strings.TrimSpace(transaction)
	version = strings.TrimSpace(version)
	if transaction == "" {
		return domain.FileDescriptor{}, malformed(filename, "empty transaction")
	}
	if version == "" {
		return domain.FileDescriptor{}, malformed(filename, "empty version")
	}

	date := p.today()
	if len(segments) == 3 {
		date = strings.ReplaceAll(segments[2], " ", "")
		if !validDate(date) {
			return domain.FileDescriptor{}, malformed(filename, "date %q is not YYYYMMDD", segments[2])
		}
	}

	var step string
	if hasStep {
		step = strings.TrimSpace(stripExtension(suffix))
	}

	return domain.FileDescriptor{
		Event:       event,
		Transaction: transaction,
		Version:     version,
		Date:        date,
		Step:        step,
	}, nil
}

func (p *Parser) today() string {
	return p.now().In(p.loc).Format(DateLayout)
}

func stripExtension(s string) string {
	return extension.ReplaceAllString(s, "")
}

func validDate(s string) bool {
	if !eightDigits.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func malformed(filename, format string, args ...any) error {
	return fmt.Errorf("%w: %q: %s", domain.ErrMalformedFilename, filename, fmt.Sprintf(format, args...))
}
