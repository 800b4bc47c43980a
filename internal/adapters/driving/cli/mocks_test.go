package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driving"
)

type mockProcessor struct {
	requests []driving.Request
	sweeps   []driving.SweepRequest

	processErr  error
	sweepResult *driving.SweepResult
	sweepErr    error
	preview     *driving.Preview
	previewErr  error
}

func (m *mockProcessor) Process(_ context.Context, req driving.Request) (*driving.Result, error) {
	m.requests = append(m.requests, req)
	if m.processErr != nil {
		return nil, m.processErr
	}
	return &driving.Result{
		Source:     domain.ObjectRef{Container: "raw", Path: req.SourcePath, Name: req.Filename},
		Descriptor: domain.FileDescriptor{Transaction: "IW38", Version: "01"},
		Written:    domain.ObjectRef{Container: "in-process", Path: "sap_batch/IW38", Name: "out.csv"},
		Rows:       3,
	}, nil
}

func (m *mockProcessor) Sweep(_ context.Context, req driving.SweepRequest) (*driving.SweepResult, error) {
	m.sweeps = append(m.sweeps, req)
	return m.sweepResult, m.sweepErr
}

func (m *mockProcessor) Preview(_ context.Context, req driving.Request) (*driving.Preview, error) {
	m.requests = append(m.requests, req)
	return m.preview, m.previewErr
}

type mockNamer struct {
	preview *driving.Preview
	err     error
	sink    string
}

func (m *mockNamer) Describe(_ string, sinkContainer string) (*driving.Preview, error) {
	m.sink = sinkContainer
	return m.preview, m.err
}

type mockSettings struct {
	settings    domain.AppSettings
	validateErr error
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Validate() error {
	return m.validateErr
}

func (m *mockSettings) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

type mockWatcher struct {
	refs      []domain.ObjectRef
	container string
	prefix    string
}

func (m *mockWatcher) Watch(_ context.Context, container, prefix string) (<-chan domain.ObjectRef, <-chan error, error) {
	m.container = container
	m.prefix = prefix
	refs := make(chan domain.ObjectRef, len(m.refs))
	for _, r := range m.refs {
		refs <- r
	}
	close(refs)
	errs := make(chan error)
	close(errs)
	return refs, errs, nil
}

// execute runs the root command with services installed and returns its
// output. Flag variables are reset so tests do not leak into each other.
func execute(t *testing.T, s *Services, args ...string) (string, error) {
	t.Helper()

	SetServices(s)
	sourcePath, sourceContainer, sinkContainer = "", "", ""
	servePort, inspectRows = 0, 5
	defer SetServices(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func samplePreview(withTable bool) *driving.Preview {
	p := &driving.Preview{
		Descriptor: domain.FileDescriptor{
			Event: "Carseland 2021", Transaction: "IW38", Version: "01", Date: "20200606", Step: "Step 1",
		},
		Destination: domain.DestinationTarget{
			Container: "in-process", Path: "sap_batch/IW38", Filename: "Carseland 2021-IW38_01-20200606-Step 1",
		},
		FilenameColumn: "Carseland 2021/IW38/20200606_Step 1.csv",
	}
	if withTable {
		p.Table = &domain.Table{
			Header: []string{"Order", "filename"},
			Rows:   [][]string{{"4001", "x.csv"}, {"4002", "x.csv"}, {"4003", "x.csv"}},
		}
	}
	return p
}
