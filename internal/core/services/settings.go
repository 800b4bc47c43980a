package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyStorageBackend     = "storage.backend"
	KeyAzureConnection    = "storage.azure.connection_string"
	KeyS3Region           = "storage.s3.region"
	KeyS3Endpoint         = "storage.s3.endpoint"
	KeyFilesystemRoot     = "storage.filesystem.root"
	KeyRawContainer       = "containers.raw"
	KeyInProcessContainer = "containers.in_process"
	KeySinkRoot           = "sink.root"
	KeySinkGroupByTx      = "sink.group_by_transaction"
	KeySinkFormat         = "sink.format"
	KeyNamingPrefix       = "naming.prefix"
	KeyNamingTimezone     = "naming.timezone"
	KeyServerPort         = "server.port"
	KeySweepRate          = "sweep.rate"
	KeyLogVerbose         = "log.verbose"
)

// SettingsService reads application settings from a config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Unset keys take their
// defaults; invalid values are kept so Validate can report them.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend:               domain.StorageBackend(s.getString(KeyStorageBackend, defaults.Storage.Backend.String())),
			AzureConnectionString: s.configStore.GetString(KeyAzureConnection),
			S3Region:              s.configStore.GetString(KeyS3Region),
			S3Endpoint:            s.configStore.GetString(KeyS3Endpoint),
			FilesystemRoot:        s.configStore.GetString(KeyFilesystemRoot),
		},
		Sink: domain.SinkSettings{
			RawContainer:       s.getString(KeyRawContainer, defaults.Sink.RawContainer),
			InProcessContainer: s.getString(KeyInProcessContainer, defaults.Sink.InProcessContainer),
			Root:               s.getString(KeySinkRoot, defaults.Sink.Root),
			GroupByTransaction: s.getBool(KeySinkGroupByTx, defaults.Sink.GroupByTransaction),
			Format:             domain.OutputFormat(s.getString(KeySinkFormat, defaults.Sink.Format.String())),
		},
		Naming: domain.NamingSettings{
			Prefix:   s.getString(KeyNamingPrefix, defaults.Naming.Prefix),
			Timezone: s.getString(KeyNamingTimezone, defaults.Naming.Timezone),
		},
		Server: domain.ServerSettings{
			Port: s.getInt(KeyServerPort, defaults.Server.Port),
		},
		Sweep: domain.SweepSettings{
			Rate: s.configStore.GetFloat(KeySweepRate),
		},
		Verbose: s.getBool(KeyLogVerbose, defaults.Verbose),
	}

	return settings, nil
}

// typedKeys lists the non-string keys and the parser a string value for
// them must satisfy.
var typedKeys = []struct {
	key   string
	kind  string
	parse func(string) error
}{
	{KeyServerPort, "integer", func(v string) error { _, err := strconv.Atoi(v); return err }},
	{KeySweepRate, "number", func(v string) error { _, err := strconv.ParseFloat(v, 64); return err }},
	{KeySinkGroupByTx, "boolean", func(v string) error { _, err := strconv.ParseBool(v); return err }},
	{KeyLogVerbose, "boolean", func(v string) error { _, err := strconv.ParseBool(v); return err }},
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	for _, tk := range typedKeys {
		raw, ok := s.configStore.Get(tk.key)
		if !ok {
			continue
		}
		if str, isString := raw.(string); isString {
			if err := tk.parse(strings.TrimSpace(str)); err != nil {
				return fmt.Errorf("%w: %s: %q is not a valid %s", domain.ErrInvalidInput, tk.key, str, tk.kind)
			}
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, settings.Storage.Backend)
	}
	if !settings.Storage.IsConfigured() {
		return fmt.Errorf("%w: %s backend is not configured", domain.ErrInvalidInput, settings.Storage.Backend.Description())
	}
	if !settings.Sink.Format.IsValid() {
		return fmt.Errorf("%w: sink format %q", domain.ErrInvalidInput, settings.Sink.Format)
	}
	if settings.Sink.InProcessContainer == "" || settings.Sink.RawContainer == "" {
		return fmt.Errorf("%w: containers must not be empty", domain.ErrInvalidInput)
	}
	if _, err := time.LoadLocation(settings.Naming.Timezone); err != nil {
		return fmt.Errorf("%w: naming timezone %q: %v", domain.ErrInvalidInput, settings.Naming.Timezone, err)
	}
	if settings.Server.Port < 0 || settings.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d", domain.ErrInvalidInput, settings.Server.Port)
	}
	if settings.Sweep.Rate < 0 {
		return fmt.Errorf("%w: sweep rate %v", domain.ErrInvalidInput, settings.Sweep.Rate)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
