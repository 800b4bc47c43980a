// Command sapbatch moves SAP batch job exports into the in-process area.
package main

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/custodia-labs/sapbatch/internal/adapters/driven/config/env"
	"github.com/custodia-labs/sapbatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sapbatch/internal/adapters/driven/storage"
	"github.com/custodia-labs/sapbatch/internal/adapters/driving/cli"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
	"github.com/custodia-labs/sapbatch/internal/core/services"
	"github.com/custodia-labs/sapbatch/internal/encoders"
	"github.com/custodia-labs/sapbatch/internal/logger"
	"github.com/custodia-labs/sapbatch/internal/naming"
	"github.com/custodia-labs/sapbatch/internal/parsers"
)

func main() {
	cli.SetBootstrap(bootstrap)
	err := cli.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters and services from configuration.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	// 1. Configuration: TOML file with environment overrides
	fileStore, err := file.NewConfigStore(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	settingsService := services.NewSettingsService(env.NewConfigStore(fileStore))
	if err := settingsService.Validate(); err != nil {
		return nil, err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	logger.SetVerbose(opts.Verbose || settings.Verbose)

	// 2. Storage
	store, err := storage.NewBlobStore(&settings.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// 3. Encoder
	encoder, err := encoders.NewDefaultRegistry().Build(settings.Sink.Format, nil)
	if err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}

	// 4. Filename convention
	loc, err := time.LoadLocation(settings.Naming.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	names := naming.NewParser(loc, naming.WithPrefix(settings.Naming.Prefix))

	// 5. Processor
	processor := services.NewProcessor(
		store,
		parsers.NewDefaultRegistry(),
		encoder,
		names,
		services.ProcessorConfigFromSettings(settings),
	)

	s := &cli.Services{
		Processor: processor,
		Namer:     processor,
		Settings:  settingsService,
	}
	if w, ok := store.(driven.BlobWatcher); ok {
		s.Watcher = w
	}
	return s, nil
}
