// Package cli provides the sapbatch command line.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driving"
	"github.com/custodia-labs/sapbatch/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Global flags.
var (
	configPath string
	verbose    bool
)

// Services holds the core services the commands drive.
type Services struct {
	Processor driving.Processor
	Namer     driving.Namer
	Settings  driving.SettingsService

	// Watcher is nil when the storage backend cannot watch for new objects.
	Watcher driven.BlobWatcher
}

// Options are the global flag values passed to a Bootstrap.
type Options struct {
	ConfigPath string
	Verbose    bool
}

// Bootstrap builds the services once flags have been parsed.
type Bootstrap func(opts Options) (*Services, error)

var (
	processor       driving.Processor
	namer           driving.Namer
	settingsService driving.SettingsService
	blobWatcher     driven.BlobWatcher

	bootstrap Bootstrap
)

var errNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "sapbatch",
	Short: "Move SAP batch job exports into the in-process area",
	Long: `sapbatch reads raw SAP list exports from blob storage, turns them into
tab-delimited tables and writes them to the in-process container.

The source export is deleted only after its table has been written.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.sapbatch/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetBootstrap registers the function that builds services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs already-built services.
func SetServices(s *Services) {
	if s == nil {
		processor, namer, settingsService, blobWatcher = nil, nil, nil, nil
		return
	}
	processor = s.Processor
	namer = s.Namer
	settingsService = s.Settings
	blobWatcher = s.Watcher
}

// ensureServices runs the bootstrap if no services are installed yet.
func ensureServices() error {
	if processor != nil {
		return nil
	}
	if bootstrap == nil {
		return errNotConfigured
	}
	s, err := bootstrap(Options{ConfigPath: configPath, Verbose: verbose})
	if err != nil {
		return err
	}
	SetServices(s)
	if processor == nil {
		return errNotConfigured
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
