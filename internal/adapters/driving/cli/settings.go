package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show application settings",
	Long: `Show the resolved settings after the config file and environment
overrides have been applied. Secrets are masked.`,
	RunE: runSettingsShow,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the settings are usable",
	RunE:  runSettingsValidate,
}

func init() {
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	// Storage settings
	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	switch settings.Storage.Backend {
	case domain.StorageAzure:
		if settings.Storage.AzureConnectionString != "" {
			cmd.Printf("  Connection string: %s\n", maskSecret(settings.Storage.AzureConnectionString))
		} else {
			cmd.Printf("  Connection string: (not set)\n")
		}
	case domain.StorageS3:
		cmd.Printf("  Region: %s\n", orNone(settings.Storage.S3Region))
		cmd.Printf("  Endpoint: %s\n", orNone(settings.Storage.S3Endpoint))
	case domain.StorageFilesystem:
		cmd.Printf("  Root: %s\n", settings.Storage.FilesystemRoot)
	}
	status := "configured"
	if !settings.Storage.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	// Sink settings
	cmd.Println("[Containers]")
	cmd.Printf("  Raw: %s\n", settings.Sink.RawContainer)
	cmd.Printf("  In-process: %s\n", settings.Sink.InProcessContainer)
	cmd.Println()
	cmd.Println("[Sink]")
	cmd.Printf("  Root: %s\n", settings.Sink.Root)
	cmd.Printf("  Group by transaction: %t\n", settings.Sink.GroupByTransaction)
	cmd.Printf("  Format: %s\n", settings.Sink.Format)
	cmd.Println()

	// Naming settings
	cmd.Println("[Naming]")
	cmd.Printf("  Prefix: %q\n", settings.Naming.Prefix)
	cmd.Printf("  Timezone: %s\n", settings.Naming.Timezone)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Port: %d\n", settings.Server.Port)
	cmd.Println()

	cmd.Println("[Sweep]")
	if settings.Sweep.Rate > 0 {
		cmd.Printf("  Rate: %g/s\n", settings.Sweep.Rate)
	} else {
		cmd.Println("  Rate: unlimited")
	}
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Validate(); err != nil {
		return err
	}
	cmd.Println("Settings are valid.")
	return nil
}

// maskSecret hides all but the ends of a secret.
func maskSecret(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
