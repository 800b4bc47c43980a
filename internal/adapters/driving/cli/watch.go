package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/custodia-labs/sapbatch/internal/core/ports/driving"
	"github.com/custodia-labs/sapbatch/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process raw exports as they land",
	Long: `Watches the source folder and processes each new export once it has
been fully written. Requires the filesystem storage backend. Failures are
reported and the watch continues.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	addSourceFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if blobWatcher == nil {
		return errors.New("watch requires the filesystem storage backend")
	}

	container := sourceContainer
	if container == "" {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		container = settings.Sink.RawContainer
	}

	ctx := cmd.Context()
	refs, errs, err := blobWatcher.Watch(ctx, container, sourcePath)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	cmd.Printf("Watching %s/%s\n", container, sourcePath)

	for {
		select {
		case ref, ok := <-refs:
			if !ok {
				return nil
			}
			res, err := processor.Process(ctx, driving.Request{
				SourceContainer: ref.Container,
				SourcePath:      ref.Path,
				Filename:        ref.Name,
				SinkContainer:   sinkContainer,
			})
			if err != nil {
				cmd.Printf("FAILED %s: %v\n", ref, err)
				continue
			}
			cmd.Println(res.Summary())
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}
