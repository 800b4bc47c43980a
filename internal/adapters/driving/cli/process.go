package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sapbatch/internal/core/ports/driving"
)

// Flags shared by the commands that address source objects.
var (
	sourcePath      string
	sourceContainer string
	sinkContainer   string
)

var processCmd = &cobra.Command{
	Use:   "process <filename>",
	Short: "Process one raw export",
	Long: `Reads the raw export <filename> from the source folder, writes the
transformed table to the in-process container and deletes the source.

The source is kept when the write fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	addSourceFlags(processCmd)
	rootCmd.AddCommand(processCmd)
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sourcePath, "path", "", "folder of the raw export within the source container")
	cmd.Flags().StringVar(&sourceContainer, "source-container", "", "source container (default from config)")
	cmd.Flags().StringVar(&sinkContainer, "sink-container", "", "destination container (default from config)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	res, err := processor.Process(cmd.Context(), driving.Request{
		SourceContainer: sourceContainer,
		SourcePath:      sourcePath,
		Filename:        args[0],
		SinkContainer:   sinkContainer,
	})
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	cmd.Println(res.Summary())
	cmd.Printf("Rows: %d\n", res.Rows)
	return nil
}
