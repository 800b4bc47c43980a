package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sapbatch/internal/core/ports/driving"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Process every raw export in a folder",
	Long: `Processes each object directly under --path in name order. A failing
object is reported and left in place; the rest are still processed.`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	addSourceFlags(sweepCmd)
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	res, err := processor.Sweep(cmd.Context(), driving.SweepRequest{
		SourceContainer: sourceContainer,
		SourcePath:      sourcePath,
		SinkContainer:   sinkContainer,
	})
	if res == nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	for i := range res.Processed {
		cmd.Println(res.Processed[i].Summary())
	}

	names := make([]string, 0, len(res.Failed))
	for name := range res.Failed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.Printf("FAILED %s: %v\n", name, res.Failed[name])
	}

	total := len(res.Processed) + len(res.Failed)
	cmd.Printf("Processed %d of %d objects.\n", len(res.Processed), total)
	if err != nil && len(res.Failed) == 0 {
		return fmt.Errorf("sweep interrupted: %w", err)
	}
	if err != nil {
		return fmt.Errorf("sweep: %d of %d objects failed", len(res.Failed), total)
	}
	return nil
}
