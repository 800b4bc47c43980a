package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driving"
)

var inspectRows int

var inspectCmd = &cobra.Command{
	Use:   "inspect <filename>",
	Short: "Parse a raw export without moving it",
	Long: `Reads and parses the raw export <filename> and prints the derived
destination with the first rows of the table. Nothing is written or deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var parseNameCmd = &cobra.Command{
	Use:   "parse-name <filename>",
	Short: "Show the fields and destination derived from a filename",
	Args:  cobra.ExactArgs(1),
	RunE:  runParseName,
}

func init() {
	addSourceFlags(inspectCmd)
	inspectCmd.Flags().IntVarP(&inspectRows, "rows", "n", 5, "number of rows to print")
	parseNameCmd.Flags().StringVar(&sinkContainer, "sink-container", "", "destination container (default from config)")
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(parseNameCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	preview, err := processor.Preview(cmd.Context(), driving.Request{
		SourceContainer: sourceContainer,
		SourcePath:      sourcePath,
		Filename:        args[0],
		SinkContainer:   sinkContainer,
	})
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	printPreview(cmd, preview)
	if preview.Table == nil {
		return nil
	}

	cmd.Println()
	cmd.Printf("Columns (%d):\n", len(preview.Table.Header))
	cmd.Println("  " + strings.Join(preview.Table.Header, "\t"))
	cmd.Printf("Rows (%d):\n", preview.Table.NumRows())
	for i, row := range preview.Table.Rows {
		if i >= inspectRows {
			cmd.Printf("  ... %d more\n", preview.Table.NumRows()-inspectRows)
			break
		}
		cmd.Println("  " + strings.Join(row, "\t"))
	}
	return nil
}

func runParseName(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if namer == nil {
		return errNotConfigured
	}

	preview, err := namer.Describe(args[0], sinkContainer)
	if err != nil {
		return err
	}
	printPreview(cmd, preview)
	return nil
}

func printPreview(cmd *cobra.Command, p *driving.Preview) {
	d := p.Descriptor
	cmd.Printf("Event:           %s\n", d.Event)
	cmd.Printf("Transaction:     %s\n", d.Transaction)
	cmd.Printf("Version:         %s\n", d.Version)
	cmd.Printf("Date:            %s\n", d.Date)
	cmd.Printf("Step:            %s\n", orNone(d.Step))
	cmd.Printf("Function:        %s\n", d.Function())
	cmd.Printf("Destination:     %s\n", destinationString(p.Destination))
	cmd.Printf("Filename column: %s\n", p.FilenameColumn)
}

func destinationString(t domain.DestinationTarget) string {
	return t.Ref("").String()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
