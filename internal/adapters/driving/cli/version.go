package cli

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sapbatch/internal/encoders"
	"github.com/custodia-labs/sapbatch/internal/parsers"
)

// Build metadata, set with -ldflags "-X".
var (
	commit    = "none"
	buildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information and supported transactions",
	Long: `Prints the sapbatch version, the commit and date it was built from, and
the transactions and output formats compiled into this binary.`,
	Args: cobra.NoArgs,
	Run:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) {
	if versionShort {
		cmd.Println(version)
		return
	}

	formats := encoders.NewDefaultRegistry().Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}

	cmd.Printf("sapbatch version %s\n", version)
	cmd.Printf("  Commit:       %s\n", commit)
	cmd.Printf("  Built:        %s\n", buildDate)
	cmd.Printf("  Go:           %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	cmd.Printf("  Transactions: %s\n", strings.Join(parsers.NewDefaultRegistry().Transactions(), ", "))
	cmd.Printf("  Formats:      %s\n", strings.Join(names, ", "))
}
