// Command cubature adaptively integrates built-in test functions over
// hyperrectangles and prints node/weight tables for the supported rules.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cubature/internal/logging"
)

var verbose bool

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "cubature",
	Short: "Adaptive multidimensional numerical integration",
	Long: `cubature estimates integrals of vector-valued functions over
axis-aligned hyperrectangles to a requested tolerance.

A fixed cubature rule with embedded error estimation (Gauss-Kronrod,
Genz-Malik, or a product of 1-D rules) supplies per-region estimates; the
adaptive driver repeatedly bisects whichever region contributes the most
error until the tolerance is met or the subdivision budget runs out.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Init(verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(integrateCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
