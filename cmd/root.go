package cmd

import (
	"treekit/pkg/logging"
	"treekit/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.Logger

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "treekit",
	Short: "treekit scaffolds project structures and dumps codebases to Markdown",
	Long: `treekit turns tree-like text diagrams into real directory structures,
and walks existing source trees to collect their contents into a single
Markdown document.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		if verbose {
			// Switch the global logger to the development config so debug
			// progress reaches the terminal.
			if err := logging.Setup(true, "treekit", version.Get().Version); err != nil {
				return err
			}
			logger = logging.Logger
		}
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(l *zap.Logger) error {
	logger = l
	return RootCmd.Execute()
}
