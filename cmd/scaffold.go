package cmd

import (
	"fmt"
	"io"
	"os"

	"treekit/pkg/scaffold"
	"treekit/pkg/tree"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scaffoldCmd materializes a tree diagram as directories and empty files.
var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <structure-file> <target-path>",
	Short: "Create a project structure from a tree-like diagram",
	Long: dedent.Dedent(`
		Scaffold reads a tree-like text diagram and creates the corresponding
		directories and empty files under the target path. Use '-' as the
		structure file to read from stdin.

		Diagram format:
		    Proj/
		    ├── main.py
		    └── module/
		        └── util.py

		Names ending in '/' become directories; everything else becomes an
		empty file. Both Unicode connectors (├──/└──) and the ASCII forms
		(|--/` + "`--" + `) are accepted, as is plain indentation. Existing
		paths are left untouched unless --force is given.`),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		structureFile, targetPath := args[0], args[1]

		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		var r io.Reader
		if structureFile == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(structureFile)
			if err != nil {
				return fmt.Errorf("opening structure file %q: %w", structureFile, err)
			}
			defer f.Close()
			r = f
		}

		entries, err := tree.Parse(r)
		if err != nil {
			return fmt.Errorf("parsing structure: %w", err)
		}
		if len(entries) == 0 {
			return fmt.Errorf("structure file %q contains no entries", structureFile)
		}

		stats, err := scaffold.Apply(entries, scaffold.Options{
			TargetPath: targetPath,
			DryRun:     dryRun,
			Force:      force,
		}, logger)
		if err != nil {
			return err
		}

		logger.Info("Scaffold completed",
			zap.String("target", targetPath),
			zap.Int("dirsCreated", stats.DirsCreated),
			zap.Int("filesCreated", stats.FilesCreated),
			zap.Int("skipped", stats.Skipped),
			zap.Bool("dryRun", dryRun))
		return nil
	},
}

func init() {
	scaffoldCmd.Flags().Bool("dry-run", false, "Show what would be created without touching the filesystem")
	scaffoldCmd.Flags().Bool("force", false, "Truncate files that already exist")

	RootCmd.AddCommand(scaffoldCmd)
}
