package cmd

import (
	"fmt"
	"strings"

	"treekit/pkg/dump"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
)

// dumpCmd walks a source tree and writes its structure plus file contents
// into one Markdown document.
var dumpCmd = &cobra.Command{
	Use:   "dump <project-path>",
	Short: "Collect a codebase into a single Markdown document",
	Long: dedent.Dedent(`
		Dump walks the project directory and writes a Markdown document
		containing the directory structure followed by the contents of every
		source file, each in a fenced code block.

		Blacklisted directory names (virtual environments, VCS metadata,
		caches) are skipped entirely, and a .treekitignore file in the project
		root can exclude further paths using gitignore syntax. Binary files
		and files over the size limit are skipped.`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		blacklist, err := cmd.Flags().GetStringSlice("blacklist")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		exts, err := cmd.Flags().GetString("ext")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		maxSizeKB, err := cmd.Flags().GetInt("max-size-kb")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		return dump.Run(dump.Options{
			Path:          args[0],
			Output:        output,
			Blacklist:     blacklist,
			Extensions:    splitExtensions(exts),
			MaxFileSizeKB: maxSizeKB,
			MaxWorkers:    workers,
			Verbose:       verbose,
		}, logger)
	},
}

// splitExtensions parses a comma-separated extension list, normalizing each
// entry to a leading dot.
func splitExtensions(s string) []string {
	var exts []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		exts = append(exts, part)
	}
	return exts
}

func init() {
	dumpCmd.Flags().StringP("output", "o", "project_code.md", "Output Markdown file")
	dumpCmd.Flags().StringSlice("blacklist", nil, "Directory names to skip (defaults to VCS, venv and cache directories)")
	dumpCmd.Flags().String("ext", "", "Comma-separated list of file extensions to include (default: all text files)")
	dumpCmd.Flags().Int("max-size-kb", 1024, "Maximum size of files to include, in KB")
	dumpCmd.Flags().Int("workers", 0, "Number of concurrent file readers (0 = number of CPUs)")

	RootCmd.AddCommand(dumpCmd)
}
