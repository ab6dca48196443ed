package dump

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// Run walks the project, reads every included source file and writes the
// combined Markdown document to opts.Output.
func Run(opts Options, logger *zap.Logger) error {
	startTime := time.Now()

	root, err := filepath.Abs(opts.Path)
	if err != nil {
		return fmt.Errorf("resolving project path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("project path %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project path %s is not a directory", root)
	}

	logger.Info("Starting dump", zap.String("path", root), zap.String("output", opts.Output))

	if len(opts.Blacklist) == 0 {
		opts.Blacklist = DefaultBlacklist
	}

	gi := loadIgnoreFile(root, logger)

	files, err := Collect(root, opts, gi, logger)
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("No files to dump after filtering")
		return nil
	}
	sort.Strings(files)

	structure, err := BuildStructure(root, files)
	if err != nil {
		return err
	}

	contents := ReadFilesConcurrently(root, files, opts.MaxWorkers, logger)
	sort.Slice(contents, func(i, j int) bool {
		return contents[i].Path < contents[j].Path
	})

	if dir := filepath.Dir(opts.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	if err := WriteDocument(opts.Output, structure, contents, logger); err != nil {
		return err
	}

	logger.Info("Dump completed",
		zap.String("output", opts.Output),
		zap.Int("totalFiles", len(contents)),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}

// loadIgnoreFile compiles the optional per-project ignore file. A missing
// file is not an error.
func loadIgnoreFile(root string, logger *zap.Logger) *ignore.GitIgnore {
	path := filepath.Join(root, IgnoreFileName)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		logger.Warn("Failed to load ignore file", zap.String("file", path), zap.Error(err))
		return nil
	}
	logger.Debug("Loaded ignore file", zap.String("file", path))
	return gi
}
