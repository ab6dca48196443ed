// Package scaffold materializes parsed tree entries as directories and
// empty files under a target root.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"treekit/pkg/tree"

	"go.uber.org/zap"
)

// Options controls how entries are applied to the filesystem.
type Options struct {
	TargetPath string // Root directory the structure is created under
	DryRun     bool   // Log planned operations without touching the filesystem
	Force      bool   // Truncate files that already exist instead of keeping them
	DirPerm    os.FileMode
	FilePerm   os.FileMode
}

// Stats summarizes what Apply did.
type Stats struct {
	DirsCreated  int
	FilesCreated int
	Skipped      int // entries that already existed and were left untouched
}

// Apply creates the parsed entries under opts.TargetPath in emission order.
// Directories are created idempotently; files are created empty and, unless
// Force is set, pre-existing files are left untouched. Entries must be
// processed in order since later entries rely on ancestor directories
// created by earlier ones. Any filesystem failure aborts the remaining
// entries; nothing already created is rolled back.
func Apply(entries []tree.Entry, opts Options, logger *zap.Logger) (Stats, error) {
	var stats Stats

	if opts.DirPerm == 0 {
		opts.DirPerm = 0o755
	}
	if opts.FilePerm == 0 {
		opts.FilePerm = 0o644
	}

	root, err := filepath.Abs(opts.TargetPath)
	if err != nil {
		return stats, fmt.Errorf("resolving target path: %w", err)
	}
	if IsSystemPath(root) {
		return stats, fmt.Errorf("target path %s is a system directory", root)
	}

	if opts.DryRun {
		logger.Info("Dry run: target directory", zap.String("path", root))
	} else if err := os.MkdirAll(root, opts.DirPerm); err != nil {
		return stats, fmt.Errorf("creating target directory %s: %w", root, err)
	}

	// Stack of open ancestor directory names, one per depth level. The
	// parser guarantees depths never skip a level, but a defensive check
	// stays since Apply accepts any entry slice.
	var stack []string

	for _, e := range entries {
		if e.Depth > len(stack) {
			return stats, fmt.Errorf("entry %q at depth %d exceeds open directory chain of %d",
				e.Name, e.Depth, len(stack))
		}
		stack = stack[:e.Depth]

		target, err := safeJoin(root, append(append([]string{}, stack...), e.Name)...)
		if err != nil {
			return stats, err
		}

		if e.Kind == tree.Directory {
			if err := ensureDir(target, opts, &stats, logger); err != nil {
				return stats, err
			}
			stack = append(stack, e.Name)
			continue
		}

		if err := ensureFile(target, opts, &stats, logger); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

func ensureDir(path string, opts Options, stats *Stats, logger *zap.Logger) error {
	info, err := os.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		logger.Debug("Directory already exists", zap.String("path", path))
		stats.Skipped++
		return nil

	case err == nil:
		return fmt.Errorf("path conflict: %s exists and is not a directory", path)

	case os.IsNotExist(err):
		if opts.DryRun {
			logger.Info("Dry run: mkdir", zap.String("path", path))
			stats.DirsCreated++
			return nil
		}
		if err := os.MkdirAll(path, opts.DirPerm); err != nil {
			return fmt.Errorf("creating directory %s: %w", path, err)
		}
		logger.Debug("Created directory", zap.String("path", path))
		stats.DirsCreated++
		return nil

	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}

func ensureFile(path string, opts Options, stats *Stats, logger *zap.Logger) error {
	info, err := os.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("path conflict: %s exists and is a directory", path)

	case err == nil:
		if !opts.Force {
			logger.Debug("File already exists", zap.String("path", path))
			stats.Skipped++
			return nil
		}
		if opts.DryRun {
			logger.Info("Dry run: truncate", zap.String("path", path))
			stats.FilesCreated++
			return nil
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, opts.FilePerm)
		if err != nil {
			return fmt.Errorf("truncating %s: %w", path, err)
		}
		_ = f.Close()
		logger.Debug("Truncated file", zap.String("path", path))
		stats.FilesCreated++
		return nil

	case os.IsNotExist(err):
		if opts.DryRun {
			logger.Info("Dry run: touch", zap.String("path", path))
			stats.FilesCreated++
			return nil
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, opts.FilePerm)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		_ = f.Close()
		logger.Debug("Created file", zap.String("path", path))
		stats.FilesCreated++
		return nil

	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}
