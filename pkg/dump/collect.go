package dump

import (
	"io/fs"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// Collect walks the project root and returns the relative paths of files to
// include in the document, in walk order. Blacklisted directory names are
// skipped entirely; individual files are filtered by ignore patterns,
// extension, size and binary content.
func Collect(root string, opts Options, gi *ignore.GitIgnore, logger *zap.Logger) ([]string, error) {
	blacklist := make(map[string]struct{}, len(opts.Blacklist))
	for _, name := range opts.Blacklist {
		blacklist[name] = struct{}{}
	}

	extSet := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := blacklist[name]; skip || strings.HasPrefix(name, ".") {
				logger.Debug("Skipping excluded directory", zap.String("directory", path))
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if gi != nil && gi.MatchesPath(relPath) {
			if opts.Verbose {
				logger.Debug("File matches ignore pattern", zap.String("file", relPath))
			}
			return nil
		}

		if len(extSet) > 0 {
			if _, ok := extSet[strings.ToLower(filepath.Ext(name))]; !ok {
				return nil
			}
		}

		if isCommonBinaryExtension(path) {
			if opts.Verbose {
				logger.Debug("Skipping file with binary extension", zap.String("file", relPath))
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("Failed to get file info during traversal", zap.String("file", path), zap.Error(err))
			return nil
		}
		if opts.MaxFileSizeKB > 0 && info.Size() > int64(opts.MaxFileSizeKB)*1024 {
			if opts.Verbose {
				logger.Debug("Skipping file due to size limit",
					zap.String("file", relPath),
					zap.Int64("sizeBytes", info.Size()),
					zap.Int("maxSizeKB", opts.MaxFileSizeKB))
			}
			return nil
		}

		isBinary, err := isBinaryFile(path)
		if err != nil {
			logger.Warn("Failed to check if file is binary", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isBinary {
			if opts.Verbose {
				logger.Debug("Skipping binary file", zap.String("file", relPath))
			}
			return nil
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Completed file collection", zap.Int("fileCount", len(files)))
	return files, nil
}
