// Package dump walks a source tree and emits a single Markdown document
// containing the directory structure plus the contents of every source file.
package dump

// Options holds the configuration for a dump run.
type Options struct {
	Path          string   // Root of the project to dump
	Output        string   // Destination path for the Markdown document
	Blacklist     []string // Directory names excluded from traversal
	Extensions    []string // When non-empty, only files with these extensions are included
	MaxFileSizeKB int      // Files larger than this are skipped
	MaxWorkers    int      // Concurrent file readers; <=0 means NumCPU
	Verbose       bool     // Log skipped files
}

// FileContent is one source file rendered as a Markdown section.
type FileContent struct {
	Path    string // Path relative to the project root
	Content string // Fully formatted Markdown section
}

// DefaultBlacklist lists directory names skipped when the caller provides
// none: virtual environments, VCS metadata, caches and build output.
var DefaultBlacklist = []string{
	".git", "venv", ".venv", "env", "node_modules", "__pycache__",
	"logs", "dist", "build", ".tox", ".mypy_cache", ".pytest_cache",
}

// IgnoreFileName is the optional per-project ignore file, using gitignore
// syntax, consulted in addition to the directory blacklist.
const IgnoreFileName = ".treekitignore"
