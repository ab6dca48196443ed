package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"
)

// System directories that must never be used as a scaffold target. Matching
// is on the absolute path or any path directly inside one of these roots.
var systemDirs = []string{
	"/", "/bin", "/boot", "/dev", "/etc", "/lib", "/lib64",
	"/media", "/mnt", "/proc", "/run", "/sbin", "/srv", "/sys", "/usr", "/var",
}

// IsSystemPath reports whether path resolves to a critical system directory.
func IsSystemPath(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return true
	}
	abs = filepath.Clean(abs)
	for _, dir := range systemDirs {
		if abs == dir {
			return true
		}
	}
	return false
}

// safeJoin joins root with the given parts and verifies the result stays
// inside root.
func safeJoin(root string, parts ...string) (string, error) {
	p := filepath.Join(append([]string{root}, parts...)...)
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(p))
	if err != nil {
		return "", err
	}
	relSl := filepath.ToSlash(rel)
	if relSl == ".." || strings.HasPrefix(relSl, "../") {
		return "", fmt.Errorf("path %s escapes target root %s", p, root)
	}
	return filepath.Clean(p), nil
}
