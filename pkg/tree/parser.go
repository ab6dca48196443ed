package tree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedTree reports a diagram whose indentation is inconsistent:
// a line skips a nesting level, descends into a file, or carries an indent
// that is not a whole number of indentation units.
var ErrMalformedTree = errors.New("malformed tree")

// ErrInvalidName reports an entry name that is not a single path segment.
var ErrInvalidName = errors.New("invalid entry name")

// Branch connector markers, Unicode and ASCII. The spaced variants are
// checked first so the trailing space is consumed with the marker.
var connectorMarkers = []string{
	"├── ", "└── ", "|-- ", "`-- ", "+-- ",
	"├──", "└──", "|--", "`--", "+--",
}

// defaultIndentWidth is used when a diagram never shows leading indentation
// before the first connector, so no unit can be detected.
const defaultIndentWidth = 4

// Parse reads a tree-like text diagram and returns the entries in input
// order. It supports box-drawing connectors (├──/└──) as well as the ASCII
// forms emitted by tree -A (|--/`--). Blank lines, connector-only lines and
// tree(1) summary lines ("N directories, M files") are skipped.
//
// Depth is derived from indentation width: each run of one indentation unit
// (detected from the first indented line) counts one level, and a branch
// connector counts one more. A name ending in '/' is a directory; everything
// else is a file. Parsing performs no filesystem access.
func Parse(r io.Reader) ([]Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 1024*1024)

	var entries []Entry
	var openDirs []string // names of currently open ancestor directories
	unitWidth := 0
	lineNum := 0

	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		prefix, name, hasConnector := splitLine(line)
		if name == "" || (!hasConnector && isConnectorOnly(name)) {
			// Connector glyphs with no name, e.g. a lone "│".
			continue
		}
		if !hasConnector && isTreeSummary(name) {
			continue
		}

		cols := indentColumns(prefix)
		if unitWidth == 0 && cols > 0 {
			unitWidth = cols
		}

		depth, err := resolveDepth(cols, unitWidth, hasConnector)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		kind := File
		if strings.HasSuffix(name, "/") {
			kind = Directory
			name = strings.TrimSuffix(name, "/")
		}
		if err := validateName(name); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		// A valid diagram never descends more than one level at a time, and
		// only below a directory. openDirs holds exactly one name per open
		// level, so both violations surface as depth > len(openDirs).
		if depth > len(openDirs) {
			return nil, fmt.Errorf("line %d: entry %q at depth %d cannot follow depth %d: %w",
				lineNum, name, depth, lastDepth(entries), ErrMalformedTree)
		}
		openDirs = openDirs[:depth]
		if kind == Directory {
			openDirs = append(openDirs, name)
		}

		entries = append(entries, Entry{Depth: depth, Name: name, Kind: kind})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading diagram: %w", err)
	}

	return entries, nil
}

// splitLine separates the indentation prefix from the entry name. When a
// branch connector is present the name starts after it; otherwise the name
// is the line minus leading whitespace.
func splitLine(line string) (prefix, name string, hasConnector bool) {
	idx := -1
	marker := ""
	for _, m := range connectorMarkers {
		if i := strings.Index(line, m); i != -1 && (idx == -1 || i < idx) {
			idx = i
			marker = m
		}
	}
	if idx == -1 {
		trimmed := strings.TrimLeft(line, " \t")
		return line[:len(line)-len(trimmed)], strings.TrimSpace(trimmed), false
	}
	return line[:idx], strings.TrimSpace(line[idx+len(marker):]), true
}

// indentColumns measures the display width of an indentation prefix.
// Vertical connector segments (│, |) occupy one column each, the same as a
// space, so "│   " and "    " both measure four.
func indentColumns(prefix string) int {
	cols := 0
	for range prefix {
		cols++
	}
	return cols
}

// resolveDepth converts an indent width into a nesting level. The connector
// itself consumes one level, so "├── name" directly under an unindented root
// sits at depth 1.
func resolveDepth(cols, unitWidth int, hasConnector bool) (int, error) {
	if cols == 0 {
		if hasConnector {
			return 1, nil
		}
		return 0, nil
	}
	if unitWidth == 0 {
		unitWidth = defaultIndentWidth
	}
	if cols%unitWidth != 0 {
		return 0, fmt.Errorf("indent of %d columns is not a multiple of the %d-column unit: %w",
			cols, unitWidth, ErrMalformedTree)
	}
	depth := cols / unitWidth
	if hasConnector {
		depth++
	}
	return depth, nil
}

// validateName ensures a name is one path segment: no separators, not a
// dot-path, not empty.
func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("empty name: %w", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%q contains a path separator: %w", name, ErrInvalidName)
	}
	return nil
}

// isConnectorOnly reports whether a line held nothing but connector glyphs.
func isConnectorOnly(name string) bool {
	return strings.Trim(name, "│|└├─`+- \t") == ""
}

// isTreeSummary recognizes the closing "N directories, M files" line that
// tree(1) appends, so its output can be piped in unedited.
func isTreeSummary(line string) bool {
	s := strings.ToLower(line)
	return (strings.Contains(s, "directories") || strings.Contains(s, "directory")) &&
		(strings.Contains(s, "files") || strings.Contains(s, "file"))
}

func lastDepth(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	return entries[len(entries)-1].Depth
}
