// Package tree parses tree-like text diagrams into an ordered list of
// directory and file entries.
package tree

// Kind classifies an entry as a file or a directory.
type Kind int

const (
	File Kind = iota
	Directory
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// Entry is one parsed node of the diagram. Entries are emitted in input
// order, which is also the order they must be created in: every entry at
// depth > 0 relies on the nearest preceding entry at depth-1 being its
// parent directory.
type Entry struct {
	Depth int    // Nesting level, 0 at the root
	Name  string // Single path segment, trailing separator stripped
	Kind  Kind   // Directory when the diagram name ended with '/'
}
