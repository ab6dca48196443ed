package dump

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ddddddO/gtree"
)

// BuildStructure renders the included files as a connector-style tree rooted
// at the project directory name. Directories carry a trailing slash; the
// paths must be relative, slash-separated and sorted.
func BuildStructure(root string, files []string) (string, error) {
	rootNode := gtree.NewRoot(filepath.Base(root) + "/")
	dirNodes := map[string]*gtree.Node{"": rootNode}

	for _, file := range files {
		parent := rootNode
		segments := strings.Split(file, "/")

		for i := 0; i < len(segments)-1; i++ {
			dirPath := strings.Join(segments[:i+1], "/")
			node, ok := dirNodes[dirPath]
			if !ok {
				node = parent.Add(segments[i] + "/")
				dirNodes[dirPath] = node
			}
			parent = node
		}

		parent.Add(segments[len(segments)-1])
	}

	var sb strings.Builder
	if err := gtree.OutputProgrammably(&sb, rootNode); err != nil {
		return "", fmt.Errorf("rendering structure tree: %w", err)
	}
	return sb.String(), nil
}
