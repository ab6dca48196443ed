package scaffold

import (
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"treekit/pkg/tree"

	"go.uber.org/zap"
)

func mustParse(t *testing.T, input string) []tree.Entry {
	t.Helper()
	entries, err := tree.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return entries
}

func apply(t *testing.T, entries []tree.Entry, opts Options) Stats {
	t.Helper()
	stats, err := Apply(entries, opts, zap.NewNop())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return stats
}

// scan returns every path under root relative to it, directories suffixed
// with '/'.
func scan(t *testing.T, root string) []string {
	t.Helper()
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			rel += "/"
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir: %v", err)
	}
	sort.Strings(paths)
	return paths
}

const exampleDiagram = "Proj/\n" +
	"├── main.py\n" +
	"└── module/\n" +
	"    └── util.py\n"

func TestApplyExampleDiagram(t *testing.T) {
	t.Parallel()

	target := t.TempDir()
	stats := apply(t, mustParse(t, exampleDiagram), Options{TargetPath: target})

	want := []string{"Proj/", "Proj/main.py", "Proj/module/", "Proj/module/util.py"}
	if got := scan(t, target); !reflect.DeepEqual(got, want) {
		t.Errorf("created paths = %v, want %v", got, want)
	}
	if stats.DirsCreated != 2 || stats.FilesCreated != 2 {
		t.Errorf("stats = %+v, want 2 dirs and 2 files", stats)
	}

	info, err := os.Stat(filepath.Join(target, "Proj", "main.py"))
	if err != nil {
		t.Fatalf("stat main.py: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("main.py size = %d, want empty file", info.Size())
	}
}

func TestApplyRoundTrip(t *testing.T) {
	t.Parallel()

	entries := mustParse(t, exampleDiagram)
	target := t.TempDir()
	apply(t, entries, Options{TargetPath: target})

	// Rebuild (path, kind) pairs from the entries via the same stack walk.
	var expect []string
	var open []string
	for _, e := range entries {
		open = open[:e.Depth]
		p := strings.Join(append(append([]string{}, open...), e.Name), "/")
		if e.Kind == tree.Directory {
			expect = append(expect, p+"/")
			open = append(open, e.Name)
		} else {
			expect = append(expect, p)
		}
	}
	sort.Strings(expect)

	if got := scan(t, target); !reflect.DeepEqual(got, expect) {
		t.Errorf("rescan = %v, want %v", got, expect)
	}
}

func TestApplyIdempotentRerun(t *testing.T) {
	t.Parallel()

	entries := mustParse(t, exampleDiagram)
	target := t.TempDir()
	apply(t, entries, Options{TargetPath: target})

	// A rerun must succeed and leave existing entries alone.
	stats := apply(t, entries, Options{TargetPath: target})
	if stats.DirsCreated != 0 || stats.FilesCreated != 0 {
		t.Errorf("rerun stats = %+v, want everything skipped", stats)
	}
	if stats.Skipped != 4 {
		t.Errorf("rerun skipped = %d, want 4", stats.Skipped)
	}
}

func TestApplyNonDestructive(t *testing.T) {
	t.Parallel()

	entries := mustParse(t, "Proj/\n└── main.py\n")
	target := t.TempDir()
	apply(t, entries, Options{TargetPath: target})

	existing := filepath.Join(target, "Proj", "main.py")
	if err := os.WriteFile(existing, []byte("content"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	apply(t, entries, Options{TargetPath: target})
	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("existing file was modified: %q", data)
	}
}

func TestApplyForceTruncates(t *testing.T) {
	t.Parallel()

	entries := mustParse(t, "Proj/\n└── main.py\n")
	target := t.TempDir()
	apply(t, entries, Options{TargetPath: target})

	existing := filepath.Join(target, "Proj", "main.py")
	if err := os.WriteFile(existing, []byte("content"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	apply(t, entries, Options{TargetPath: target, Force: true})
	info, err := os.Stat(existing)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("file size = %d after force, want 0", info.Size())
	}
}

func TestApplyDryRunCreatesNothing(t *testing.T) {
	t.Parallel()

	target := t.TempDir()
	stats := apply(t, mustParse(t, exampleDiagram), Options{TargetPath: target, DryRun: true})

	if got := scan(t, target); len(got) != 0 {
		t.Errorf("dry run created paths: %v", got)
	}
	if stats.DirsCreated != 2 || stats.FilesCreated != 2 {
		t.Errorf("dry run stats = %+v, want planned counts", stats)
	}
}

func TestApplyPathConflict(t *testing.T) {
	t.Parallel()

	target := t.TempDir()
	// Pre-create a file where the diagram wants a directory.
	if err := os.WriteFile(filepath.Join(target, "Proj"), nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Apply(mustParse(t, exampleDiagram), Options{TargetPath: target}, zap.NewNop())
	if err == nil {
		t.Fatal("expected path conflict error")
	}
}

func TestApplyRejectsSystemTarget(t *testing.T) {
	t.Parallel()

	_, err := Apply(mustParse(t, exampleDiagram), Options{TargetPath: "/usr"}, zap.NewNop())
	if err == nil {
		t.Fatal("expected system directory rejection")
	}
}

func TestApplyRejectsDepthGap(t *testing.T) {
	t.Parallel()

	entries := []tree.Entry{
		{Depth: 0, Name: "a", Kind: tree.Directory},
		{Depth: 2, Name: "b", Kind: tree.File},
	}
	_, err := Apply(entries, Options{TargetPath: t.TempDir()}, zap.NewNop())
	if err == nil {
		t.Fatal("expected nesting error for depth gap")
	}
}

func TestSafeJoinRejectsEscape(t *testing.T) {
	t.Parallel()

	if _, err := safeJoin("/tmp/root", "..", "etc"); err == nil {
		t.Fatal("expected escape rejection")
	}
	p, err := safeJoin("/tmp/root", "a", "b")
	if err != nil {
		t.Fatalf("safeJoin: %v", err)
	}
	if p != filepath.Clean("/tmp/root/a/b") {
		t.Errorf("safeJoin = %q", p)
	}
}
