package fsys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testTree() MapFS {
	return MapFS{
		"flow.yaml":             "appId: com.example.app\n",
		"scripts/helpers.js":    "output.a = {}\n",
		"scripts/deep/extra.js": "output.b = {}\n",
		"other/readme.md":       "hi\n",
	}
}

// TestMapFSChildrenSorted verifies deterministic enumeration order.
func TestMapFSChildrenSorted(t *testing.T) {
	children, err := testTree().Children("")
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	want := []Entry{
		{Name: "flow.yaml"},
		{Name: "other", IsDir: true},
		{Name: "scripts", IsDir: true},
	}
	if diff := cmp.Diff(want, children); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

// TestMapFSNestedDirs tests directory queries below the root.
func TestMapFSNestedDirs(t *testing.T) {
	fs := testTree()
	if !fs.IsDir("scripts") || !fs.IsDir("scripts/deep") {
		t.Error("script directories should be directories")
	}
	if fs.IsDir("flow.yaml") {
		t.Error("a file is not a directory")
	}
	if !fs.Exists("scripts/helpers.js") || fs.Exists("scripts/missing.js") {
		t.Error("Exists mismatch")
	}

	content, err := fs.ReadText("scripts/helpers.js")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if content != "output.a = {}\n" {
		t.Errorf("unexpected content %q", content)
	}
}

// TestMapFSMissing tests error results for absent paths.
func TestMapFSMissing(t *testing.T) {
	fs := testTree()
	if _, err := fs.ReadText("nope.js"); err == nil {
		t.Error("expected error reading missing file")
	}
	if _, err := fs.Children("missing-dir"); err == nil {
		t.Error("expected error listing missing directory")
	}
}

// TestOSFS exercises the real-filesystem implementation against a
// temporary tree.
func TestOSFS(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "scripts", "a.js"), []byte("output.x = {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "flow.yaml"), []byte("appId: x"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := OS(root)
	children, err := fs.Children("")
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	want := []Entry{
		{Name: "flow.yaml"},
		{Name: "scripts", IsDir: true},
	}
	if diff := cmp.Diff(want, children); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	content, err := fs.ReadText("scripts/a.js")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if content != "output.x = {}" {
		t.Errorf("unexpected content %q", content)
	}
	if !fs.IsDir("scripts") || fs.IsDir("flow.yaml") {
		t.Error("IsDir mismatch")
	}
	// Escaping the root is clamped, not honored.
	if fs.Exists("../" + filepath.Base(root)) {
		t.Error("parent traversal above the root must not escape")
	}
}
