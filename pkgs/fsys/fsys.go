// Package fsys is the read-only directory/file accessor the resolvers
// consume. Paths are slash-separated and relative to the accessor root.
// Children come back in lexicographic order so that name-based directory
// search is deterministic regardless of the underlying enumeration.
package fsys

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one child of a directory.
type Entry struct {
	Name  string
	IsDir bool
}

// FS is the read-only view of a project tree.
type FS interface {
	// Children lists the entries of dir in lexicographic order.
	Children(dir string) ([]Entry, error)
	// ReadText returns the content of a file.
	ReadText(file string) (string, error)
	// IsDir reports whether the path names a directory.
	IsDir(p string) bool
	// Exists reports whether the path names a file or directory.
	Exists(p string) bool
}

// osFS serves a real directory tree rooted at a local path.
type osFS struct {
	root string
}

// OS returns an FS backed by the local file system, rooted at root.
func OS(root string) FS {
	return &osFS{root: root}
}

func (f *osFS) local(p string) string {
	return filepath.Join(f.root, filepath.FromSlash(path.Clean("/"+p)))
}

func (f *osFS) Children(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(f.local(dir))
	if err != nil {
		return nil, fmt.Errorf("fsys: list %s: %w", dir, err)
	}
	// os.ReadDir already sorts by filename; keep the guarantee explicit.
	children := make([]Entry, 0, len(entries))
	for _, e := range entries {
		children = append(children, Entry{Name: e.Name(), IsDir: e.IsDir()})
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	return children, nil
}

func (f *osFS) ReadText(file string) (string, error) {
	data, err := os.ReadFile(f.local(file))
	if err != nil {
		return "", fmt.Errorf("fsys: read %s: %w", file, err)
	}
	return string(data), nil
}

func (f *osFS) IsDir(p string) bool {
	info, err := os.Stat(f.local(p))
	return err == nil && info.IsDir()
}

func (f *osFS) Exists(p string) bool {
	_, err := os.Stat(f.local(p))
	return err == nil
}

// MapFS is an in-memory FS for tests: file path -> content. Directories
// are implied by the paths.
type MapFS map[string]string

func (m MapFS) Children(dir string) ([]Entry, error) {
	prefix := normalize(dir)
	if prefix != "" {
		prefix += "/"
	}

	seen := map[string]bool{}
	var children []Entry
	for p := range m {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		if rest == "" {
			continue
		}
		name, remainder, isNested := strings.Cut(rest, "/")
		if seen[name] {
			continue
		}
		seen[name] = true
		children = append(children, Entry{Name: name, IsDir: isNested && remainder != ""})
	}
	if len(children) == 0 && prefix != "" && !m.IsDir(dir) {
		return nil, fmt.Errorf("fsys: list %s: not a directory", dir)
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	return children, nil
}

func (m MapFS) ReadText(file string) (string, error) {
	content, ok := m[normalize(file)]
	if !ok {
		return "", fmt.Errorf("fsys: read %s: no such file", file)
	}
	return content, nil
}

func (m MapFS) IsDir(p string) bool {
	prefix := normalize(p)
	if prefix == "" {
		return true
	}
	prefix += "/"
	for candidate := range m {
		if strings.HasPrefix(candidate, prefix) {
			return true
		}
	}
	return false
}

func (m MapFS) Exists(p string) bool {
	if _, ok := m[normalize(p)]; ok {
		return true
	}
	return m.IsDir(p)
}

// normalize cleans a slash path and strips the leading slash, so "",
// ".", and "/" all mean the root.
func normalize(p string) string {
	cleaned := path.Clean("/" + p)
	return strings.TrimPrefix(cleaned, "/")
}
