// Package resolver answers "which file does this path name" and "what
// value does output.a.b.c resolve to" over an fsys.FS tree. Resolution
// misses are silent not-found results, never user-facing errors: a file
// may simply not exist yet while it is being typed.
package resolver

import (
	"path"
	"strings"

	"github.com/Trendyol/maestro-assistant/pkgs/fsys"
)

// FileResolver locates files referenced from flow documents. All paths
// are slash-separated and relative to the FS root; "" is the root.
type FileResolver struct {
	fs fsys.FS
}

// NewFileResolver creates a FileResolver over fs.
func NewFileResolver(fs fsys.FS) *FileResolver {
	return &FileResolver{fs: fs}
}

// ResolveRelative tries the exact relative path from baseDir first. When
// that misses, the path's final segment is retried as a bare filename
// anywhere under baseDir.
func (r *FileResolver) ResolveRelative(baseDir, rawPath string) (string, bool) {
	candidate := join(baseDir, rawPath)
	if r.fs.Exists(candidate) && !r.fs.IsDir(candidate) {
		return candidate, true
	}
	return r.ResolveByName(baseDir, path.Base(rawPath))
}

// ResolveByName searches depth-first for a file called name: dir's
// direct children first, then each subdirectory in enumeration order.
// Children are sorted by fsys, so the first match is deterministic.
func (r *FileResolver) ResolveByName(dir, name string) (string, bool) {
	children, err := r.fs.Children(dir)
	if err != nil {
		return "", false
	}
	for _, child := range children {
		if !child.IsDir && child.Name == name {
			return join(dir, child.Name), true
		}
	}
	for _, child := range children {
		if !child.IsDir {
			continue
		}
		if found, ok := r.ResolveByName(join(dir, child.Name), name); ok {
			return found, true
		}
	}
	return "", false
}

// ResolveScriptPath resolves a script path strictly: each leading ../
// walks up exactly one parent (failing when baseDir has none), a single
// leading ./ is dropped, and the remaining segments are descended one by
// one. The first missing segment aborts; there is no fuzzy fallback.
func (r *FileResolver) ResolveScriptPath(baseDir, rawPath string) (string, bool) {
	dir := normalizeDir(baseDir)
	rest := strings.TrimPrefix(rawPath, "./")

	for strings.HasPrefix(rest, "../") {
		if dir == "" {
			return "", false
		}
		dir = normalizeDir(path.Dir(dir))
		rest = rest[len("../"):]
	}
	if rest == "" {
		return "", false
	}

	segments := strings.Split(rest, "/")
	current := dir
	for i, segment := range segments {
		current = join(current, segment)
		last := i == len(segments)-1
		if last {
			if !r.fs.Exists(current) || r.fs.IsDir(current) {
				return "", false
			}
			return current, true
		}
		if !r.fs.IsDir(current) {
			return "", false
		}
	}
	return "", false
}

// ListScriptFiles enumerates every .js file under dir, unbounded depth.
// The walk assumes a tree without symlink cycles.
func (r *FileResolver) ListScriptFiles(dir string) []string {
	children, err := r.fs.Children(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, child := range children {
		full := join(dir, child.Name)
		if child.IsDir {
			files = append(files, r.ListScriptFiles(full)...)
			continue
		}
		if strings.HasSuffix(child.Name, ".js") {
			files = append(files, full)
		}
	}
	return files
}

// join builds a slash path, keeping "" as the root spelling.
func join(dir, name string) string {
	if dir == "" {
		return name
	}
	return path.Join(dir, name)
}

// normalizeDir maps ".", "/" and "" onto the root spelling.
func normalizeDir(dir string) string {
	cleaned := path.Clean("/" + dir)
	return strings.TrimPrefix(cleaned, "/")
}
