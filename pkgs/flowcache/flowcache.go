// Package flowcache answers "is this file a Maestro flow document" and
// remembers the answer. The cache is injectable, safe for concurrent
// readers and writers, and must be cleared by the host on project or
// file-lifecycle boundaries; it never invalidates itself.
package flowcache

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Trendyol/maestro-assistant/pkgs/schema"
)

// DefaultSize bounds the number of remembered classifications.
const DefaultSize = 1024

// Cache is a bounded classification store keyed by file identity.
type Cache struct {
	entries *lru.Cache[string, bool]
}

// New creates a Cache holding up to size classifications.
func New(size int) (*Cache, error) {
	entries, err := lru.New[string, bool](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Get returns the remembered classification for key, if any.
func (c *Cache) Get(key string) (bool, bool) {
	return c.entries.Get(key)
}

// Put remembers the classification for key.
func (c *Cache) Put(key string, isFlow bool) {
	c.entries.Add(key, isFlow)
}

// Clear drops every remembered classification. Invoked by the host on
// project close and file-lifecycle events.
func (c *Cache) Clear() {
	c.entries.Purge()
}

// Classify returns the cached classification for key, computing and
// storing it from source on a miss.
func (c *Cache) Classify(key string, source []byte, s *schema.Schema) bool {
	if cached, ok := c.Get(key); ok {
		return cached
	}
	isFlow := Detect(source, s)
	c.Put(key, isFlow)
	return isFlow
}

// Detect heuristically recognizes flow documents: a top-level root
// command key, or a sequence item whose token is a known action command.
func Detect(source []byte, s *schema.Schema) bool {
	for _, line := range strings.Split(string(source), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if item, ok := strings.CutPrefix(trimmed, "- "); ok {
			token := item
			if i := strings.IndexByte(token, ':'); i >= 0 {
				token = token[:i]
			}
			if d, found := s.Lookup(strings.TrimSpace(token)); found && d.Placement == schema.PlacementAction {
				return true
			}
			continue
		}

		if key, _, ok := strings.Cut(trimmed, ":"); ok {
			if d, found := s.Lookup(strings.TrimSpace(key)); found && d.Placement == schema.PlacementRoot {
				return true
			}
		}
	}
	return false
}
