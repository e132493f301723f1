package schema

import (
	"fmt"
	"sort"
	"sync"
)

// Placement describes where a command may legally appear in a flow document.
type Placement int

const (
	// PlacementRoot commands appear at the top level of the config section
	// (appId, onFlowStart, ...) or as dash-prefixed root actions.
	PlacementRoot Placement = iota
	// PlacementAction commands appear as items of an action sequence.
	PlacementAction
	// PlacementField commands appear only nested under another command.
	PlacementField
)

func (p Placement) String() string {
	switch p {
	case PlacementRoot:
		return "root"
	case PlacementAction:
		return "action"
	case PlacementField:
		return "field"
	default:
		return "unknown"
	}
}

// CommandDefinition is the grammar entry for a single command key.
// Definitions are immutable after registration; AllowedChildren holds key
// names, not definition pointers, so the grammar graph may be cyclic
// (repeat's children include the action set, which includes repeat).
// Edges are resolved by Lookup at validation time.
type CommandDefinition struct {
	Key       string
	Placement Placement

	// AllowedChildren is the set of keys legal directly under this command.
	// Empty means the command takes no subcommands.
	AllowedChildren map[string]struct{}

	// AcceptsRawValue reports whether the command may carry a scalar value
	// instead of (or in addition to) subcommands.
	AcceptsRawValue bool

	// AcceptsUndefinedChildren marks open-ended bags such as env maps:
	// children are not checked against AllowedChildren at all.
	AcceptsUndefinedChildren bool

	// AcceptsFileReferences marks commands whose scalar value names a file.
	AcceptsFileReferences bool

	// AcceptsStringInterpolation marks commands whose scalar value may
	// contain ${output.*} interpolations.
	AcceptsStringInterpolation bool
}

// AllowsChild reports whether key is a member of AllowedChildren.
func (d *CommandDefinition) AllowsChild(key string) bool {
	_, ok := d.AllowedChildren[key]
	return ok
}

// AllowedChildrenSorted returns the allowed child keys in lexicographic
// order, for stable diagnostic messages.
func (d *CommandDefinition) AllowedChildrenSorted() []string {
	keys := make([]string, 0, len(d.AllowedChildren))
	for k := range d.AllowedChildren {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Schema is the command registry. Build once, read from any goroutine.
type Schema struct {
	byKey map[string]*CommandDefinition

	rootOnce   sync.Once
	rootCmds   []string
	actionOnce sync.Once
	actionCmds []string
}

// New builds a Schema from the given definitions. A duplicate key is a
// programming error in the catalog, not user input, so it fails hard.
func New(defs []CommandDefinition) (*Schema, error) {
	s := &Schema{byKey: make(map[string]*CommandDefinition, len(defs))}
	for i := range defs {
		d := defs[i]
		if d.Key == "" {
			return nil, fmt.Errorf("schema: definition %d has empty key", i)
		}
		if _, exists := s.byKey[d.Key]; exists {
			return nil, fmt.Errorf("schema: duplicate command definition %q", d.Key)
		}
		s.byKey[d.Key] = &d
	}
	return s, nil
}

// MustNew is New that panics on catalog errors. Used for the built-in
// catalog, mirroring init-time registration of a fixed grammar.
func MustNew(defs []CommandDefinition) *Schema {
	s, err := New(defs)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the definition registered for key.
func (s *Schema) Lookup(key string) (*CommandDefinition, bool) {
	d, ok := s.byKey[key]
	return d, ok
}

// Keys returns every registered command key in lexicographic order.
func (s *Schema) Keys() []string {
	keys := make([]string, 0, len(s.byKey))
	for k := range s.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RootCommands returns the keys valid at the top level of a document.
// Computed lazily and memoized; the result must not be mutated.
func (s *Schema) RootCommands() []string {
	s.rootOnce.Do(func() {
		for k, d := range s.byKey {
			if d.Placement == PlacementRoot {
				s.rootCmds = append(s.rootCmds, k)
			}
		}
		sort.Strings(s.rootCmds)
	})
	return s.rootCmds
}

// ActionCommands returns the keys valid as action sequence items.
// Computed lazily and memoized; the result must not be mutated.
func (s *Schema) ActionCommands() []string {
	s.actionOnce.Do(func() {
		for k, d := range s.byKey {
			if d.Placement == PlacementAction {
				s.actionCmds = append(s.actionCmds, k)
			}
		}
		sort.Strings(s.actionCmds)
	})
	return s.actionCmds
}

// CheckClosure verifies that every key referenced by any AllowedChildren
// set resolves in the registry. A failure is a catalog bug.
func (s *Schema) CheckClosure() error {
	for key, d := range s.byKey {
		for child := range d.AllowedChildren {
			if _, ok := s.byKey[child]; !ok {
				return fmt.Errorf("schema: %q allows child %q which is not registered", key, child)
			}
		}
	}
	return nil
}

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
)

// Default returns the built-in Maestro command schema. The catalog is
// flattened into the registry on first use; duplicate keys panic.
func Default() *Schema {
	defaultOnce.Do(func() {
		defaultSchema = MustNew(catalog())
		if err := defaultSchema.CheckClosure(); err != nil {
			panic(err)
		}
	})
	return defaultSchema
}
