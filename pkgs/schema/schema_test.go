package schema

import (
	"sort"
	"strings"
	"testing"
)

// TestDefaultCatalogClosure verifies that every key referenced by any
// AllowedChildren set resolves in the registry.
func TestDefaultCatalogClosure(t *testing.T) {
	if err := Default().CheckClosure(); err != nil {
		t.Fatalf("catalog is not closed: %v", err)
	}
}

// TestDefaultCatalogKeysUnique verifies that building the catalog twice
// from scratch never trips the duplicate check.
func TestDefaultCatalogKeysUnique(t *testing.T) {
	if _, err := New(catalog()); err != nil {
		t.Fatalf("catalog has duplicate keys: %v", err)
	}
}

// TestDuplicateKeyRejected verifies that a duplicate definition is a
// build-time error, not a silent overwrite.
func TestDuplicateKeyRejected(t *testing.T) {
	_, err := New([]CommandDefinition{
		{Key: "tapOn", Placement: PlacementAction},
		{Key: "tapOn", Placement: PlacementAction},
	})
	if err == nil {
		t.Fatal("expected error for duplicate key")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestGrammarGraphIsCyclic verifies the repeat -> commands -> repeat cycle
// resolves through key lookup.
func TestGrammarGraphIsCyclic(t *testing.T) {
	s := Default()

	repeat, ok := s.Lookup("repeat")
	if !ok {
		t.Fatal("repeat not registered")
	}
	if !repeat.AllowsChild("commands") {
		t.Fatal("repeat should allow commands")
	}

	commands, ok := s.Lookup("commands")
	if !ok {
		t.Fatal("commands not registered")
	}
	if !commands.AllowsChild("repeat") {
		t.Fatal("commands should allow repeat, closing the cycle")
	}
}

// TestPlacementViews tests the lazily-computed root/action views.
func TestPlacementViews(t *testing.T) {
	s := Default()

	roots := s.RootCommands()
	if !sort.StringsAreSorted(roots) {
		t.Error("RootCommands must be sorted")
	}
	actions := s.ActionCommands()
	if !sort.StringsAreSorted(actions) {
		t.Error("ActionCommands must be sorted")
	}

	contains := func(keys []string, key string) bool {
		for _, k := range keys {
			if k == key {
				return true
			}
		}
		return false
	}

	if !contains(roots, "appId") || !contains(roots, "onFlowStart") {
		t.Errorf("unexpected root commands: %v", roots)
	}
	if !contains(actions, "tapOn") || !contains(actions, "runScript") {
		t.Errorf("unexpected action commands: %v", actions)
	}
	if contains(actions, "appId") {
		t.Error("appId must not be an action command")
	}
}

// TestDefinitionFlags spot-checks grammar flags the validator and the
// reference extractor depend on.
func TestDefinitionFlags(t *testing.T) {
	tests := []struct {
		key       string
		wantFiles bool
		wantOpen  bool
		wantRaw   bool
	}{
		{key: "runScript", wantFiles: true, wantRaw: true},
		{key: "runFlow", wantFiles: true, wantRaw: true},
		{key: "env", wantOpen: true},
		{key: "back", wantRaw: false},
		{key: "inputText", wantRaw: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			d, ok := Default().Lookup(tt.key)
			if !ok {
				t.Fatalf("%s not registered", tt.key)
			}
			if d.AcceptsFileReferences != tt.wantFiles {
				t.Errorf("AcceptsFileReferences = %v, want %v", d.AcceptsFileReferences, tt.wantFiles)
			}
			if d.AcceptsUndefinedChildren != tt.wantOpen {
				t.Errorf("AcceptsUndefinedChildren = %v, want %v", d.AcceptsUndefinedChildren, tt.wantOpen)
			}
			if d.AcceptsRawValue != tt.wantRaw {
				t.Errorf("AcceptsRawValue = %v, want %v", d.AcceptsRawValue, tt.wantRaw)
			}
		})
	}
}

// TestAllowedChildrenSorted verifies diagnostic ordering is stable.
func TestAllowedChildrenSorted(t *testing.T) {
	d, ok := Default().Lookup("swipe")
	if !ok {
		t.Fatal("swipe not registered")
	}
	keys := d.AllowedChildrenSorted()
	if !sort.StringsAreSorted(keys) {
		t.Errorf("children not sorted: %v", keys)
	}
	if len(keys) != len(d.AllowedChildren) {
		t.Errorf("got %d keys, want %d", len(keys), len(d.AllowedChildren))
	}
}

// TestExportJSONSchemaCompiles verifies the exported artifact is itself a
// valid draft 2020-12 schema.
func TestExportJSONSchemaCompiles(t *testing.T) {
	data, err := Default().ExportJSONSchema()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := CompileArtifact(data); err != nil {
		t.Fatalf("artifact does not compile: %v", err)
	}
	if !strings.Contains(string(data), `"$defs"`) {
		t.Error("artifact missing $defs section")
	}
}
