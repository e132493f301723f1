package document

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const flowSource = `appId: com.example.app
name: Login
---
- launchApp
- tapOn:
    id: "login-button"
- inputText: ${output.homepage.username}
- assertVisible:
`

// TestParseAllSplitsDocuments tests that the config section and the
// action section come back as separate documents.
func TestParseAllSplitsDocuments(t *testing.T) {
	docs, err := ParseAll([]byte(flowSource))
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}

	config, ok := docs[0].Root.(*Mapping)
	if !ok {
		t.Fatalf("config root is %T, want *Mapping", docs[0].Root)
	}
	var keys []string
	for _, e := range config.Entries {
		keys = append(keys, e.Key)
	}
	if diff := cmp.Diff([]string{"appId", "name"}, keys); diff != "" {
		t.Errorf("config keys mismatch (-want +got):\n%s", diff)
	}

	actions, ok := docs[1].Root.(*Sequence)
	if !ok {
		t.Fatalf("action root is %T, want *Sequence", docs[1].Root)
	}
	if len(actions.Items) != 4 {
		t.Errorf("got %d actions, want 4", len(actions.Items))
	}
}

// TestScalarRangesPointIntoSource tests the line/column to byte offset
// translation by slicing the source with reported ranges.
func TestScalarRangesPointIntoSource(t *testing.T) {
	docs, err := ParseAll([]byte(flowSource))
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}

	config := docs[0].Root.(*Mapping)
	appID := config.Entries[0]
	if got := flowSource[appID.KeyRng.Start:appID.KeyRng.End]; got != "appId" {
		t.Errorf("key range covers %q, want %q", got, "appId")
	}
	value := appID.Value.(*Scalar)
	if got := flowSource[value.Rng.Start:value.Rng.End]; got != "com.example.app" {
		t.Errorf("value range covers %q, want %q", got, "com.example.app")
	}
}

// TestQuotedScalarRangeIncludesQuotes tests that quote characters are
// part of the reported span.
func TestQuotedScalarRangeIncludesQuotes(t *testing.T) {
	docs, err := ParseAll([]byte(flowSource))
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}

	actions := docs[1].Root.(*Sequence)
	tapOn := actions.Items[1].Value.(*Mapping).Entries[0]
	id := tapOn.Value.(*Mapping).Entries[0]
	scalar := id.Value.(*Scalar)

	got := flowSource[scalar.Rng.Start:scalar.Rng.End]
	if got != `"login-button"` {
		t.Errorf("range covers %q, want quoted literal", got)
	}
	if scalar.Text != "login-button" {
		t.Errorf("Text = %q, want unquoted value", scalar.Text)
	}
}

// TestAbsentValueIsNil tests the bare-key representation the validator
// depends on for its empty-value diagnostic.
func TestAbsentValueIsNil(t *testing.T) {
	docs, err := ParseAll([]byte(flowSource))
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}

	actions := docs[1].Root.(*Sequence)
	assert := actions.Items[3].Value.(*Mapping).Entries[0]
	if assert.Key != "assertVisible" {
		t.Fatalf("unexpected key %q", assert.Key)
	}
	if assert.Value != nil {
		t.Errorf("absent value should be nil, got %T", assert.Value)
	}
}

// TestParentLinks tests ancestor navigation from a nested scalar.
func TestParentLinks(t *testing.T) {
	docs, err := ParseAll([]byte(flowSource))
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}

	actions := docs[1].Root.(*Sequence)
	id := actions.Items[1].Value.(*Mapping).Entries[0].Value.(*Mapping).Entries[0]

	// id -> mapping -> tapOn entry -> mapping -> sequence item -> sequence
	kv, ok := id.Parent().(*Mapping)
	if !ok {
		t.Fatalf("parent of id entry is %T, want *Mapping", id.Parent())
	}
	entry, ok := kv.Parent().(*KeyValue)
	if !ok || entry.Key != "tapOn" {
		t.Fatalf("grandparent is %T, want tapOn *KeyValue", kv.Parent())
	}
}

// TestWalkVisitsEveryNode counts nodes and exercises pruning.
func TestWalkVisitsEveryNode(t *testing.T) {
	docs, err := ParseAll([]byte(flowSource))
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}

	total := 0
	Walk(docs[1].Root, func(Node) bool {
		total++
		return true
	})
	if total < 10 {
		t.Errorf("walk visited %d nodes, expected full action tree", total)
	}

	pruned := 0
	Walk(docs[1].Root, func(n Node) bool {
		pruned++
		_, isItem := n.(*SequenceItem)
		return !isItem
	})
	if pruned != 5 {
		t.Errorf("pruned walk visited %d nodes, want sequence + 4 items", pruned)
	}
}

// TestParseError surfaces yaml syntax errors.
func TestParseError(t *testing.T) {
	_, err := ParseAll([]byte("key: [unclosed"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parse") {
		t.Errorf("unexpected error: %v", err)
	}
}
