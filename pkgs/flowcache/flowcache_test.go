package flowcache

import (
	"testing"

	"github.com/Trendyol/maestro-assistant/pkgs/schema"
)

// TestDetect tests the flow-document heuristic.
func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{name: "app_id_header", source: "appId: com.example.app\n---\n- launchApp\n", want: true},
		{name: "action_item_only", source: "- tapOn:\n    id: x\n", want: true},
		{name: "comment_then_root_key", source: "# login flow\nname: Login\n", want: true},
		{name: "plain_yaml", source: "version: 2\nservices:\n  web:\n    image: nginx\n", want: false},
		{name: "sequence_of_strings", source: "- one\n- two\n", want: false},
		{name: "empty", source: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect([]byte(tt.source), schema.Default()); got != tt.want {
				t.Errorf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCacheRoundTrip tests Get/Put/Clear and the Classify shortcut.
func TestCacheRoundTrip(t *testing.T) {
	cache, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Get("a.yaml"); ok {
		t.Fatal("fresh cache should miss")
	}

	flow := []byte("appId: com.example.app\n")
	if !cache.Classify("a.yaml", flow, schema.Default()) {
		t.Fatal("flow source should classify as flow")
	}

	// The cached answer wins even when the source changes: invalidation
	// is the host's job, via Clear.
	if !cache.Classify("a.yaml", []byte("not: a flow at all"), schema.Default()) {
		t.Error("stale classification should be served until Clear")
	}

	cache.Clear()
	if cache.Classify("a.yaml", []byte("unrelated: yaml"), schema.Default()) {
		t.Error("after Clear the source is re-classified")
	}
}

// TestCacheEviction tests the LRU bound.
func TestCacheEviction(t *testing.T) {
	cache, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	cache.Put("a", true)
	cache.Put("b", true)
	cache.Put("c", true)

	if _, ok := cache.Get("a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if v, ok := cache.Get("c"); !ok || !v {
		t.Error("newest entry should survive")
	}
}
