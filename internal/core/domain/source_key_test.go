package domain_test

import (
	"encoding/json"
	"testing"

	"go.trai.ch/lesscache/internal/core/domain"
)

func TestSourceKey(t *testing.T) {
	k1 := domain.NewSourceKey("/styles/root.less")
	k2 := domain.NewSourceKey("/styles/root.less")

	if k1 != k2 {
		t.Errorf("Expected keys for the same location to be equal, got %v and %v", k1, k2)
	}

	if k1.String() != "/styles/root.less" {
		t.Errorf("Expected String() to return %q, got %q", "/styles/root.less", k1.String())
	}

	if k1 == domain.NewSourceKey("/styles/other.less") {
		t.Error("Expected keys for different locations to differ")
	}
}

func TestSourceKey_Zero(t *testing.T) {
	var k domain.SourceKey

	if !k.IsZero() {
		t.Error("Expected zero key to report IsZero")
	}
	if k.String() != "" {
		t.Errorf("Expected empty string for zero key, got %q", k.String())
	}
	if domain.NewSourceKey("a.less").IsZero() {
		t.Error("Expected initialized key not to report IsZero")
	}
}

func TestSourceKey_MapKeyAcrossJSON(t *testing.T) {
	original := map[domain.SourceKey]int{
		domain.NewSourceKey("/styles/root.less"): 1,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Failed to marshal map: %v", err)
	}

	if string(data) != `{"/styles/root.less":1}` {
		t.Errorf("Unexpected JSON: %s", data)
	}

	var decoded map[domain.SourceKey]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal map: %v", err)
	}

	if decoded[domain.NewSourceKey("/styles/root.less")] != 1 {
		t.Errorf("Expected decoded key to match a freshly created key, got %v", decoded)
	}
}
