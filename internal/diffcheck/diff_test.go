package diffcheck

import (
	"strings"
	"testing"
)

func TestUnifiedIdenticalReturnsEmpty(t *testing.T) {
	got, err := Unified("a.ttl", "same\n", "same\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty diff for identical text, got %q", got)
	}
}

func TestUnifiedShowsChange(t *testing.T) {
	got, err := Unified("a.ttl", "old\n", "new\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "-old") || !strings.Contains(got, "+new") {
		t.Errorf("expected unified diff markers, got %q", got)
	}
}
