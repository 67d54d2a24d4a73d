package models

import (
	"errors"
	"testing"
)

func TestParse_NormalizesCaseAndSpace(t *testing.T) {
	key, err := Parse("  OpenAI ")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if key != OpenAI {
		t.Fatalf("key = %q, want %q", key, OpenAI)
	}
}

func TestParse_RejectsUnknown(t *testing.T) {
	_, err := Parse("claude")
	if !errors.Is(err, ErrInvalidModel) {
		t.Fatalf("expected ErrInvalidModel, got %v", err)
	}
}

func TestParse_RejectsEmpty(t *testing.T) {
	_, err := Parse("   ")
	if !errors.Is(err, ErrInvalidModel) {
		t.Fatalf("expected ErrInvalidModel, got %v", err)
	}
}

func TestDefaultsForEverySupportedKey(t *testing.T) {
	for _, key := range Supported() {
		d, ok := DefaultsFor(key)
		if !ok {
			t.Fatalf("no defaults for %s", key)
		}
		if d.BaseURL == "" || d.ModelID == "" {
			t.Fatalf("incomplete defaults for %s: %+v", key, d)
		}
	}
}
