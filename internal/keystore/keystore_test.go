package keystore

import (
	"errors"
	"testing"

	"mavi/internal/models"

	"github.com/zalando/go-keyring"
)

func TestSetThenGetRoundTrip(t *testing.T) {
	keyring.MockInit()
	store := New()

	if err := store.Set(models.OpenAI, "sk-test123"); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	got, err := store.Get(models.OpenAI)
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if got != "sk-test123" {
		t.Fatalf("Get = %q, want sk-test123", got)
	}
}

func TestSetOverwritesExisting(t *testing.T) {
	keyring.MockInit()
	store := New()

	if err := store.Set(models.Gemini, "first"); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	if err := store.Set(models.Gemini, "second"); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	got, err := store.Get(models.Gemini)
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if got != "second" {
		t.Fatalf("Get = %q, want second", got)
	}
}

func TestSetRejectsEmptySecret(t *testing.T) {
	keyring.MockInit()
	if err := New().Set(models.OpenAI, "   "); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestGetMissingIsNotFound(t *testing.T) {
	keyring.MockInit()
	_, err := New().Get(models.DeepSeek)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	keyring.MockInit()
	store := New()

	if err := store.Set(models.DeepSeek, "sk-x"); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	if err := store.Delete(models.DeepSeek); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if _, err := store.Get(models.DeepSeek); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	keyring.MockInit()
	if err := New().Delete(models.Gemini); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatusReflectsStoredKeysExactly(t *testing.T) {
	keyring.MockInit()
	store := New()

	if err := store.Set(models.OpenAI, "sk-test123"); err != nil {
		t.Fatalf("Set error = %v", err)
	}

	entries, err := store.Status()
	if err != nil {
		t.Fatalf("Status error = %v", err)
	}
	if len(entries) != len(models.Supported()) {
		t.Fatalf("entries = %d, want %d", len(entries), len(models.Supported()))
	}
	for _, entry := range entries {
		want := entry.Model == models.OpenAI
		if entry.Present != want {
			t.Fatalf("%s present = %v, want %v", entry.Model, entry.Present, want)
		}
	}
}

func TestStoreUnavailableSurfaces(t *testing.T) {
	keyring.MockInitWithError(errors.New("dbus unreachable"))
	store := New()

	if err := store.Set(models.OpenAI, "sk-x"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Set: expected ErrUnavailable, got %v", err)
	}
	if _, err := store.Get(models.OpenAI); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Get: expected ErrUnavailable, got %v", err)
	}
	if _, err := store.Status(); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Status: expected ErrUnavailable, got %v", err)
	}
}
