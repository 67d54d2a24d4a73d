package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"mavi/internal/models"
)

func TestDefaultPathUsesMaviDirectory(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	suffix := filepath.Join(".mavi", "config.json")
	if !strings.HasSuffix(path, suffix) {
		t.Fatalf("path %q does not end with %q", path, suffix)
	}
}

func TestResolvePathPrecedence(t *testing.T) {
	t.Setenv("MAVI_CONFIG", "/tmp/env-config.json")
	path, err := ResolvePath("/tmp/override.json")
	if err != nil {
		t.Fatalf("ResolvePath() error = %v", err)
	}
	if path != "/tmp/override.json" {
		t.Fatalf("override ignored: %q", path)
	}

	path, err = ResolvePath("")
	if err != nil {
		t.Fatalf("ResolvePath() error = %v", err)
	}
	if path != "/tmp/env-config.json" {
		t.Fatalf("env path ignored: %q", path)
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
	if cfg.DefaultModel != string(models.Gemini) {
		t.Fatalf("default model = %q", cfg.DefaultModel)
	}
	if !cfg.RenderMarkdown {
		t.Fatal("markdown rendering should default on")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.SetDefaultModel(models.DeepSeek)
	cfg.SetModelID(models.OpenAI, "gpt-4.1")
	cfg.RenderMarkdown = false
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if loaded.DefaultModel != "deepseek" {
		t.Fatalf("default model = %q", loaded.DefaultModel)
	}
	if loaded.ModelID(models.OpenAI) != "gpt-4.1" {
		t.Fatalf("model id = %q", loaded.ModelID(models.OpenAI))
	}
	if loaded.RenderMarkdown {
		t.Fatal("markdown toggle not persisted")
	}
}

func TestModelIDFallsBackToBuiltin(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ModelID(models.Gemini); got != "gemini-2.5-flash" {
		t.Fatalf("ModelID = %q", got)
	}
}

func TestNormalizeDropsUnknownModelOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Models = map[string]ModelConfig{
		"claude": {ModelID: "claude-3"},
		"OPENAI": {ModelID: "gpt-4.1"},
	}
	cfg.normalize()
	if _, ok := cfg.Models["claude"]; ok {
		t.Fatal("unknown key kept")
	}
	if cfg.Models["openai"].ModelID != "gpt-4.1" {
		t.Fatalf("models = %+v", cfg.Models)
	}
}

func TestDefaultModelKeyRejectsCorruptValue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultModel = "nonsense"
	if _, err := cfg.DefaultModelKey(); !errors.Is(err, models.ErrInvalidModel) {
		t.Fatalf("expected ErrInvalidModel, got %v", err)
	}
}
