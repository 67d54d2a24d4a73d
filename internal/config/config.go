// Package config loads and persists mavi's JSON configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mavi/internal/models"
)

const (
	defaultDirName  = "mavi"
	defaultFileName = "config.json"
	currentVersion  = 1
	envConfigPath   = "MAVI_CONFIG"
	envConfigDir    = "MAVI_CONFIG_DIR"
)

// ErrConfigNotFound indicates the config file does not exist yet.
var ErrConfigNotFound = errors.New("config file not found")

// ModelConfig stores per-key overrides for the hosted model ID and base URL.
type ModelConfig struct {
	ModelID string `json:"model_id,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
}

// Config is mavi's persisted state.
type Config struct {
	Version        int                    `json:"version"`
	DefaultModel   string                 `json:"default_model"`
	Models         map[string]ModelConfig `json:"models,omitempty"`
	RenderMarkdown bool                   `json:"render_markdown"`
}

// DefaultConfig returns the config used before anything is saved.
func DefaultConfig() *Config {
	return &Config{
		Version:        currentVersion,
		DefaultModel:   string(models.Gemini),
		RenderMarkdown: true,
	}
}

// ResolvePath resolves the config file path from CLI override, environment, or default.
func ResolvePath(pathOverride string) (string, error) {
	if path := strings.TrimSpace(pathOverride); path != "" {
		return filepath.Clean(path), nil
	}
	if path := strings.TrimSpace(os.Getenv(envConfigPath)); path != "" {
		return filepath.Clean(path), nil
	}
	return DefaultPath()
}

// DefaultDir returns the default directory where mavi stores its config.
func DefaultDir() (string, error) {
	if custom := strings.TrimSpace(os.Getenv(envConfigDir)); custom != "" {
		return filepath.Clean(custom), nil
	}

	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "", fmt.Errorf("resolve user home directory: %w", err)
	}
	return filepath.Join(home, "."+defaultDirName), nil
}

// DefaultPath returns the default full path to config.json.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultFileName), nil
}

// Load reads config from path. When missing, it returns DefaultConfig and ErrConfigNotFound.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), ErrConfigNotFound
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config to path, creating the directory when needed.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.normalize()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	buf, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	buf = append(buf, '\n')
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	if c.Version == 0 {
		c.Version = currentVersion
	}
	c.DefaultModel = strings.ToLower(strings.TrimSpace(c.DefaultModel))
	if c.DefaultModel == "" {
		c.DefaultModel = string(models.Gemini)
	}

	if len(c.Models) == 0 {
		c.Models = nil
		return
	}
	cleaned := map[string]ModelConfig{}
	for name, mc := range c.Models {
		key, err := models.Parse(name)
		if err != nil {
			continue
		}
		mc.ModelID = strings.TrimSpace(mc.ModelID)
		mc.BaseURL = strings.TrimRight(strings.TrimSpace(mc.BaseURL), "/")
		if mc.ModelID == "" && mc.BaseURL == "" {
			continue
		}
		cleaned[string(key)] = mc
	}
	if len(cleaned) == 0 {
		cleaned = nil
	}
	c.Models = cleaned
}

// DefaultModelKey returns the configured default model key.
func (c *Config) DefaultModelKey() (models.Key, error) {
	return models.Parse(c.DefaultModel)
}

// SetDefaultModel updates the default model used by ask.
func (c *Config) SetDefaultModel(key models.Key) {
	c.DefaultModel = string(key)
}

// ModelID returns the hosted model ID for key, honoring overrides.
func (c *Config) ModelID(key models.Key) string {
	if mc, ok := c.Models[string(key)]; ok && strings.TrimSpace(mc.ModelID) != "" {
		return strings.TrimSpace(mc.ModelID)
	}
	defaults, _ := models.DefaultsFor(key)
	return defaults.ModelID
}

// SetModelID overrides the hosted model ID for key.
func (c *Config) SetModelID(key models.Key, modelID string) {
	if c.Models == nil {
		c.Models = map[string]ModelConfig{}
	}
	mc := c.Models[string(key)]
	mc.ModelID = strings.TrimSpace(modelID)
	c.Models[string(key)] = mc
}

// BaseURL returns the base URL override for key, or empty for the built-in.
func (c *Config) BaseURL(key models.Key) string {
	if mc, ok := c.Models[string(key)]; ok {
		return strings.TrimRight(strings.TrimSpace(mc.BaseURL), "/")
	}
	return ""
}
