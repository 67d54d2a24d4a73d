// Package models defines the fixed set of model keys mavi can talk to.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Key identifies one of the supported hosted model providers.
type Key string

const (
	Gemini   Key = "gemini"
	OpenAI   Key = "openai"
	DeepSeek Key = "deepseek"
)

// Protocol selects the wire format a key's provider speaks.
type Protocol int

const (
	ProtocolOpenAICompatible Protocol = iota
	ProtocolGemini
)

// ErrInvalidModel indicates a model name outside the supported set.
var ErrInvalidModel = errors.New("invalid model")

// Defaults holds the built-in settings for a supported key.
type Defaults struct {
	Protocol Protocol
	BaseURL  string
	ModelID  string
}

var defaults = map[Key]Defaults{
	Gemini: {
		Protocol: ProtocolGemini,
		BaseURL:  "https://generativelanguage.googleapis.com/v1beta",
		ModelID:  "gemini-2.5-flash",
	},
	OpenAI: {
		Protocol: ProtocolOpenAICompatible,
		BaseURL:  "https://api.openai.com/v1",
		ModelID:  "gpt-4o-mini",
	},
	DeepSeek: {
		Protocol: ProtocolOpenAICompatible,
		BaseURL:  "https://api.deepseek.com/v1",
		ModelID:  "deepseek-chat",
	},
}

// Supported returns the supported keys in display order.
func Supported() []Key {
	return []Key{Gemini, OpenAI, DeepSeek}
}

// Parse normalizes name and returns the matching key.
func Parse(name string) (Key, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return "", fmt.Errorf("%w: model name is empty", ErrInvalidModel)
	}
	for _, key := range Supported() {
		if normalized == string(key) {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrInvalidModel, name, Names())
}

// DefaultsFor returns the built-in settings for key.
func DefaultsFor(key Key) (Defaults, bool) {
	d, ok := defaults[key]
	return d, ok
}

// Names returns the supported key names joined for error messages and help.
func Names() string {
	keys := Supported()
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, string(key))
	}
	return strings.Join(names, ", ")
}

func (k Key) String() string { return string(k) }
