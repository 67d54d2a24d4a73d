// Package providers implements the hosted model clients mavi can call.
package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"mavi/internal/models"
)

// Role values accepted in a chat turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one prior turn of the conversation.
type Message struct {
	Role    string
	Content string
}

// ChatRequest is the normalized payload sent to a provider. Messages holds
// the full session history ending with the latest user turn.
type ChatRequest struct {
	Model    string
	System   string
	Messages []Message
}

// ChatResponse is the normalized text reply returned by a provider.
type ChatResponse struct {
	Text string
}

// Client is the provider client interface used by the CLI.
type Client interface {
	Name() string
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// ClientOptions configures shared client settings for all providers.
type ClientOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Error wraps a provider failure with the provider's name.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns the client for a supported model key. The base URL and wire
// protocol fall back to the key's built-in defaults.
func New(key models.Key, opts ClientOptions) (Client, error) {
	defaults, ok := models.DefaultsFor(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidModel, key)
	}
	if strings.TrimSpace(opts.BaseURL) == "" {
		opts.BaseURL = defaults.BaseURL
	}

	switch defaults.Protocol {
	case models.ProtocolGemini:
		return newGeminiClient(string(key), opts), nil
	default:
		return newOpenAICompatibleClient(string(key), opts), nil
	}
}
