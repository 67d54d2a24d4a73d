package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// openAICompatibleClient speaks the /chat/completions dialect shared by
// OpenAI and DeepSeek.
type openAICompatibleClient struct {
	name   string
	apiKey string
	base   string
	http   *http.Client
}

func newOpenAICompatibleClient(name string, opts ClientOptions) Client {
	return &openAICompatibleClient{
		name:   name,
		apiKey: strings.TrimSpace(opts.APIKey),
		base:   strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		http:   defaultHTTPClient(opts.HTTPClient),
	}
}

func (c *openAICompatibleClient) Name() string { return c.name }

func (c *openAICompatibleClient) Chat(ctx context.Context, reqBody ChatRequest) (ChatResponse, error) {
	if err := validateChatRequest(reqBody); err != nil {
		return ChatResponse{}, &Error{Provider: c.name, Err: err}
	}
	if c.apiKey == "" {
		return ChatResponse{}, &Error{Provider: c.name, Err: fmt.Errorf("API key not configured")}
	}

	req, err := http.NewRequest(http.MethodPost, joinURL(c.base, "/chat/completions"), nil)
	if err != nil {
		return ChatResponse{}, &Error{Provider: c.name, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	messages := make([]map[string]string, 0, len(reqBody.Messages)+1)
	if strings.TrimSpace(reqBody.System) != "" {
		messages = append(messages, map[string]string{"role": "system", "content": reqBody.System})
	}
	for _, msg := range reqBody.Messages {
		messages = append(messages, map[string]string{"role": msg.Role, "content": msg.Content})
	}
	payload := map[string]any{
		"model":       reqBody.Model,
		"messages":    messages,
		"temperature": 0.2,
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := doJSON(ctx, c.http, req, payload, &resp); err != nil {
		return ChatResponse{}, &Error{Provider: c.name, Err: err}
	}
	if len(resp.Choices) == 0 {
		return ChatResponse{}, &Error{Provider: c.name, Err: fmt.Errorf("no choices returned")}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return ChatResponse{}, &Error{Provider: c.name, Err: fmt.Errorf("empty completion returned")}
	}
	return ChatResponse{Text: text}, nil
}
