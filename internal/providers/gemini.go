package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type geminiClient struct {
	name   string
	apiKey string
	base   string
	http   *http.Client
}

func newGeminiClient(name string, opts ClientOptions) Client {
	return &geminiClient{
		name:   name,
		apiKey: strings.TrimSpace(opts.APIKey),
		base:   strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		http:   defaultHTTPClient(opts.HTTPClient),
	}
}

func (c *geminiClient) Name() string { return c.name }

func (c *geminiClient) Chat(ctx context.Context, reqBody ChatRequest) (ChatResponse, error) {
	if err := validateChatRequest(reqBody); err != nil {
		return ChatResponse{}, &Error{Provider: c.name, Err: err}
	}
	if c.apiKey == "" {
		return ChatResponse{}, &Error{Provider: c.name, Err: fmt.Errorf("API key not configured")}
	}

	model := strings.TrimPrefix(strings.TrimSpace(reqBody.Model), "models/")
	path := fmt.Sprintf("/models/%s:generateContent", model)
	req, err := http.NewRequest(http.MethodPost, joinURL(c.base, path), nil)
	if err != nil {
		return ChatResponse{}, &Error{Provider: c.name, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	contents := make([]map[string]any, 0, len(reqBody.Messages))
	for _, msg := range reqBody.Messages {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, map[string]any{
			"role":  role,
			"parts": []map[string]string{{"text": msg.Content}},
		})
	}
	payload := map[string]any{
		"contents": contents,
		"generationConfig": map[string]any{
			"temperature": 0.2,
		},
	}
	if strings.TrimSpace(reqBody.System) != "" {
		payload["systemInstruction"] = map[string]any{
			"parts": []map[string]string{{"text": reqBody.System}},
		}
	}

	var resp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := doJSON(ctx, c.http, req, payload, &resp); err != nil {
		return ChatResponse{}, &Error{Provider: c.name, Err: err}
	}
	if len(resp.Candidates) == 0 {
		return ChatResponse{}, &Error{Provider: c.name, Err: fmt.Errorf("no candidates returned")}
	}

	parts := make([]string, 0, len(resp.Candidates[0].Content.Parts))
	for _, part := range resp.Candidates[0].Content.Parts {
		if strings.TrimSpace(part.Text) != "" {
			parts = append(parts, part.Text)
		}
	}
	if len(parts) == 0 {
		return ChatResponse{}, &Error{Provider: c.name, Err: fmt.Errorf("response had no text parts")}
	}
	return ChatResponse{Text: strings.Join(parts, "\n")}, nil
}
