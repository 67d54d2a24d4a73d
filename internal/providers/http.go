package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

func defaultHTTPClient(input *http.Client) *http.Client {
	if input != nil {
		return input
	}
	return &http.Client{Timeout: 60 * time.Second}
}

func doJSON(ctx context.Context, client *http.Client, req *http.Request, payload any, out any) error {
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request JSON: %w", err)
		}
		req.Body = io.NopCloser(bytes.NewReader(buf))
		req.ContentLength = int64(len(buf))
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("provider returned %s: %s", resp.Status, truncate(string(body), 700))
	}

	if out == nil {
		return nil
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response JSON: %w; body=%s", err, truncate(string(body), 700))
	}
	return nil
}

func validateChatRequest(req ChatRequest) error {
	if strings.TrimSpace(req.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return fmt.Errorf("at least one message is required")
	}
	for _, msg := range req.Messages {
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			return fmt.Errorf("unsupported message role %q", msg.Role)
		}
		if strings.TrimSpace(msg.Content) == "" {
			return fmt.Errorf("message content is empty")
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func joinURL(base, path string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
