package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mavi/internal/models"
)

func TestGemini_ChatMapsRolesAndSystem(t *testing.T) {
	var gotPath string
	var gotBody struct {
		SystemInstruction struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"systemInstruction"`
		Contents []struct {
			Role  string `json:"role"`
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if got := r.Header.Get("x-goog-api-key"); got != "g-key" {
			t.Errorf("x-goog-api-key = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]string{{"text": "hello"}, {"text": "there"}},
				},
			}},
		})
	}))
	defer server.Close()

	client, err := New(models.Gemini, ClientOptions{APIKey: "g-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}

	resp, err := client.Chat(context.Background(), ChatRequest{
		Model:  "gemini-2.5-flash",
		System: "be brief",
		Messages: []Message{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "hey"},
			{Role: RoleUser, Content: "again"},
		},
	})
	if err != nil {
		t.Fatalf("Chat error = %v", err)
	}
	if resp.Text != "hello\nthere" {
		t.Fatalf("resp.Text = %q", resp.Text)
	}

	if !strings.HasSuffix(gotPath, "/models/gemini-2.5-flash:generateContent") {
		t.Fatalf("path = %q", gotPath)
	}
	if len(gotBody.SystemInstruction.Parts) != 1 || gotBody.SystemInstruction.Parts[0].Text != "be brief" {
		t.Fatalf("system instruction = %+v", gotBody.SystemInstruction)
	}
	if len(gotBody.Contents) != 3 || gotBody.Contents[1].Role != "model" {
		t.Fatalf("contents = %+v", gotBody.Contents)
	}
}

func TestGemini_NoCandidatesIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer server.Close()

	client, err := New(models.Gemini, ClientOptions{APIKey: "g-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if _, err := client.Chat(context.Background(), ChatRequest{
		Model:    "gemini-2.5-flash",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	}); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
