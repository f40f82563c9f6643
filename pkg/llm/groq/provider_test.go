package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"commerce-agent-be/pkg/llm"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header: %s", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "openai/gpt-oss-120b" {
			t.Fatalf("unexpected model: %s", req.Model)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(req.Messages))
		}
		if req.MaxCompletionTokens != 2048 {
			t.Fatalf("unexpected max_completion_tokens: %d", req.MaxCompletionTokens)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"  hello there  "}}]}`)
	}))
	defer server.Close()

	p := NewGroqProvider("test-key", server.URL, "openai/gpt-oss-120b")
	got, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "you are a test"},
		{Role: "user", Content: "hi"},
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if got != "hello there" {
		t.Fatalf("expected trimmed content, got %q", got)
	}
}

func TestChatAppliesOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Temperature != 0.0 {
			t.Fatalf("unexpected temperature: %f", req.Temperature)
		}
		if req.MaxCompletionTokens != 100 {
			t.Fatalf("unexpected max_completion_tokens: %d", req.MaxCompletionTokens)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer server.Close()

	p := NewGroqProvider("k", server.URL, "m")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}},
		llm.WithTemperature(0.0), llm.WithMaxTokens(100))
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
}

func TestChatAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid api key"}}`)
	}))
	defer server.Close()

	p := NewGroqProvider("bad", server.URL, "m")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestChatEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	p := NewGroqProvider("k", server.URL, "m")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestGenerateWrapsPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Fatalf("expected single user message, got %+v", req.Messages)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer server.Close()

	p := NewGroqProvider("k", server.URL, "m")
	if _, err := p.Generate(context.Background(), "hi"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
}
