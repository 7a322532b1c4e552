package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func geminiServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *GeminiClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewGeminiClientWithConfig(GeminiConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gemini-2.5-flash",
		Timeout: 5 * time.Second,
	})
	return srv, client
}

func completionBody(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestGeminiComplete(t *testing.T) {
	var gotSystem atomic.Bool
	_, client := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.SystemInstruction != nil {
			gotSystem.Store(true)
		}
		w.Write([]byte(completionBody("  func add(a, b int) int { return a + b }  ")))
	})

	text, err := client.CompleteWithSystem(context.Background(), "write go", "add two numbers")
	if err != nil {
		t.Fatalf("CompleteWithSystem() error = %v", err)
	}
	if !gotSystem.Load() {
		t.Error("system instruction was not sent")
	}
	if strings.HasPrefix(text, " ") || strings.HasSuffix(text, " ") {
		t.Error("response should be trimmed")
	}
	if !strings.Contains(text, "func add") {
		t.Errorf("unexpected completion: %q", text)
	}
}

func TestGeminiRetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	_, client := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(completionBody("ok")))
	})

	text, err := client.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if text != "ok" {
		t.Errorf("completion = %q, want ok", text)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want a retry after the 429", calls.Load())
	}
}

func TestGeminiNonRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	_, client := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"bad request"}}`))
	})

	if _, err := client.Complete(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, client errors must not be retried", calls.Load())
	}
}

func TestGeminiMissingAPIKey(t *testing.T) {
	client := NewGeminiClientWithConfig(GeminiConfig{BaseURL: "http://127.0.0.1:0"})
	if _, err := client.Complete(context.Background(), "hello"); err == nil {
		t.Fatal("expected error without an API key")
	}
}

func TestGeminiEmptyCandidates(t *testing.T) {
	_, client := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	if _, err := client.Complete(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for empty candidate list")
	}
}
