package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"social_webapp/internal/domain"
)

func TestClientComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" || len(req.Messages) != 1 {
			t.Errorf("unexpected request %+v", req)
		}

		json.NewEncoder(w).Encode(completionResponse{
			Choices: []struct {
				Message domain.ChatMessage `json:"message"`
			}{{Message: domain.ChatMessage{Role: "assistant", Content: "hi"}}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "test-model")
	reply, err := c.Complete(context.Background(), []domain.ChatMessage{{Role: "user", Content: "hello"}})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if reply.Role != "assistant" || reply.Content != "hi" {
		t.Fatalf("unexpected reply %+v", reply)
	}
}

func TestClientCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key", "test-model")
	if _, err := c.Complete(context.Background(), nil); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestClientCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "test-model")
	if _, err := c.Complete(context.Background(), nil); err == nil {
		t.Fatal("expected error on empty choices")
	}
}
