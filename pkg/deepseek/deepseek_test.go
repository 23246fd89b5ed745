package deepseek_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chat-relay/pkg/deepseek"
)

func TestGenerateContent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("unexpected auth header %q", got)
			}

			var req deepseek.Request
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			if len(req.Messages) != 2 {
				t.Errorf("expected 2 messages, got %d", len(req.Messages))
			}

			json.NewEncoder(w).Encode(deepseek.Response{
				Model: "deepseek-chat",
				Choices: []deepseek.Choice{
					{Message: deepseek.Message{Role: "assistant", Content: "Hello!"}},
				},
				Usage: deepseek.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
			})
		}))
		defer srv.Close()

		client, err := deepseek.New(deepseek.Config{APIKey: "test-key", BaseURL: srv.URL})
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		resp, err := client.GenerateContent(context.Background(), &deepseek.Request{
			Messages: []deepseek.Message{
				{Role: "system", Content: "You are helpful."},
				{Role: "user", Content: "Hi"},
			},
		})
		if err != nil {
			t.Fatalf("GenerateContent: %v", err)
		}
		if resp.Choices[0].Message.Content != "Hello!" {
			t.Errorf("unexpected reply %q", resp.Choices[0].Message.Content)
		}
	})

	t.Run("API error returns APIError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit"}}`))
		}))
		defer srv.Close()

		client, _ := deepseek.New(deepseek.Config{APIKey: "test-key", BaseURL: srv.URL})

		_, err := client.GenerateContent(context.Background(), &deepseek.Request{
			Messages: []deepseek.Message{{Role: "user", Content: "Hi"}},
		})

		var apiErr *deepseek.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusTooManyRequests {
			t.Errorf("expected status 429, got %d", apiErr.StatusCode)
		}
		if apiErr.Message != "quota exceeded" {
			t.Errorf("expected provider detail attached, got %q", apiErr.Message)
		}
	})

	t.Run("transport failure is not APIError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // closed before use → connection refused

		client, _ := deepseek.New(deepseek.Config{APIKey: "test-key", BaseURL: srv.URL})

		_, err := client.GenerateContent(context.Background(), &deepseek.Request{
			Messages: []deepseek.Message{{Role: "user", Content: "Hi"}},
		})
		if err == nil {
			t.Fatal("expected error")
		}

		var apiErr *deepseek.APIError
		if errors.As(err, &apiErr) {
			t.Errorf("transport failure should not be APIError: %v", err)
		}
	})

	t.Run("missing API key", func(t *testing.T) {
		if _, err := deepseek.New(deepseek.Config{}); err == nil {
			t.Error("expected error for missing API key")
		}
	})
}
