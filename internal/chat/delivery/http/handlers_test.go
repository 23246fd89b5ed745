package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"chat-relay/internal/chat"
	chatHTTP "chat-relay/internal/chat/delivery/http"
	"chat-relay/internal/middleware"
	"chat-relay/pkg/llmprovider"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockUseCase struct {
	consolidateOut chat.ConsolidateOutput
	consolidateErr error
	listOut        chat.ListOutput
	listErr        error
	detailOut      chat.DetailOutput
	detailErr      error

	gotInput chat.ConsolidateInput
	gotID    string
}

func (m *mockUseCase) Consolidate(ctx context.Context, input chat.ConsolidateInput) (chat.ConsolidateOutput, error) {
	m.gotInput = input
	return m.consolidateOut, m.consolidateErr
}

func (m *mockUseCase) List(ctx context.Context) (chat.ListOutput, error) {
	return m.listOut, m.listErr
}

func (m *mockUseCase) Detail(ctx context.Context, id string) (chat.DetailOutput, error) {
	m.gotID = id
	return m.detailOut, m.detailErr
}

func newTestRouter(uc chat.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := chatHTTP.New(&mockLogger{}, uc)
	mw := middleware.New(&mockLogger{}, 6000)
	chatHTTP.RegisterRoutes(r.Group("/api/v1"), h, mw)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestConsolidateHandler(t *testing.T) {
	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		uc := &mockUseCase{
			consolidateOut: chat.ConsolidateOutput{
				Conversation: chat.Conversation{ID: "conv-1", LastUpdated: now},
				Reply:        chat.Turn{Role: chat.RoleAssistant, Content: "Hello!", Timestamp: now},
			},
		}
		r := newTestRouter(uc)

		w := doRequest(r, http.MethodPost, "/api/v1/chat/consolidate",
			`{"turns":[{"role":"user","content":"Hi"}],"existing_id":"conv-1"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Data struct {
				ConversationID string `json:"conversation_id"`
				Reply          struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"reply"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Data.ConversationID != "conv-1" || resp.Data.Reply.Content != "Hello!" {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
		if uc.gotInput.ExistingID != "conv-1" || len(uc.gotInput.Turns) != 1 {
			t.Errorf("unexpected input passed to use case: %+v", uc.gotInput)
		}
	})

	t.Run("missing turns is a 400", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{})

		w := doRequest(r, http.MethodPost, "/api/v1/chat/consolidate", `{"turns":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("bad role is a 400", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{})

		w := doRequest(r, http.MethodPost, "/api/v1/chat/consolidate",
			`{"turns":[{"role":"narrator","content":"Hi"}]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown conversation is a 404", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{consolidateErr: chat.ErrConversationNotFound})

		w := doRequest(r, http.MethodPost, "/api/v1/chat/consolidate",
			`{"turns":[{"role":"user","content":"Hi"}],"existing_id":"missing"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("provider outage is a 503", func(t *testing.T) {
		uc := &mockUseCase{consolidateErr: &llmprovider.ProviderError{
			Provider: "deepseek",
			Kind:     llmprovider.ErrProviderUnavailable,
			Detail:   errors.New("connection refused"),
		}}
		r := newTestRouter(uc)

		w := doRequest(r, http.MethodPost, "/api/v1/chat/consolidate",
			`{"turns":[{"role":"user","content":"Hi"}]}`)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
		if strings.Contains(w.Body.String(), "connection refused") {
			t.Error("provider detail must not leak to the client")
		}
	})
}

func TestListHandler(t *testing.T) {
	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	uc := &mockUseCase{
		listOut: chat.ListOutput{Summaries: []chat.Summary{
			{ID: "b", Title: "Newest", LastUpdated: now.Add(time.Hour)},
			{ID: "a", Title: "New Chat", LastUpdated: now},
		}},
	}
	r := newTestRouter(uc)

	w := doRequest(r, http.MethodGet, "/api/v1/chat/conversations", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data struct {
			Conversations []struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"conversations"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Conversations) != 2 || resp.Data.Conversations[0].ID != "b" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestDetailHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockUseCase{
			detailOut: chat.DetailOutput{Conversation: chat.Conversation{
				ID: "conv-1",
				Turns: []chat.Turn{
					{Role: chat.RoleUser, Content: "Hi"},
					{Role: chat.RoleAssistant, Content: "Hello!"},
				},
			}},
		}
		r := newTestRouter(uc)

		w := doRequest(r, http.MethodGet, "/api/v1/chat/conversations/conv-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if uc.gotID != "conv-1" {
			t.Errorf("expected ID forwarded, got %q", uc.gotID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{detailErr: chat.ErrConversationNotFound})

		w := doRequest(r, http.MethodGet, "/api/v1/chat/conversations/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
