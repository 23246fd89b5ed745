package chat_test

import (
	"strings"
	"testing"
	"time"

	"chat-relay/internal/chat"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	t.Run("short first user turn kept unchanged", func(t *testing.T) {
		content := strings.Repeat("a", 30)
		conv := chat.Conversation{
			ID:          "c1",
			LastUpdated: now,
			Turns: []chat.Turn{
				{Role: chat.RoleUser, Content: content},
				{Role: chat.RoleAssistant, Content: "reply"},
			},
		}

		s := chat.Summarize(conv)
		if s.Title != content {
			t.Errorf("expected title unchanged, got %q", s.Title)
		}
		if strings.Contains(s.Title, "…") {
			t.Error("short title should not carry an ellipsis")
		}
		if s.ID != "c1" || !s.LastUpdated.Equal(now) {
			t.Errorf("unexpected summary %+v", s)
		}
	})

	t.Run("long first user turn truncated to 50 runes plus ellipsis", func(t *testing.T) {
		content := strings.Repeat("b", 80)
		conv := chat.Conversation{
			Turns: []chat.Turn{{Role: chat.RoleUser, Content: content}},
		}

		s := chat.Summarize(conv)
		if !strings.HasSuffix(s.Title, "…") {
			t.Fatalf("expected ellipsis suffix, got %q", s.Title)
		}
		prefix := strings.TrimSuffix(s.Title, "…")
		if len([]rune(prefix)) != 50 {
			t.Errorf("expected 50-rune prefix, got %d", len([]rune(prefix)))
		}
		if prefix != content[:50] {
			t.Errorf("prefix does not match content start: %q", prefix)
		}
	})

	t.Run("multi-byte content truncated on rune boundary", func(t *testing.T) {
		content := strings.Repeat("日", 60)
		conv := chat.Conversation{
			Turns: []chat.Turn{{Role: chat.RoleUser, Content: content}},
		}

		s := chat.Summarize(conv)
		want := strings.Repeat("日", 50) + "…"
		if s.Title != want {
			t.Errorf("expected %q, got %q", want, s.Title)
		}
	})

	t.Run("first user turn wins, not a later one", func(t *testing.T) {
		conv := chat.Conversation{
			Turns: []chat.Turn{
				{Role: chat.RoleSystem, Content: "system prompt"},
				{Role: chat.RoleUser, Content: "first question"},
				{Role: chat.RoleAssistant, Content: "answer"},
				{Role: chat.RoleUser, Content: "second question"},
			},
		}

		if s := chat.Summarize(conv); s.Title != "first question" {
			t.Errorf("expected first user turn as title, got %q", s.Title)
		}
	})

	t.Run("no user turn yields placeholder", func(t *testing.T) {
		conv := chat.Conversation{
			Turns: []chat.Turn{{Role: chat.RoleSystem, Content: "system only"}},
		}

		if s := chat.Summarize(conv); s.Title != "New Chat" {
			t.Errorf("expected placeholder title, got %q", s.Title)
		}
	})

	t.Run("idempotent and pure", func(t *testing.T) {
		conv := chat.Conversation{
			ID:          "c2",
			LastUpdated: now,
			Turns:       []chat.Turn{{Role: chat.RoleUser, Content: "Hi"}},
		}

		first := chat.Summarize(conv)
		second := chat.Summarize(conv)
		if first != second {
			t.Errorf("summaries differ: %+v vs %+v", first, second)
		}
		if conv.Turns[0].Content != "Hi" {
			t.Error("input conversation mutated")
		}
	})
}
