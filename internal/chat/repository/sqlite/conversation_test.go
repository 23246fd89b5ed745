package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"chat-relay/internal/chat"
	"chat-relay/internal/chat/repository"
	"chat-relay/internal/chat/repository/sqlite"
)

type testLogger struct{}

func (testLogger) Debug(ctx context.Context, args ...any)                  {}
func (testLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (testLogger) Info(ctx context.Context, args ...any)                   {}
func (testLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (testLogger) Warn(ctx context.Context, args ...any)                   {}
func (testLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (testLogger) Error(ctx context.Context, args ...any)                  {}
func (testLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (testLogger) DPanic(ctx context.Context, args ...any)                 {}
func (testLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (testLogger) Panic(ctx context.Context, args ...any)                  {}
func (testLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (testLogger) Fatal(ctx context.Context, args ...any)                  {}
func (testLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

func newTestRepo(t *testing.T) repository.Repository {
	t.Helper()

	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := sqlite.InitSchema(db); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}

	return sqlite.New(db, testLogger{})
}

func TestConversationRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	created, err := r.CreateConversation(ctx, repository.CreateConversationOptions{
		Turns: []chat.Turn{
			{Role: chat.RoleUser, Content: "Hi", Timestamp: now},
			{Role: chat.RoleAssistant, Content: "Hello!", Timestamp: now},
		},
		LastUpdated: now,
	})
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned ID")
	}

	got, err := r.GetConversation(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID mismatch: %q vs %q", got.ID, created.ID)
	}
	if len(got.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(got.Turns))
	}
	if got.Turns[0].Role != chat.RoleUser || got.Turns[0].Content != "Hi" {
		t.Errorf("unexpected first turn %+v", got.Turns[0])
	}
	if got.Turns[1].Role != chat.RoleAssistant || got.Turns[1].Content != "Hello!" {
		t.Errorf("unexpected second turn %+v", got.Turns[1])
	}
}

func TestGetConversationNotFound(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	got, err := r.GetConversation(ctx, "nonexistent-id")
	if err != nil {
		t.Fatalf("not-found must not error: %v", err)
	}
	if got.ID != "" {
		t.Errorf("expected zero-value conversation, got %+v", got)
	}
}

func TestSaveConversationAppendsTurns(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	created, err := r.CreateConversation(ctx, repository.CreateConversationOptions{
		Turns: []chat.Turn{
			{Role: chat.RoleUser, Content: "Hi", Timestamp: base},
			{Role: chat.RoleAssistant, Content: "Hello!", Timestamp: base},
		},
		LastUpdated: base,
	})
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}

	later := base.Add(time.Minute)
	turns := append(created.Turns,
		chat.Turn{Role: chat.RoleUser, Content: "How are you?", Timestamp: later},
		chat.Turn{Role: chat.RoleAssistant, Content: "Fine, thanks.", Timestamp: later},
	)
	saved, err := r.SaveConversation(ctx, repository.SaveConversationOptions{
		ID:          created.ID,
		Turns:       turns,
		LastUpdated: later,
	})
	if err != nil {
		t.Fatalf("SaveConversation: %v", err)
	}
	if saved.ID != created.ID {
		t.Errorf("ID changed on save: %q", saved.ID)
	}

	got, err := r.GetConversation(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if len(got.Turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(got.Turns))
	}
	wantContents := []string{"Hi", "Hello!", "How are you?", "Fine, thanks."}
	for i, want := range wantContents {
		if got.Turns[i].Content != want {
			t.Errorf("turn %d: expected %q, got %q", i, want, got.Turns[i].Content)
		}
	}
	if !got.LastUpdated.After(base.Add(-time.Second)) {
		t.Errorf("last_updated not advanced: %v", got.LastUpdated)
	}
}

func TestSaveConversationUnknownID(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	saved, err := r.SaveConversation(ctx, repository.SaveConversationOptions{
		ID:          "missing",
		Turns:       []chat.Turn{{Role: chat.RoleUser, Content: "x", Timestamp: time.Now()}},
		LastUpdated: time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != "" {
		t.Errorf("expected zero-value for unknown ID, got %+v", saved)
	}
}

func TestListConversationsOrdering(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	older, err := r.CreateConversation(ctx, repository.CreateConversationOptions{
		Turns: []chat.Turn{
			{Role: chat.RoleUser, Content: "older", Timestamp: base},
			{Role: chat.RoleAssistant, Content: "older reply", Timestamp: base},
		},
		LastUpdated: base,
	})
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	newer, err := r.CreateConversation(ctx, repository.CreateConversationOptions{
		Turns:       []chat.Turn{{Role: chat.RoleUser, Content: "newer", Timestamp: base.Add(time.Hour)}},
		LastUpdated: base.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}

	convs, err := r.ListConversations(ctx)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(convs))
	}
	if convs[0].ID != newer.ID || convs[1].ID != older.ID {
		t.Errorf("expected most recently updated first, got %q then %q", convs[0].ID, convs[1].ID)
	}
	// Each conversation carries exactly its own turns, in insertion order.
	if len(convs[0].Turns) != 1 || convs[0].Turns[0].Content != "newer" {
		t.Errorf("turns not loaded for listing: %+v", convs[0].Turns)
	}
	if len(convs[1].Turns) != 2 ||
		convs[1].Turns[0].Content != "older" ||
		convs[1].Turns[1].Content != "older reply" {
		t.Errorf("turns misattributed or reordered: %+v", convs[1].Turns)
	}
}
