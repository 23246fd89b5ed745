package usecase_test

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"chat-relay/internal/chat"
	"chat-relay/internal/chat/repository"
	"chat-relay/pkg/llmprovider"
)

// mock dependencies

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

// mockRepo is an observable in-memory store with per-method fail switches.
type mockRepo struct {
	convs map[string]chat.Conversation

	failGet    bool
	failSave   bool
	failCreate bool
	failList   bool

	creates int
	saves   int
}

func newMockRepo() *mockRepo {
	return &mockRepo{convs: make(map[string]chat.Conversation)}
}

func (m *mockRepo) CreateConversation(ctx context.Context, opt repository.CreateConversationOptions) (chat.Conversation, error) {
	if m.failCreate {
		return chat.Conversation{}, repository.ErrFailedToInsert
	}
	m.creates++
	conv := chat.Conversation{
		ID:          uuid.NewString(),
		Turns:       append([]chat.Turn(nil), opt.Turns...),
		LastUpdated: opt.LastUpdated,
	}
	m.convs[conv.ID] = conv
	return conv, nil
}

func (m *mockRepo) GetConversation(ctx context.Context, id string) (chat.Conversation, error) {
	if m.failGet {
		return chat.Conversation{}, repository.ErrFailedToGet
	}
	conv, ok := m.convs[id]
	if !ok {
		return chat.Conversation{}, nil
	}
	conv.Turns = append([]chat.Turn(nil), conv.Turns...)
	return conv, nil
}

func (m *mockRepo) SaveConversation(ctx context.Context, opt repository.SaveConversationOptions) (chat.Conversation, error) {
	if m.failSave {
		return chat.Conversation{}, repository.ErrFailedToUpdate
	}
	if _, ok := m.convs[opt.ID]; !ok {
		return chat.Conversation{}, nil
	}
	m.saves++
	conv := chat.Conversation{
		ID:          opt.ID,
		Turns:       append([]chat.Turn(nil), opt.Turns...),
		LastUpdated: opt.LastUpdated,
	}
	m.convs[opt.ID] = conv
	return conv, nil
}

func (m *mockRepo) ListConversations(ctx context.Context) ([]chat.Conversation, error) {
	if m.failList {
		return nil, repository.ErrFailedToList
	}
	out := make([]chat.Conversation, 0, len(m.convs))
	for _, conv := range m.convs {
		out = append(out, conv)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	return out, nil
}

// seed installs a conversation with a known ID, bypassing Create.
func (m *mockRepo) seed(conv chat.Conversation) {
	m.convs[conv.ID] = conv
}

// mockCompletion is a stubbed completion client.
type mockCompletion struct {
	reply string
	err   error

	calls   int
	lastReq *llmprovider.Request
}

func (m *mockCompletion) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llmprovider.Response{
		Content: llmprovider.Message{Role: "assistant", Content: m.reply},
		Usage:   &llmprovider.Usage{},
	}, nil
}

var errProviderDown = errors.New("provider down")
