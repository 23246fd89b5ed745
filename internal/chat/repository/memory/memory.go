package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"chat-relay/internal/chat"
	repo "chat-relay/internal/chat/repository"
)

// implRepository is an in-process conversation store. Used in dev mode and
// tests; history does not survive a restart.
type implRepository struct {
	mu    sync.RWMutex
	convs map[string]chat.Conversation
}

// New creates a new in-memory Repository for the chat domain.
func New() repo.Repository {
	return &implRepository{
		convs: make(map[string]chat.Conversation),
	}
}

func (r *implRepository) CreateConversation(ctx context.Context, opt repo.CreateConversationOptions) (chat.Conversation, error) {
	conv := chat.Conversation{
		ID:          uuid.NewString(),
		Turns:       cloneTurns(opt.Turns),
		LastUpdated: opt.LastUpdated,
	}

	r.mu.Lock()
	r.convs[conv.ID] = conv
	r.mu.Unlock()

	return cloneConversation(conv), nil
}

// GetConversation returns zero-value Conversation (ID == "") when not found.
func (r *implRepository) GetConversation(ctx context.Context, id string) (chat.Conversation, error) {
	r.mu.RLock()
	conv, ok := r.convs[id]
	r.mu.RUnlock()

	if !ok {
		return chat.Conversation{}, nil
	}
	return cloneConversation(conv), nil
}

func (r *implRepository) SaveConversation(ctx context.Context, opt repo.SaveConversationOptions) (chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.convs[opt.ID]; !ok {
		return chat.Conversation{}, nil
	}

	conv := chat.Conversation{
		ID:          opt.ID,
		Turns:       cloneTurns(opt.Turns),
		LastUpdated: opt.LastUpdated,
	}
	r.convs[opt.ID] = conv

	return cloneConversation(conv), nil
}

func (r *implRepository) ListConversations(ctx context.Context) ([]chat.Conversation, error) {
	r.mu.RLock()
	convs := make([]chat.Conversation, 0, len(r.convs))
	for _, conv := range r.convs {
		convs = append(convs, cloneConversation(conv))
	}
	r.mu.RUnlock()

	sort.Slice(convs, func(i, j int) bool {
		if convs[i].LastUpdated.Equal(convs[j].LastUpdated) {
			return convs[i].ID < convs[j].ID
		}
		return convs[i].LastUpdated.After(convs[j].LastUpdated)
	})

	return convs, nil
}

// Copies keep callers from mutating stored state through shared slices.

func cloneTurns(turns []chat.Turn) []chat.Turn {
	if turns == nil {
		return nil
	}
	out := make([]chat.Turn, len(turns))
	copy(out, turns)
	return out
}

func cloneConversation(conv chat.Conversation) chat.Conversation {
	conv.Turns = cloneTurns(conv.Turns)
	return conv
}
