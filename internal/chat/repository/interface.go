package repository

import (
	"context"

	"chat-relay/internal/chat"
)

// Repository is the composed interface for the chat domain data store.
type Repository interface {
	ConversationRepository
}

// ConversationRepository defines all data access methods for conversations.
type ConversationRepository interface {
	// CreateConversation persists a new conversation and assigns its ID.
	CreateConversation(ctx context.Context, opt CreateConversationOptions) (chat.Conversation, error)

	// GetConversation retrieves a conversation by ID.
	// Returns zero-value Conversation (ID == "") when not found, never an error.
	GetConversation(ctx context.Context, id string) (chat.Conversation, error)

	// SaveConversation overwrites an existing conversation keyed by its ID.
	SaveConversation(ctx context.Context, opt SaveConversationOptions) (chat.Conversation, error)

	// ListConversations returns all conversations ordered by LastUpdated descending.
	ListConversations(ctx context.Context) ([]chat.Conversation, error)
}
