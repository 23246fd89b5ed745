package repository

import (
	"time"

	"chat-relay/internal/chat"
)

// CreateConversationOptions holds parameters for inserting a new conversation.
type CreateConversationOptions struct {
	Turns       []chat.Turn
	LastUpdated time.Time
}

// SaveConversationOptions holds parameters for overwriting an existing conversation.
type SaveConversationOptions struct {
	ID          string
	Turns       []chat.Turn
	LastUpdated time.Time
}
