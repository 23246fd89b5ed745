package chat

import "time"

// Role attributes a turn to its author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Turn is one message exchanged in a conversation. Immutable once created.
type Turn struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// Conversation is the ordered, persisted record of all turns under one
// identifier. Turns are append-only; the store assigns ID at creation and it
// never changes. LastUpdated is monotonically non-decreasing across saves.
type Conversation struct {
	ID          string
	Turns       []Turn
	LastUpdated time.Time
}

// Summary is the listing view of a Conversation.
type Summary struct {
	ID          string
	Title       string
	LastUpdated time.Time
}

// --- UseCase Inputs ---

type ConsolidateInput struct {
	Turns      []Turn
	ExistingID string // empty → create a new conversation
}

// --- UseCase Outputs ---

type ConsolidateOutput struct {
	Conversation Conversation
	Reply        Turn
}

type ListOutput struct {
	Summaries []Summary
}

type DetailOutput struct {
	Conversation Conversation
}
