package chat

import "errors"

var (
	ErrEmptyTurns           = errors.New("at least one turn required")
	ErrEmptyContent         = errors.New("turn content must not be empty")
	ErrInvalidRole          = errors.New("turn role must be user, assistant or system")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyReply           = errors.New("provider returned an empty reply")
)
