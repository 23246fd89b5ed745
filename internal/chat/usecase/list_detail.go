package usecase

import (
	"context"

	"chat-relay/internal/chat"
)

// List returns summaries of all conversations, most recently updated first.
// Ordering comes from the repository; Summarize itself is order-agnostic.
func (uc *implUseCase) List(ctx context.Context) (chat.ListOutput, error) {
	convs, err := uc.repo.ListConversations(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListConversations: %v", err)
		return chat.ListOutput{}, err
	}

	summaries := make([]chat.Summary, len(convs))
	for i, conv := range convs {
		summaries[i] = chat.Summarize(conv)
	}

	return chat.ListOutput{Summaries: summaries}, nil
}

// Detail retrieves a full conversation by ID.
// Returns ErrConversationNotFound when it does not exist.
func (uc *implUseCase) Detail(ctx context.Context, id string) (chat.DetailOutput, error) {
	conv, err := uc.repo.GetConversation(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Detail GetConversation: %v", err)
		return chat.DetailOutput{}, err
	}
	if conv.ID == "" {
		return chat.DetailOutput{}, chat.ErrConversationNotFound
	}
	return chat.DetailOutput{Conversation: conv}, nil
}
