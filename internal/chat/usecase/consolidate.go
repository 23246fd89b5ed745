package usecase

import (
	"context"
	"strings"
	"time"

	"chat-relay/internal/chat"
	repo "chat-relay/internal/chat/repository"
	"chat-relay/pkg/llmprovider"
)

// Consolidate merges the incoming turn batch with the stored conversation and
// the freshly generated reply. The client sends the full running context on
// every exchange, so only the latest user turn is new information to persist;
// the reply is appended after it. Nothing is persisted when any step before
// the final save fails.
func (uc *implUseCase) Consolidate(ctx context.Context, input chat.ConsolidateInput) (chat.ConsolidateOutput, error) {
	if err := validateTurns(input.Turns); err != nil {
		return chat.ConsolidateOutput{}, err
	}

	// Serialize per conversation so concurrent saves cannot overwrite each
	// other's appended turns.
	if input.ExistingID != "" {
		unlock := uc.locks.Lock(input.ExistingID)
		defer unlock()
	}

	var conv chat.Conversation
	if input.ExistingID != "" {
		existing, err := uc.repo.GetConversation(ctx, input.ExistingID)
		if err != nil {
			uc.l.Errorf(ctx, "uc.Consolidate GetConversation: %v", err)
			return chat.ConsolidateOutput{}, err
		}
		if existing.ID == "" {
			return chat.ConsolidateOutput{}, chat.ErrConversationNotFound
		}
		conv = existing
	}

	// The model sees the full incoming context, not just the latest turn.
	reply, err := uc.generateReply(ctx, input.Turns)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Consolidate generateReply: %v", err)
		return chat.ConsolidateOutput{}, err
	}

	now := time.Now().UTC()
	if !conv.LastUpdated.IsZero() && now.Before(conv.LastUpdated) {
		// Clock skew guard: LastUpdated never goes backwards.
		now = conv.LastUpdated
	}

	if userTurn, ok := latestUserTurn(input.Turns); ok {
		userTurn.Timestamp = now
		conv.Turns = append(conv.Turns, userTurn)
	}
	reply.Timestamp = now
	conv.Turns = append(conv.Turns, reply)
	conv.LastUpdated = now

	var saved chat.Conversation
	if conv.ID == "" {
		saved, err = uc.repo.CreateConversation(ctx, repo.CreateConversationOptions{
			Turns:       conv.Turns,
			LastUpdated: conv.LastUpdated,
		})
	} else {
		saved, err = uc.repo.SaveConversation(ctx, repo.SaveConversationOptions{
			ID:          conv.ID,
			Turns:       conv.Turns,
			LastUpdated: conv.LastUpdated,
		})
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.Consolidate save: %v", err)
		return chat.ConsolidateOutput{}, err
	}
	if saved.ID == "" {
		// Conversation vanished between load and save.
		return chat.ConsolidateOutput{}, chat.ErrConversationNotFound
	}

	return chat.ConsolidateOutput{
		Conversation: saved,
		Reply:        reply,
	}, nil
}

// generateReply invokes the completion client with the full turn batch and
// returns the reply as an assistant turn.
func (uc *implUseCase) generateReply(ctx context.Context, turns []chat.Turn) (chat.Turn, error) {
	req := &llmprovider.Request{
		Messages:    make([]llmprovider.Message, len(turns)),
		Temperature: uc.cfg.Temperature,
		MaxTokens:   uc.cfg.MaxOutputTokens,
	}
	for i, t := range turns {
		req.Messages[i] = llmprovider.Message{
			Role:    string(t.Role),
			Content: t.Content,
		}
	}

	resp, err := uc.llm.GenerateContent(ctx, req)
	if err != nil {
		return chat.Turn{}, err
	}
	if strings.TrimSpace(resp.Content.Content) == "" {
		return chat.Turn{}, chat.ErrEmptyReply
	}

	return chat.Turn{
		Role:    chat.RoleAssistant,
		Content: resp.Content.Content,
	}, nil
}

// validateTurns enforces the consolidation input contract.
func validateTurns(turns []chat.Turn) error {
	if len(turns) == 0 {
		return chat.ErrEmptyTurns
	}
	for _, t := range turns {
		if !t.Role.Valid() {
			return chat.ErrInvalidRole
		}
		if strings.TrimSpace(t.Content) == "" {
			return chat.ErrEmptyContent
		}
	}
	return nil
}

// latestUserTurn returns the structurally last turn with role user, by
// position. Matching by position rather than content keeps batches with
// duplicate content unambiguous.
func latestUserTurn(turns []chat.Turn) (chat.Turn, bool) {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == chat.RoleUser {
			return turns[i], true
		}
	}
	return chat.Turn{}, false
}
