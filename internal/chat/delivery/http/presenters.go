package http

import (
	"time"

	"chat-relay/internal/chat"
)

// --- Request DTOs ---

type turnReq struct {
	Role    string `json:"role"    binding:"required,oneof=user assistant system"`
	Content string `json:"content" binding:"required"`
}

type consolidateReq struct {
	Turns      []turnReq `json:"turns"       binding:"required,min=1,dive"`
	ExistingID string    `json:"existing_id"`
}

func (r consolidateReq) validate() error { return nil }

func (r consolidateReq) toInput() chat.ConsolidateInput {
	turns := make([]chat.Turn, len(r.Turns))
	for i, t := range r.Turns {
		turns[i] = chat.Turn{
			Role:    chat.Role(t.Role),
			Content: t.Content,
		}
	}
	return chat.ConsolidateInput{
		Turns:      turns,
		ExistingID: r.ExistingID,
	}
}

// --- Response DTOs ---

type turnResp struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func newTurnResp(t chat.Turn) turnResp {
	return turnResp{
		Role:      string(t.Role),
		Content:   t.Content,
		Timestamp: t.Timestamp,
	}
}

type consolidateResp struct {
	ConversationID string   `json:"conversation_id"`
	Reply          turnResp `json:"reply"`
}

func (h *handler) newConsolidateResp(out chat.ConsolidateOutput) consolidateResp {
	return consolidateResp{
		ConversationID: out.Conversation.ID,
		Reply:          newTurnResp(out.Reply),
	}
}

type summaryResp struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	LastUpdated time.Time `json:"last_updated"`
}

type listResp struct {
	Conversations []summaryResp `json:"conversations"`
}

func (h *handler) newListResp(out chat.ListOutput) listResp {
	summaries := make([]summaryResp, len(out.Summaries))
	for i, s := range out.Summaries {
		summaries[i] = summaryResp{
			ID:          s.ID,
			Title:       s.Title,
			LastUpdated: s.LastUpdated,
		}
	}
	return listResp{Conversations: summaries}
}

type detailResp struct {
	ID          string     `json:"id"`
	Turns       []turnResp `json:"turns"`
	LastUpdated time.Time  `json:"last_updated"`
}

func (h *handler) newDetailResp(out chat.DetailOutput) detailResp {
	turns := make([]turnResp, len(out.Conversation.Turns))
	for i, t := range out.Conversation.Turns {
		turns[i] = newTurnResp(t)
	}
	return detailResp{
		ID:          out.Conversation.ID,
		Turns:       turns,
		LastUpdated: out.Conversation.LastUpdated,
	}
}
