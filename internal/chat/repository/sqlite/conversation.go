package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"chat-relay/internal/chat"
	repo "chat-relay/internal/chat/repository"
)

// CreateConversation inserts a new conversation with its turns in one
// transaction and returns the created entity with its assigned ID.
func (r *implRepository) CreateConversation(ctx context.Context, opt repo.CreateConversationOptions) (chat.Conversation, error) {
	id := uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("CreateConversation"), err)
		return chat.Conversation{}, repo.ErrFailedToInsert
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO conversations (id, last_updated) VALUES (?, ?)`,
		id, opt.LastUpdated,
	); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateConversation"), err)
		return chat.Conversation{}, repo.ErrFailedToInsert
	}

	if err := insertTurns(ctx, tx, id, opt.Turns); err != nil {
		r.l.Errorf(ctx, "%s turns: %v", r.dsn("CreateConversation"), err)
		return chat.Conversation{}, repo.ErrFailedToInsert
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("CreateConversation"), err)
		return chat.Conversation{}, repo.ErrFailedToInsert
	}

	return chat.Conversation{
		ID:          id,
		Turns:       opt.Turns,
		LastUpdated: opt.LastUpdated,
	}, nil
}

// GetConversation retrieves a conversation with its turns in insertion order.
// Returns zero-value Conversation (ID == "") when not found, never an error.
func (r *implRepository) GetConversation(ctx context.Context, id string) (chat.Conversation, error) {
	var conv chat.Conversation
	err := r.db.QueryRowContext(ctx,
		`SELECT id, last_updated FROM conversations WHERE id = ?`, id,
	).Scan(&conv.ID, &conv.LastUpdated)
	if err == sql.ErrNoRows {
		return chat.Conversation{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetConversation"), err)
		return chat.Conversation{}, repo.ErrFailedToGet
	}

	turns, err := r.loadTurns(ctx, id)
	if err != nil {
		r.l.Errorf(ctx, "%s turns: %v", r.dsn("GetConversation"), err)
		return chat.Conversation{}, repo.ErrFailedToGet
	}
	conv.Turns = turns

	return conv, nil
}

// SaveConversation overwrites the stored conversation: turns are replaced
// wholesale inside one transaction so a failure leaves the row untouched.
func (r *implRepository) SaveConversation(ctx context.Context, opt repo.SaveConversationOptions) (chat.Conversation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("SaveConversation"), err)
		return chat.Conversation{}, repo.ErrFailedToUpdate
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE conversations SET last_updated = ? WHERE id = ?`,
		opt.LastUpdated, opt.ID,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SaveConversation"), err)
		return chat.Conversation{}, repo.ErrFailedToUpdate
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return chat.Conversation{}, nil
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM turns WHERE conversation_id = ?`, opt.ID,
	); err != nil {
		r.l.Errorf(ctx, "%s delete turns: %v", r.dsn("SaveConversation"), err)
		return chat.Conversation{}, repo.ErrFailedToUpdate
	}

	if err := insertTurns(ctx, tx, opt.ID, opt.Turns); err != nil {
		r.l.Errorf(ctx, "%s turns: %v", r.dsn("SaveConversation"), err)
		return chat.Conversation{}, repo.ErrFailedToUpdate
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("SaveConversation"), err)
		return chat.Conversation{}, repo.ErrFailedToUpdate
	}

	return chat.Conversation{
		ID:          opt.ID,
		Turns:       opt.Turns,
		LastUpdated: opt.LastUpdated,
	}, nil
}

// ListConversations returns all conversations with their turns, ordered by
// last_updated descending. Turns are hydrated with a single query to avoid
// one round trip per conversation.
func (r *implRepository) ListConversations(ctx context.Context) ([]chat.Conversation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, last_updated FROM conversations ORDER BY last_updated DESC, id`,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListConversations"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var convs []chat.Conversation
	byID := make(map[string]int)
	for rows.Next() {
		var conv chat.Conversation
		if err := rows.Scan(&conv.ID, &conv.LastUpdated); err != nil {
			return nil, repo.ErrFailedToList
		}
		byID[conv.ID] = len(convs)
		convs = append(convs, conv)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListConversations"), err)
		return nil, repo.ErrFailedToList
	}
	if len(convs) == 0 {
		return convs, nil
	}

	turnRows, err := r.db.QueryContext(ctx,
		`SELECT conversation_id, role, content, created_at FROM turns ORDER BY conversation_id, id`,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s turns: %v", r.dsn("ListConversations"), err)
		return nil, repo.ErrFailedToList
	}
	defer turnRows.Close()

	for turnRows.Next() {
		var convID, role string
		var t chat.Turn
		if err := turnRows.Scan(&convID, &role, &t.Content, &t.Timestamp); err != nil {
			return nil, repo.ErrFailedToList
		}
		t.Role = chat.Role(role)
		if i, ok := byID[convID]; ok {
			convs[i].Turns = append(convs[i].Turns, t)
		}
	}
	if err := turnRows.Err(); err != nil {
		r.l.Errorf(ctx, "%s turn rows: %v", r.dsn("ListConversations"), err)
		return nil, repo.ErrFailedToList
	}

	return convs, nil
}

// loadTurns fetches the turns of one conversation in insertion order.
func (r *implRepository) loadTurns(ctx context.Context, conversationID string) ([]chat.Turn, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT role, content, created_at FROM turns WHERE conversation_id = ? ORDER BY id`,
		conversationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []chat.Turn
	for rows.Next() {
		var t chat.Turn
		var role string
		if err := rows.Scan(&role, &t.Content, &t.Timestamp); err != nil {
			return nil, err
		}
		t.Role = chat.Role(role)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// execer lets insertTurns run inside or outside a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTurns(ctx context.Context, ex execer, conversationID string, turns []chat.Turn) error {
	for _, t := range turns {
		if _, err := ex.ExecContext(ctx,
			`INSERT INTO turns (conversation_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
			conversationID, string(t.Role), t.Content, t.Timestamp,
		); err != nil {
			return err
		}
	}
	return nil
}
