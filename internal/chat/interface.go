package chat

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Consolidate merges the incoming turn batch and the generated reply into
	// the stored conversation (created implicitly when ExistingID is empty).
	Consolidate(ctx context.Context, input ConsolidateInput) (ConsolidateOutput, error)

	// List returns summaries of all conversations, most recently updated first.
	List(ctx context.Context) (ListOutput, error)

	// Detail returns the full conversation by ID.
	Detail(ctx context.Context, id string) (DetailOutput, error)
}
