package feeoverride

import "context"

// Repository persists overrides separately from participation rows.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Override, error)
	Get(ctx context.Context, matchID, playerID string) (Override, bool, error)
	// Upsert writes the override in its own transaction. It returns
	// ErrParticipantNotFound when the player has no participation row.
	Upsert(ctx context.Context, o Override) (Override, error)
	Delete(ctx context.Context, matchID, playerID string) (bool, error)
}
