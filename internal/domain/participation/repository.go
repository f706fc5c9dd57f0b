package participation

import "context"

// Repository describes participation persistence needs from use cases.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Participation, error)
	Get(ctx context.Context, matchID, playerID string) (Participation, bool, error)
	// ReplaceForMatch swaps every participation row of the match at once.
	ReplaceForMatch(ctx context.Context, matchID string, items []Participation) error
}
