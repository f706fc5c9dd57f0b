package matchevent

import "context"

// Repository describes match event persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, e Event) error
	List(ctx context.Context) ([]Event, error)
	ListByMatch(ctx context.Context, matchID string) ([]Event, error)
}
