package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Create(ctx context.Context, m Match) error
	Update(ctx context.Context, m Match) error
}
