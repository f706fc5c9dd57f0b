package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]Player, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	Create(ctx context.Context, p Player) error
}
