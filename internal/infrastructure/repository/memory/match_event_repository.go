package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/football-club/internal/domain/matchevent"
)

type MatchEventRepository struct {
	mu    sync.RWMutex
	items []matchevent.Event
}

func NewMatchEventRepository() *MatchEventRepository {
	return &MatchEventRepository{}
}

func (r *MatchEventRepository) Create(_ context.Context, e matchevent.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, e)
	return nil
}

func (r *MatchEventRepository) List(_ context.Context) ([]matchevent.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]matchevent.Event(nil), r.items...), nil
}

func (r *MatchEventRepository) ListByMatch(_ context.Context, matchID string) ([]matchevent.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchevent.Event, 0)
	for _, e := range r.items {
		if e.MatchID == matchID {
			out = append(out, e)
		}
	}
	return out, nil
}
