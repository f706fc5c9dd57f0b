package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/football-club/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	for _, p := range players {
		items[p.ID] = p
	}

	return &PlayerRepository{items: items}
}

func (r *PlayerRepository) List(_ context.Context, activeOnly bool) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.items[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; exists {
		return fmt.Errorf("player %s already exists", p.ID)
	}
	r.items[p.ID] = p
	return nil
}
