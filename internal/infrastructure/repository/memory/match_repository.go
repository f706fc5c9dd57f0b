package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/football-club/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		items[m.ID] = m
	}

	return &MatchRepository{items: items}
}

// List returns matches newest kickoff first.
func (r *MatchRepository) List(_ context.Context, filter match.ListFilter) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.items))
	for _, m := range r.items {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.After(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return m, true, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[m.ID]; exists {
		return fmt.Errorf("match %s already exists", m.ID)
	}
	r.items[m.ID] = m
	return nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[m.ID]; !exists {
		return fmt.Errorf("match %s does not exist", m.ID)
	}
	r.items[m.ID] = m
	return nil
}
