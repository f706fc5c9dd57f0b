package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/riskibarqy/football-club/internal/domain/participation"
)

type ParticipationRepository struct {
	mu      sync.RWMutex
	byMatch map[string]map[string]participation.Participation
	onDrop  []func(matchID string, playerIDs []string)
}

func NewParticipationRepository() *ParticipationRepository {
	return &ParticipationRepository{byMatch: make(map[string]map[string]participation.Participation)}
}

func (r *ParticipationRepository) ListByMatch(_ context.Context, matchID string) ([]participation.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.byMatch[matchID]
	out := make([]participation.Participation, 0, len(rows))
	for _, p := range rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PlayerID < out[j].PlayerID
	})

	return out, nil
}

func (r *ParticipationRepository) Get(_ context.Context, matchID, playerID string) (participation.Participation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byMatch[matchID][playerID]
	return p, ok, nil
}

func (r *ParticipationRepository) ReplaceForMatch(_ context.Context, matchID string, items []participation.Participation) error {
	rows := make(map[string]participation.Participation, len(items))
	for _, p := range items {
		p.MatchID = matchID
		rows[p.PlayerID] = p
	}

	r.mu.Lock()
	var dropped []string
	for playerID := range r.byMatch[matchID] {
		if _, ok := rows[playerID]; !ok {
			dropped = append(dropped, playerID)
		}
	}
	r.byMatch[matchID] = rows
	hooks := slices.Clone(r.onDrop)
	r.mu.Unlock()

	if len(dropped) > 0 {
		sort.Strings(dropped)
		for _, fn := range hooks {
			fn(matchID, dropped)
		}
	}
	return nil
}

// notifyDropped registers fn to run after ReplaceForMatch removes players
// from a match.
func (r *ParticipationRepository) notifyDropped(fn func(matchID string, playerIDs []string)) {
	r.mu.Lock()
	r.onDrop = append(r.onDrop, fn)
	r.mu.Unlock()
}

func (r *ParticipationRepository) exists(matchID, playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byMatch[matchID][playerID]
	return ok
}
