package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-club/internal/domain/feeoverride"
	"github.com/shopspring/decimal"
)

// FeeOverrideRepository checks participations of the paired repository the
// way the postgres implementation checks its foreign row. Overrides of players
// dropped from a match are deleted, like the cascading foreign key.
type FeeOverrideRepository struct {
	mu             sync.RWMutex
	items          map[string]feeoverride.Override
	participations *ParticipationRepository
}

func NewFeeOverrideRepository(participations *ParticipationRepository) *FeeOverrideRepository {
	r := &FeeOverrideRepository{
		items:          make(map[string]feeoverride.Override),
		participations: participations,
	}
	if participations != nil {
		participations.notifyDropped(r.prune)
	}
	return r
}

func (r *FeeOverrideRepository) ListByMatch(_ context.Context, matchID string) ([]feeoverride.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feeoverride.Override, 0)
	for _, o := range r.items {
		if o.MatchID == matchID && r.participantExists(o.MatchID, o.PlayerID) {
			out = append(out, cloneOverride(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PlayerID < out[j].PlayerID
	})

	return out, nil
}

func (r *FeeOverrideRepository) Get(_ context.Context, matchID, playerID string) (feeoverride.Override, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.items[overrideKey(matchID, playerID)]
	if !ok || !r.participantExists(matchID, playerID) {
		return feeoverride.Override{}, false, nil
	}

	return cloneOverride(o), true, nil
}

func (r *FeeOverrideRepository) Upsert(_ context.Context, o feeoverride.Override) (feeoverride.Override, error) {
	if !r.participantExists(o.MatchID, o.PlayerID) {
		return feeoverride.Override{}, feeoverride.ErrParticipantNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := overrideKey(o.MatchID, o.PlayerID)
	if current, ok := r.items[key]; ok {
		o.CreatedAt = current.CreatedAt
	} else if o.CreatedAt.IsZero() {
		o.CreatedAt = o.UpdatedAt
	}
	r.items[key] = cloneOverride(o)

	return cloneOverride(o), nil
}

func (r *FeeOverrideRepository) Delete(_ context.Context, matchID, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := overrideKey(matchID, playerID)
	if _, ok := r.items[key]; !ok {
		return false, nil
	}
	delete(r.items, key)
	return true, nil
}

func (r *FeeOverrideRepository) prune(matchID string, playerIDs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, playerID := range playerIDs {
		delete(r.items, overrideKey(matchID, playerID))
	}
}

func (r *FeeOverrideRepository) participantExists(matchID, playerID string) bool {
	return r.participations == nil || r.participations.exists(matchID, playerID)
}

func overrideKey(matchID, playerID string) string {
	return matchID + "::" + playerID
}

func cloneOverride(o feeoverride.Override) feeoverride.Override {
	copied := o
	copied.FieldFee = cloneAmount(o.FieldFee)
	copied.VideoFee = cloneAmount(o.VideoFee)
	copied.LateFee = cloneAmount(o.LateFee)
	return copied
}

func cloneAmount(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
