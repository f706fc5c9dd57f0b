package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-club/internal/domain/match"
	"github.com/riskibarqy/football-club/internal/domain/player"
	basecache "github.com/riskibarqy/football-club/internal/platform/cache"
	"github.com/riskibarqy/football-club/internal/platform/resilience"
)

const (
	matchKeyPrefix  = "match:"
	playerKeyPrefix = "player:"
)

// MatchRepository caches match reads. Every write drops all cached match
// entries because list results depend on status and kickoff order.
type MatchRepository struct {
	next    match.Repository
	cache   *basecache.Store
	breaker *resilience.Breaker
}

func NewMatchRepository(next match.Repository, cache *basecache.Store, breaker *resilience.Breaker) *MatchRepository {
	return &MatchRepository{next: next, cache: cache, breaker: breaker}
}

func (r *MatchRepository) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	key := matchKeyPrefix + "list:" + string(filter.Status) + ":" + strconv.Itoa(filter.Limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		var items []match.Match
		err := r.breaker.Do(ctx, func(ctx context.Context) error {
			var err error
			items, err = r.next.List(ctx, filter)
			return err
		})
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	key := matchKeyPrefix + "id:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		var cached cachedMatchByID
		err := r.breaker.Do(ctx, func(ctx context.Context) error {
			var err error
			cached.value, cached.exists, err = r.next.GetByID(ctx, matchID)
			return err
		})
		if err != nil {
			return nil, err
		}
		return cached, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	defer r.cache.DeletePrefix(ctx, matchKeyPrefix)
	return r.breaker.Do(ctx, func(ctx context.Context) error {
		return r.next.Create(ctx, m)
	})
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	defer r.cache.DeletePrefix(ctx, matchKeyPrefix)
	return r.breaker.Do(ctx, func(ctx context.Context) error {
		return r.next.Update(ctx, m)
	})
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

type PlayerRepository struct {
	next    player.Repository
	cache   *basecache.Store
	breaker *resilience.Breaker
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store, breaker *resilience.Breaker) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache, breaker: breaker}
}

func (r *PlayerRepository) List(ctx context.Context, activeOnly bool) ([]player.Player, error) {
	key := playerKeyPrefix + "list:" + strconv.FormatBool(activeOnly)
	return r.load(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.List(ctx, activeOnly)
	})
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := playerKeyPrefix + "ids:" + strings.Join(ids, ",")
	return r.load(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.GetByIDs(ctx, ids)
	})
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	defer r.cache.DeletePrefix(ctx, playerKeyPrefix)
	return r.breaker.Do(ctx, func(ctx context.Context) error {
		return r.next.Create(ctx, p)
	})
}

func (r *PlayerRepository) load(ctx context.Context, key string, fetch func(context.Context) ([]player.Player, error)) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		var items []player.Player
		err := r.breaker.Do(ctx, func(ctx context.Context) error {
			var err error
			items, err = fetch(ctx)
			return err
		})
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}
