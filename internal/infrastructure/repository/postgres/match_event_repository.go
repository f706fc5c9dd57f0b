package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-club/internal/domain/matchevent"
	qb "github.com/riskibarqy/football-club/internal/platform/querybuilder"
)

type MatchEventRepository struct {
	db *sqlx.DB
}

var matchEventSelectColumns = []string{
	"id",
	"match_id",
	"player_id",
	"event_type",
	"minute",
	"created_at",
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

func (r *MatchEventRepository) Create(ctx context.Context, e matchevent.Event) error {
	query, args, err := qb.InsertModel("match_events", matchEventTableModel{
		ID:        e.ID,
		MatchID:   e.MatchID,
		PlayerID:  e.PlayerID,
		EventType: string(e.Type),
		Minute:    e.Minute,
		CreatedAt: utc(e.CreatedAt),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert match event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match event id=%s: %w", e.ID, err)
	}

	return nil
}

func (r *MatchEventRepository) List(ctx context.Context) ([]matchevent.Event, error) {
	query, args, err := qb.Select(matchEventSelectColumns...).From("match_events").
		OrderBy("match_id", "minute", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match events query: %w", err)
	}

	return r.selectEvents(ctx, query, args, "list match events")
}

func (r *MatchEventRepository) ListByMatch(ctx context.Context, matchID string) ([]matchevent.Event, error) {
	query, args, err := qb.Select(matchEventSelectColumns...).From("match_events").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("minute", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match events by match query: %w", err)
	}

	return r.selectEvents(ctx, query, args, "list match events match="+matchID)
}

func (r *MatchEventRepository) selectEvents(ctx context.Context, query string, args []any, op string) ([]matchevent.Event, error) {
	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]matchevent.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchevent.Event{
			ID:        row.ID,
			MatchID:   row.MatchID,
			PlayerID:  row.PlayerID,
			Type:      matchevent.Type(row.EventType),
			Minute:    row.Minute,
			CreatedAt: utc(row.CreatedAt),
		})
	}

	return out, nil
}
