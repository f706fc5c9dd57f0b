package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-club/internal/domain/player"
	qb "github.com/riskibarqy/football-club/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"jersey_number",
	"position",
	"active",
	"created_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, activeOnly bool) ([]player.Player, error) {
	builder := qb.Select(playerSelectColumns...).From("players")
	if activeOnly {
		builder = builder.Where(qb.Eq("active", true))
	}
	query, args, err := builder.OrderBy("name", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}

	return out, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("id", stringSliceToAny(playerIDs))).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}

	return out, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertModel("players", playerTableModel{
		ID:           p.ID,
		Name:         p.Name,
		JerseyNumber: p.JerseyNumber,
		Position:     string(p.Position),
		Active:       p.Active,
		CreatedAt:    utc(p.CreatedAt),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player id=%s: %w", p.ID, err)
	}

	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:           row.ID,
		Name:         row.Name,
		JerseyNumber: row.JerseyNumber,
		Position:     player.Position(row.Position),
		Active:       row.Active,
		CreatedAt:    utc(row.CreatedAt),
	}
}
