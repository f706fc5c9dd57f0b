package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-club/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/football-club/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo roster and fixtures into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range memory.SeedPlayers() {
		query, args, err := qb.InsertModel("players", playerTableModel{
			ID:           p.ID,
			Name:         p.Name,
			JerseyNumber: p.JerseyNumber,
			Position:     string(p.Position),
			Active:       p.Active,
			CreatedAt:    utc(p.CreatedAt),
		}, "ON CONFLICT (id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed player %s query: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, m := range memory.SeedMatches() {
		query, args, err := qb.InsertModel("matches", matchToRow(m), "ON CONFLICT (id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed match %s query: %w", m.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
