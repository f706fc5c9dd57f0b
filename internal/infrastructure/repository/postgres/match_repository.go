package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/riskibarqy/football-club/internal/domain/match"
	qb "github.com/riskibarqy/football-club/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

var matchSelectColumns = []string{
	"id",
	"title",
	"opponent",
	"venue",
	"kickoff_at",
	"status",
	"field_fee_total",
	"water_fee_total",
	"late_fee_rate",
	"video_fee_rate",
	"coefficient_mode",
	"created_at",
	"updated_at",
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	builder := qb.Select(matchSelectColumns...).From("matches")
	if filter.Status != "" {
		builder = builder.Where(qb.Eq("status", string(filter.Status)))
	}
	query, args, err := builder.
		OrderBy("kickoff_at DESC", "id").
		Limit(filter.Limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}

	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match id=%s: %w", matchID, err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertModel("matches", matchToRow(m), "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match id=%s: %w", m.ID, err)
	}

	return nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	query, args, err := qb.Update("matches").
		Set("title", m.Title).
		Set("opponent", m.Opponent).
		Set("venue", m.Venue).
		Set("kickoff_at", utc(m.KickoffAt)).
		Set("status", string(m.Status)).
		Set("field_fee_total", m.Rates.FieldFeeTotal).
		Set("water_fee_total", m.Rates.WaterFeeTotal).
		Set("late_fee_rate", m.Rates.LateFeeRate).
		Set("video_fee_rate", m.Rates.VideoFeeRate).
		Set("coefficient_mode", string(m.CoefficientMode)).
		Set("updated_at", utc(m.UpdatedAt)).
		Where(qb.Eq("id", m.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match id=%s: %w", m.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated match rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update match id=%s: no row updated", m.ID)
	}

	return nil
}

func matchToRow(m match.Match) matchTableModel {
	return matchTableModel{
		ID:              m.ID,
		Title:           m.Title,
		Opponent:        m.Opponent,
		Venue:           m.Venue,
		KickoffAt:       utc(m.KickoffAt),
		Status:          string(m.Status),
		FieldFeeTotal:   m.Rates.FieldFeeTotal,
		WaterFeeTotal:   m.Rates.WaterFeeTotal,
		LateFeeRate:     m.Rates.LateFeeRate,
		VideoFeeRate:    m.Rates.VideoFeeRate,
		CoefficientMode: string(m.CoefficientMode),
		CreatedAt:       utc(m.CreatedAt),
		UpdatedAt:       utc(m.UpdatedAt),
	}
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:        row.ID,
		Title:     row.Title,
		Opponent:  row.Opponent,
		Venue:     row.Venue,
		KickoffAt: utc(row.KickoffAt),
		Status:    match.Status(row.Status),
		Rates: fee.RateConfig{
			FieldFeeTotal: row.FieldFeeTotal,
			WaterFeeTotal: row.WaterFeeTotal,
			LateFeeRate:   row.LateFeeRate,
			VideoFeeRate:  row.VideoFeeRate,
		},
		CoefficientMode: fee.CoefficientMode(row.CoefficientMode),
		CreatedAt:       utc(row.CreatedAt),
		UpdatedAt:       utc(row.UpdatedAt),
	}
}
