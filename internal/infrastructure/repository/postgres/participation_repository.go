package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/riskibarqy/football-club/internal/domain/participation"
	qb "github.com/riskibarqy/football-club/internal/platform/querybuilder"
)

type ParticipationRepository struct {
	db *sqlx.DB
}

var participationSelectColumns = []string{
	"match_id",
	"player_id",
	"attendance",
	"is_late_arrival",
	"normal_player_parts",
	"sections_with_normal_play",
	"field_fee",
	"video_fee",
	"late_fee",
	"total_fee",
	"fee_coefficient",
	"late_fee_rate",
	"video_fee_rate",
	"calculated_at",
}

var participationKey = qb.Upsert{Conflict: []string{"match_id", "player_id"}}

func NewParticipationRepository(db *sqlx.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

func (r *ParticipationRepository) ListByMatch(ctx context.Context, matchID string) ([]participation.Participation, error) {
	query, args, err := qb.Select(participationSelectColumns...).From("participations").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participations query: %w", err)
	}

	var rows []participationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list participations match=%s: %w", matchID, err)
	}

	out := make([]participation.Participation, 0, len(rows))
	for _, row := range rows {
		out = append(out, participationFromRow(row))
	}

	return out, nil
}

func (r *ParticipationRepository) Get(ctx context.Context, matchID, playerID string) (participation.Participation, bool, error) {
	query, args, err := qb.Select(participationSelectColumns...).From("participations").
		Where(qb.Eq("match_id", matchID), qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return participation.Participation{}, false, fmt.Errorf("build get participation query: %w", err)
	}

	var row participationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participation.Participation{}, false, nil
		}
		return participation.Participation{}, false, fmt.Errorf("get participation match=%s player=%s: %w", matchID, playerID, err)
	}

	return participationFromRow(row), true, nil
}

// ReplaceForMatch upserts the given rows and removes the match's other rows in
// one transaction. Overrides of players that stay in the match survive; the
// rest cascade away with their participation row.
func (r *ParticipationRepository) ReplaceForMatch(ctx context.Context, matchID string, items []participation.Participation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for participation replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	playerIDs := make([]string, 0, len(items))
	for _, item := range items {
		playerIDs = append(playerIDs, item.PlayerID)
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom("participations").
		Where(
			qb.Eq("match_id", matchID),
			qb.Expr("NOT (player_id = ANY(?::text[]))", pq.Array(playerIDs)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete stale participations query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete stale participations match=%s: %w", matchID, err)
	}

	for _, item := range items {
		item.MatchID = matchID
		query, args, err := qb.UpsertModel("participations", participationToRow(item), participationKey)
		if err != nil {
			return fmt.Errorf("build upsert participation player=%s query: %w", item.PlayerID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert participation match=%s player=%s: %w", matchID, item.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit participation replace tx: %w", err)
	}

	return nil
}

func participationToRow(p participation.Participation) participationTableModel {
	return participationTableModel{
		MatchID:                p.MatchID,
		PlayerID:               p.PlayerID,
		Attendance:             p.Grid,
		IsLateArrival:          p.IsLateArrival,
		NormalPlayerParts:      p.Fees.NormalPlayerParts,
		SectionsWithNormalPlay: p.Fees.SectionsWithNormalPlay,
		FieldFee:               p.Fees.FieldFee,
		VideoFee:               p.Fees.VideoFee,
		LateFee:                p.Fees.LateFee,
		TotalFee:               p.Fees.TotalFee,
		FeeCoefficient:         p.FeeCoefficient,
		LateFeeRate:            p.LateFeeRate,
		VideoFeeRate:           p.VideoFeeRate,
		CalculatedAt:           utc(p.CalculatedAt),
	}
}

func participationFromRow(row participationTableModel) participation.Participation {
	return participation.Participation{
		MatchID:       row.MatchID,
		PlayerID:      row.PlayerID,
		Grid:          row.Attendance,
		IsLateArrival: row.IsLateArrival,
		Fees: fee.Breakdown{
			NormalPlayerParts:      row.NormalPlayerParts,
			SectionsWithNormalPlay: row.SectionsWithNormalPlay,
			FieldFee:               row.FieldFee,
			VideoFee:               row.VideoFee,
			LateFee:                row.LateFee,
			TotalFee:               row.TotalFee,
		},
		FeeCoefficient: row.FeeCoefficient,
		LateFeeRate:    row.LateFeeRate,
		VideoFeeRate:   row.VideoFeeRate,
		CalculatedAt:   utc(row.CalculatedAt),
	}
}
