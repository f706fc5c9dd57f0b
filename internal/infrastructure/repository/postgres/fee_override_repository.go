package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-club/internal/domain/feeoverride"
	qb "github.com/riskibarqy/football-club/internal/platform/querybuilder"
	"github.com/shopspring/decimal"
)

type FeeOverrideRepository struct {
	db *sqlx.DB
}

var feeOverrideSelectColumns = []string{
	"match_id",
	"player_id",
	"field_fee",
	"video_fee",
	"late_fee",
	"notes",
	"created_at",
	"updated_at",
}

var feeOverrideUpsert = qb.Upsert{
	Conflict:  []string{"match_id", "player_id"},
	Keep:      []string{"created_at"},
	Returning: []string{"created_at", "updated_at"},
}

func NewFeeOverrideRepository(db *sqlx.DB) *FeeOverrideRepository {
	return &FeeOverrideRepository{db: db}
}

func (r *FeeOverrideRepository) ListByMatch(ctx context.Context, matchID string) ([]feeoverride.Override, error) {
	query, args, err := qb.Select(feeOverrideSelectColumns...).From("fee_overrides").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fee overrides query: %w", err)
	}

	var rows []feeOverrideTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fee overrides match=%s: %w", matchID, err)
	}

	out := make([]feeoverride.Override, 0, len(rows))
	for _, row := range rows {
		out = append(out, feeOverrideFromRow(row))
	}

	return out, nil
}

func (r *FeeOverrideRepository) Get(ctx context.Context, matchID, playerID string) (feeoverride.Override, bool, error) {
	query, args, err := qb.Select(feeOverrideSelectColumns...).From("fee_overrides").
		Where(qb.Eq("match_id", matchID), qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return feeoverride.Override{}, false, fmt.Errorf("build get fee override query: %w", err)
	}

	var row feeOverrideTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return feeoverride.Override{}, false, nil
		}
		return feeoverride.Override{}, false, fmt.Errorf("get fee override match=%s player=%s: %w", matchID, playerID, err)
	}

	return feeOverrideFromRow(row), true, nil
}

// Upsert locks the participation row before writing so a concurrent
// attendance save cannot remove the participant mid-write.
func (r *FeeOverrideRepository) Upsert(ctx context.Context, o feeoverride.Override) (feeoverride.Override, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return feeoverride.Override{}, fmt.Errorf("begin tx for fee override upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("player_id").From("participations").
		Where(qb.Eq("match_id", o.MatchID), qb.Eq("player_id", o.PlayerID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return feeoverride.Override{}, fmt.Errorf("build lock participation query: %w", err)
	}
	var lockedPlayerID string
	if err := tx.GetContext(ctx, &lockedPlayerID, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return feeoverride.Override{}, feeoverride.ErrParticipantNotFound
		}
		return feeoverride.Override{}, fmt.Errorf("lock participation match=%s player=%s: %w", o.MatchID, o.PlayerID, err)
	}

	row := feeOverrideToRow(o)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = row.UpdatedAt
	}
	query, args, err := qb.UpsertModel("fee_overrides", row, feeOverrideUpsert)
	if err != nil {
		return feeoverride.Override{}, fmt.Errorf("build upsert fee override query: %w", err)
	}

	var stamps struct {
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := tx.GetContext(ctx, &stamps, query, args...); err != nil {
		return feeoverride.Override{}, fmt.Errorf("upsert fee override match=%s player=%s: %w", o.MatchID, o.PlayerID, err)
	}

	if err := tx.Commit(); err != nil {
		return feeoverride.Override{}, fmt.Errorf("commit fee override upsert tx: %w", err)
	}

	o.CreatedAt = utc(stamps.CreatedAt)
	o.UpdatedAt = utc(stamps.UpdatedAt)
	return o, nil
}

func (r *FeeOverrideRepository) Delete(ctx context.Context, matchID, playerID string) (bool, error) {
	query, args, err := qb.DeleteFrom("fee_overrides").
		Where(qb.Eq("match_id", matchID), qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete fee override query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete fee override match=%s player=%s: %w", matchID, playerID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted fee override rows: %w", err)
	}

	return affected > 0, nil
}

func feeOverrideToRow(o feeoverride.Override) feeOverrideTableModel {
	return feeOverrideTableModel{
		MatchID:   o.MatchID,
		PlayerID:  o.PlayerID,
		FieldFee:  nullDecimal(o.FieldFee),
		VideoFee:  nullDecimal(o.VideoFee),
		LateFee:   nullDecimal(o.LateFee),
		Notes:     o.Notes,
		CreatedAt: utc(o.CreatedAt),
		UpdatedAt: utc(o.UpdatedAt),
	}
}

func feeOverrideFromRow(row feeOverrideTableModel) feeoverride.Override {
	return feeoverride.Override{
		MatchID:   row.MatchID,
		PlayerID:  row.PlayerID,
		FieldFee:  decimalPtr(row.FieldFee),
		VideoFee:  decimalPtr(row.VideoFee),
		LateFee:   decimalPtr(row.LateFee),
		Notes:     row.Notes,
		CreatedAt: utc(row.CreatedAt),
		UpdatedAt: utc(row.UpdatedAt),
	}
}

func nullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}

func decimalPtr(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	out := v.Decimal
	return &out
}
