package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type feeOverrideTableModel struct {
	MatchID   string              `db:"match_id"`
	PlayerID  string              `db:"player_id"`
	FieldFee  decimal.NullDecimal `db:"field_fee"`
	VideoFee  decimal.NullDecimal `db:"video_fee"`
	LateFee   decimal.NullDecimal `db:"late_fee"`
	Notes     string              `db:"notes"`
	CreatedAt time.Time           `db:"created_at"`
	UpdatedAt time.Time           `db:"updated_at"`
}
