package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type matchTableModel struct {
	ID              string          `db:"id"`
	Title           string          `db:"title"`
	Opponent        string          `db:"opponent"`
	Venue           string          `db:"venue"`
	KickoffAt       time.Time       `db:"kickoff_at"`
	Status          string          `db:"status"`
	FieldFeeTotal   decimal.Decimal `db:"field_fee_total"`
	WaterFeeTotal   decimal.Decimal `db:"water_fee_total"`
	LateFeeRate     decimal.Decimal `db:"late_fee_rate"`
	VideoFeeRate    decimal.Decimal `db:"video_fee_rate"`
	CoefficientMode string          `db:"coefficient_mode"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}
