package postgres

import (
	"time"

	"github.com/riskibarqy/football-club/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

type participationTableModel struct {
	MatchID                string          `db:"match_id"`
	PlayerID               string          `db:"player_id"`
	Attendance             attendance.Grid `db:"attendance"`
	IsLateArrival          bool            `db:"is_late_arrival"`
	NormalPlayerParts      decimal.Decimal `db:"normal_player_parts"`
	SectionsWithNormalPlay int             `db:"sections_with_normal_play"`
	FieldFee               decimal.Decimal `db:"field_fee"`
	VideoFee               decimal.Decimal `db:"video_fee"`
	LateFee                decimal.Decimal `db:"late_fee"`
	TotalFee               decimal.Decimal `db:"total_fee"`
	FeeCoefficient         decimal.Decimal `db:"fee_coefficient"`
	LateFeeRate            decimal.Decimal `db:"late_fee_rate"`
	VideoFeeRate           decimal.Decimal `db:"video_fee_rate"`
	CalculatedAt           time.Time       `db:"calculated_at"`
}
