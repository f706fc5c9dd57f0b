package participation

import (
	"time"

	"github.com/riskibarqy/football-club/internal/domain/attendance"
	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/shopspring/decimal"
)

// Participation is one player's attendance in a match together with the fees
// calculated when the attendance was saved.
type Participation struct {
	MatchID        string
	PlayerID       string
	Grid           attendance.Grid
	IsLateArrival  bool
	Fees           fee.Breakdown
	FeeCoefficient decimal.Decimal
	// LateFeeRate and VideoFeeRate are the match rates at calculation time.
	LateFeeRate  decimal.Decimal
	VideoFeeRate decimal.Decimal
	CalculatedAt time.Time
}

// CalculationRates is the rate config the stored fees were calculated with.
// Field and water totals are already folded into FeeCoefficient.
func (p Participation) CalculationRates() fee.RateConfig {
	return fee.RateConfig{LateFeeRate: p.LateFeeRate, VideoFeeRate: p.VideoFeeRate}
}
