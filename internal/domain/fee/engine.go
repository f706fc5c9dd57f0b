package fee

import (
	"github.com/riskibarqy/football-club/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

var three = decimal.NewFromInt(3)

// Breakdown is the fee result for one player in one match.
type Breakdown struct {
	NormalPlayerParts      decimal.Decimal
	SectionsWithNormalPlay int
	FieldFee               decimal.Decimal
	VideoFee               decimal.Decimal
	LateFee                decimal.Decimal
	TotalFee               decimal.Decimal
}

// CalculatePlayerFees turns one attendance grid into a fee breakdown.
//
// Goalkeeper cells never count as normal play. The field fee and the total are
// rounded to cents; the video fee is rounded up to a whole unit. The late fee
// is charged whenever isLateArrival is set; see WaiveLateFeeWithoutPlay.
func CalculatePlayerFees(grid attendance.Grid, isLateArrival bool, coefficient, lateFeeRate, videoFeeRate decimal.Decimal) Breakdown {
	parts := decimal.Zero
	sections := 0
	for s := 0; s < attendance.Sections; s++ {
		played := false
		for p := 0; p < attendance.Parts; p++ {
			fraction := grid.Attendance[s][p]
			if fraction <= 0 || grid.Goalkeeper[s][p] {
				continue
			}
			parts = parts.Add(decimal.NewFromFloat(fraction))
			played = true
		}
		if played {
			sections++
		}
	}

	out := Breakdown{
		NormalPlayerParts:      parts,
		SectionsWithNormalPlay: sections,
		FieldFee:               parts.Mul(coefficient).Round(2),
		VideoFee:               parts.Mul(videoFeeRate).Div(three).Ceil(),
		LateFee:                decimal.Zero,
	}
	if isLateArrival {
		out.LateFee = lateFeeRate
	}
	out.TotalFee = out.FieldFee.Add(out.VideoFee).Add(out.LateFee).Round(2)
	return out
}

// Calculate runs CalculatePlayerFees with the rates of cfg as stored.
func Calculate(grid attendance.Grid, isLateArrival bool, coefficient decimal.Decimal, cfg RateConfig) Breakdown {
	return CalculatePlayerFees(grid, isLateArrival, coefficient, cfg.LateFeeRate, cfg.VideoFeeRate)
}

// WaiveLateFeeWithoutPlay drops the late fee of a player who never took part,
// goalkeeper time included, and recomputes the total.
func WaiveLateFeeWithoutPlay(b Breakdown, totalParts decimal.Decimal) Breakdown {
	if totalParts.IsPositive() || b.LateFee.IsZero() {
		return b
	}
	b.LateFee = decimal.Zero
	b.TotalFee = b.FieldFee.Add(b.VideoFee).Round(2)
	return b
}

// CalculateForParticipant is the call-site form used by every writer: engine
// result plus the late-fee waiver.
func CalculateForParticipant(grid attendance.Grid, isLateArrival bool, coefficient decimal.Decimal, cfg RateConfig) Breakdown {
	return WaiveLateFeeWithoutPlay(Calculate(grid, isLateArrival, coefficient, cfg), grid.TotalParts())
}
