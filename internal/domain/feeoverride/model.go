package feeoverride

import (
	"errors"
	"time"

	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/shopspring/decimal"
)

var ErrParticipantNotFound = errors.New("player did not take part in the match")

// Override is an admin correction of one player's calculated fees. A nil
// component falls back to the calculated value.
type Override struct {
	MatchID   string
	PlayerID  string
	FieldFee  *decimal.Decimal
	VideoFee  *decimal.Decimal
	LateFee   *decimal.Decimal
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fees are the three billed components and their total.
type Fees struct {
	FieldFee decimal.Decimal
	VideoFee decimal.Decimal
	LateFee  decimal.Decimal
	TotalFee decimal.Decimal
}

func FeesOf(b fee.Breakdown) Fees {
	return Fees{
		FieldFee: b.FieldFee,
		VideoFee: b.VideoFee,
		LateFee:  b.LateFee,
		TotalFee: b.TotalFee,
	}
}

// Apply lays the override over the calculated breakdown component by
// component and totals the result.
func Apply(calculated fee.Breakdown, o *Override) Fees {
	out := FeesOf(calculated)
	if o == nil {
		return out
	}
	if o.FieldFee != nil {
		out.FieldFee = *o.FieldFee
	}
	if o.VideoFee != nil {
		out.VideoFee = *o.VideoFee
	}
	if o.LateFee != nil {
		out.LateFee = *o.LateFee
	}
	out.TotalFee = out.FieldFee.Add(out.VideoFee).Add(out.LateFee).Round(2)
	return out
}

// PlayerFeeView joins a player's stored calculation with its override.
type PlayerFeeView struct {
	PlayerID   string
	Calculated fee.Breakdown
	Effective  Fees
	Override   *Override
}

func NewPlayerFeeView(playerID string, calculated fee.Breakdown, o *Override) PlayerFeeView {
	return PlayerFeeView{
		PlayerID:   playerID,
		Calculated: calculated,
		Effective:  Apply(calculated, o),
		Override:   o,
	}
}

func (v PlayerFeeView) HasOverride() bool {
	return v.Override != nil
}

// Summary aggregates a match's fee views.
type Summary struct {
	TotalParticipants   int
	TotalCalculatedFees decimal.Decimal
	TotalFinalFees      decimal.Decimal
	FeeDifference       decimal.Decimal
	OverrideCount       int
	// OverridePercentage is OverrideCount / TotalParticipants x 100, two decimals.
	OverridePercentage decimal.Decimal
}

func Summarize(views []PlayerFeeView) Summary {
	out := Summary{
		TotalParticipants:   len(views),
		TotalCalculatedFees: decimal.Zero,
		TotalFinalFees:      decimal.Zero,
		OverridePercentage:  decimal.Zero,
	}
	for _, v := range views {
		out.TotalCalculatedFees = out.TotalCalculatedFees.Add(v.Calculated.TotalFee)
		out.TotalFinalFees = out.TotalFinalFees.Add(v.Effective.TotalFee)
		if v.HasOverride() {
			out.OverrideCount++
		}
	}
	out.FeeDifference = out.TotalFinalFees.Sub(out.TotalCalculatedFees)
	if out.TotalParticipants > 0 {
		out.OverridePercentage = decimal.NewFromInt(int64(out.OverrideCount)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(out.TotalParticipants))).
			Round(2)
	}
	return out
}

// Anomaly is a stored total that no longer matches its recomputation while
// no override explains the difference.
type Anomaly struct {
	MatchID         string
	PlayerID        string
	StoredTotal     decimal.Decimal
	RecomputedTotal decimal.Decimal
	Difference      decimal.Decimal
}

// DetectAnomaly compares a stored breakdown against a fresh calculation.
func DetectAnomaly(matchID, playerID string, stored, recomputed fee.Breakdown, hasOverride bool) (Anomaly, bool) {
	if hasOverride || stored.TotalFee.Equal(recomputed.TotalFee) {
		return Anomaly{}, false
	}
	return Anomaly{
		MatchID:         matchID,
		PlayerID:        playerID,
		StoredTotal:     stored.TotalFee,
		RecomputedTotal: recomputed.TotalFee,
		Difference:      stored.TotalFee.Sub(recomputed.TotalFee),
	}, true
}
