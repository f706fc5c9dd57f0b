package feeoverride

import (
	"testing"

	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func breakdown(field, video, late string) fee.Breakdown {
	b := fee.Breakdown{
		FieldFee: decimal.RequireFromString(field),
		VideoFee: decimal.RequireFromString(video),
		LateFee:  decimal.RequireFromString(late),
	}
	b.TotalFee = b.FieldFee.Add(b.VideoFee).Add(b.LateFee)
	return b
}

func TestApply_OverridePrecedence(t *testing.T) {
	t.Parallel()

	calculated := breakdown("30", "2", "10")
	got := Apply(calculated, &Override{FieldFee: amount("20")})

	assert.True(t, got.FieldFee.Equal(decimal.NewFromInt(20)))
	assert.True(t, got.VideoFee.Equal(decimal.NewFromInt(2)))
	assert.True(t, got.LateFee.Equal(decimal.NewFromInt(10)))
	assert.True(t, got.TotalFee.Equal(decimal.NewFromInt(32)))
}

func TestApply_NilOverrideKeepsCalculated(t *testing.T) {
	t.Parallel()

	calculated := breakdown("38.34", "2", "10")
	assert.Equal(t, FeesOf(calculated), Apply(calculated, nil))

	zeroed := Apply(calculated, &Override{LateFee: amount("0")})
	assert.True(t, zeroed.LateFee.IsZero())
	assert.True(t, zeroed.TotalFee.Equal(decimal.RequireFromString("40.34")))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	views := []PlayerFeeView{
		NewPlayerFeeView("p1", breakdown("30", "2", "10"), &Override{FieldFee: amount("20")}),
		NewPlayerFeeView("p2", breakdown("15", "1", "0"), nil),
		NewPlayerFeeView("p3", breakdown("0", "0", "10"), nil),
	}

	summary := Summarize(views)
	assert.Equal(t, 3, summary.TotalParticipants)
	assert.Equal(t, 1, summary.OverrideCount)
	assert.True(t, summary.TotalCalculatedFees.Equal(decimal.NewFromInt(68)))
	assert.True(t, summary.TotalFinalFees.Equal(decimal.NewFromInt(58)))
	assert.True(t, summary.FeeDifference.Equal(decimal.NewFromInt(-10)))
	assert.True(t, summary.OverridePercentage.Equal(decimal.RequireFromString("33.33")))

	empty := Summarize(nil)
	assert.Zero(t, empty.TotalParticipants)
	assert.True(t, empty.OverridePercentage.IsZero())
	assert.True(t, empty.FeeDifference.IsZero())
}

func TestDetectAnomaly(t *testing.T) {
	t.Parallel()

	stored := breakdown("30", "2", "10")
	recomputed := breakdown("28", "2", "10")

	anomaly, ok := DetectAnomaly("m1", "p1", stored, recomputed, false)
	require.True(t, ok)
	assert.Equal(t, "p1", anomaly.PlayerID)
	assert.True(t, anomaly.Difference.Equal(decimal.NewFromInt(2)))

	_, ok = DetectAnomaly("m1", "p1", stored, recomputed, true)
	assert.False(t, ok)

	_, ok = DetectAnomaly("m1", "p1", stored, stored, false)
	assert.False(t, ok)
}
