package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/football-club/internal/domain/attendance"
	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/riskibarqy/football-club/internal/domain/match"
	"github.com/riskibarqy/football-club/internal/infrastructure/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchService_CreateMatch_AppliesDefaults(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	created, err := env.matchService.CreateMatch(t.Context(), CreateMatchInput{
		Title:     "  Cup round 1 ",
		KickoffAt: time.Date(2025, 4, 5, 15, 0, 0, 0, time.FixedZone("UTC+8", 8*3600)),
		Rates:     fee.RateInput{FieldFeeTotal: decimal.NewFromInt(1000)},
	})
	require.NoError(t, err)

	assert.Equal(t, "match-1", created.ID)
	assert.Equal(t, "Cup round 1", created.Title)
	assert.Equal(t, match.StatusScheduled, created.Status)
	assert.Equal(t, fee.CoefficientDynamic, created.CoefficientMode)
	assert.Equal(t, time.UTC, created.KickoffAt.Location())
	requireDecimal(t, "10", created.Rates.LateFeeRate, "late rate")
	requireDecimal(t, "2", created.Rates.VideoFeeRate, "video rate")

	got, err := env.matchService.GetMatch(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestMatchService_CreateMatch_ValidationDetails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.matchService.CreateMatch(t.Context(), CreateMatchInput{
		Status:          "postponed",
		CoefficientMode: "weekly",
		Rates:           fee.RateInput{FieldFeeTotal: decimal.NewFromInt(-1)},
	})
	require.True(t, errors.Is(err, ErrInvalidInput))

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	fields := make([]string, 0, len(validation.Details))
	for _, d := range validation.Details {
		fields = append(fields, d.Field)
	}
	assert.Equal(t, []string{"title", "kickoffAt", "status", "coefficientMode", "rates.fieldFeeTotal"}, fields)
}

func TestMatchService_ListMatches(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	all, err := env.matchService.ListMatches(t.Context(), ListMatchesInput{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, memory.MatchIDFriendly, all[0].ID)

	completed, err := env.matchService.ListMatches(t.Context(), ListMatchesInput{Status: "completed"})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, memory.MatchIDSeasonOpener, completed[0].ID)

	_, err = env.matchService.ListMatches(t.Context(), ListMatchesInput{Status: "unknown"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMatchService_UpdateFeeRates_KeepsStoredFees(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addFlatRateMatch(t, "flat")
	_, err := env.attendanceService.SaveMatchAttendance(t.Context(), "flat", []AttendanceEntry{
		{PlayerID: "player-mid-01", Grid: gridWithParts(t, 3)},
	})
	require.NoError(t, err)

	mode := "dynamic"
	videoRate := decimal.NewFromInt(3)
	updated, err := env.matchService.UpdateFeeRates(t.Context(), "flat", UpdateFeeRatesInput{
		Rates:           fee.RateInput{FieldFeeTotal: decimal.NewFromInt(1800), VideoFeeRate: &videoRate},
		CoefficientMode: &mode,
	})
	require.NoError(t, err)
	assert.Equal(t, fee.CoefficientDynamic, updated.CoefficientMode)
	requireDecimal(t, "3", updated.Rates.VideoFeeRate, "video rate")

	row, _, err := env.participations.Get(t.Context(), "flat", "player-mid-01")
	require.NoError(t, err)
	requireDecimal(t, "30", row.Fees.FieldFee, "stored field fee")

	_, err = env.matchService.UpdateFeeRates(t.Context(), "flat", UpdateFeeRatesInput{
		Rates: fee.RateInput{WaterFeeTotal: decimal.NewFromInt(-3)},
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = env.matchService.UpdateFeeRates(t.Context(), "missing", UpdateFeeRatesInput{})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMatchService_CreateMatch_KeepsExplicitZeroRates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	zero := decimal.Zero
	created, err := env.matchService.CreateMatch(t.Context(), CreateMatchInput{
		Title:           "Free training game",
		KickoffAt:       fixedNow,
		CoefficientMode: "fixed",
		Rates: fee.RateInput{
			FieldFeeTotal: decimal.NewFromInt(900),
			LateFeeRate:   &zero,
			VideoFeeRate:  &zero,
		},
	})
	require.NoError(t, err)
	requireDecimal(t, "0", created.Rates.LateFeeRate, "late rate")
	requireDecimal(t, "0", created.Rates.VideoFeeRate, "video rate")

	var grid attendance.Grid
	require.NoError(t, grid.Set(1, 1, 1, false))
	_, err = env.attendanceService.SaveMatchAttendance(t.Context(), created.ID, []AttendanceEntry{
		{PlayerID: "player-mid-01", Grid: grid, IsLateArrival: true},
	})
	require.NoError(t, err)

	row, found, err := env.participations.Get(t.Context(), created.ID, "player-mid-01")
	require.NoError(t, err)
	require.True(t, found)
	requireDecimal(t, "0", row.Fees.LateFee, "late fee")
	requireDecimal(t, "0", row.Fees.VideoFee, "video fee")
	requireDecimal(t, "10", row.Fees.FieldFee, "field fee")
}
