package fee

import (
	"errors"
	"testing"

	"github.com/riskibarqy/football-club/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

// gridWithParts fills cells in order with full parts, ending with a half part
// when parts has a .5 remainder.
func gridWithParts(t *testing.T, parts float64) attendance.Grid {
	t.Helper()
	var g attendance.Grid
	remaining := parts
	for s := 1; s <= attendance.Sections && remaining > 0; s++ {
		for p := 1; p <= attendance.Parts && remaining > 0; p++ {
			fraction := 1.0
			if remaining < 1 {
				fraction = remaining
			}
			require.NoError(t, g.Set(s, p, fraction, false))
			remaining -= fraction
		}
	}
	return g
}

func TestCalculatePlayerFees_VideoFeeRoundsUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		parts float64
		want  string
	}{
		{parts: 0, want: "0"},
		{parts: 0.5, want: "1"},
		{parts: 1, want: "1"},
		{parts: 1.5, want: "1"},
		{parts: 2, want: "2"},
		{parts: 2.5, want: "2"},
		{parts: 3, want: "2"},
		{parts: 4.5, want: "3"},
		{parts: 9, want: "6"},
	}

	for _, tt := range tests {
		got := CalculatePlayerFees(gridWithParts(t, tt.parts), false, dec("10"), DefaultLateFeeRate, DefaultVideoFeeRate)
		assertDecimal(t, tt.want, got.VideoFee, "video fee")
	}
}

func TestCalculatePlayerFees_EndToEnd(t *testing.T) {
	t.Parallel()

	var g attendance.Grid
	require.NoError(t, g.Set(1, 1, 1, false))
	require.NoError(t, g.Set(1, 2, 1, false))
	require.NoError(t, g.Set(1, 3, 0.5, true))
	require.NoError(t, g.Set(2, 1, 1, false))

	got := CalculatePlayerFees(g, true, dec("12.78"), dec("10"), dec("2"))

	assertDecimal(t, "3", got.NormalPlayerParts, "normal parts")
	assert.Equal(t, 2, got.SectionsWithNormalPlay)
	assertDecimal(t, "38.34", got.FieldFee, "field fee")
	assertDecimal(t, "2", got.VideoFee, "video fee")
	assertDecimal(t, "10", got.LateFee, "late fee")
	assertDecimal(t, "50.34", got.TotalFee, "total fee")
}

func TestCalculatePlayerFees_GoalkeeperExemption(t *testing.T) {
	t.Parallel()

	var g attendance.Grid
	for s := 1; s <= attendance.Sections; s++ {
		for p := 1; p <= attendance.Parts; p++ {
			require.NoError(t, g.Set(s, p, 1, true))
		}
	}

	for _, coefficient := range []string{"0", "12.78", "1000"} {
		got := CalculatePlayerFees(g, false, dec(coefficient), DefaultLateFeeRate, DefaultVideoFeeRate)
		assertDecimal(t, "0", got.NormalPlayerParts, "normal parts")
		assertDecimal(t, "0", got.FieldFee, "field fee")
		assertDecimal(t, "0", got.VideoFee, "video fee")
		assert.Zero(t, got.SectionsWithNormalPlay)
	}

	late := CalculatePlayerFees(g, true, dec("12.78"), DefaultLateFeeRate, DefaultVideoFeeRate)
	assertDecimal(t, "10", late.TotalFee, "goalkeeper late total")
}

func TestCalculatePlayerFees_EmptyGridIsZero(t *testing.T) {
	t.Parallel()

	got := CalculatePlayerFees(attendance.Grid{}, false, dec("12.78"), DefaultLateFeeRate, DefaultVideoFeeRate)
	assertDecimal(t, "0", got.TotalFee, "total fee")
	assertDecimal(t, "0", got.FieldFee, "field fee")
	assertDecimal(t, "0", got.VideoFee, "video fee")
}

func TestCalculatePlayerFees_IsIdempotent(t *testing.T) {
	t.Parallel()

	g := gridWithParts(t, 2.5)
	first := CalculatePlayerFees(g, true, dec("12.7777777777777778"), DefaultLateFeeRate, DefaultVideoFeeRate)
	second := CalculatePlayerFees(g, true, dec("12.7777777777777778"), DefaultLateFeeRate, DefaultVideoFeeRate)
	assert.Equal(t, first, second)
	assertDecimal(t, "31.94", first.FieldFee, "field fee")
	assertDecimal(t, "43.94", first.TotalFee, "total fee")
}

func TestCalculate_UsesConfiguredRates(t *testing.T) {
	t.Parallel()

	got := Calculate(gridWithParts(t, 3), true, dec("10"), DefaultRates(dec("900"), decimal.Zero))
	assertDecimal(t, "30", got.FieldFee, "field fee")
	assertDecimal(t, "2", got.VideoFee, "video fee")
	assertDecimal(t, "10", got.LateFee, "late fee")
	assertDecimal(t, "42", got.TotalFee, "total fee")

	custom := Calculate(gridWithParts(t, 3), true, dec("10"), RateConfig{LateFeeRate: dec("5"), VideoFeeRate: dec("3")})
	assertDecimal(t, "3", custom.VideoFee, "custom video fee")
	assertDecimal(t, "38", custom.TotalFee, "custom total fee")

	free := Calculate(gridWithParts(t, 3), true, dec("10"), RateConfig{})
	assertDecimal(t, "0", free.VideoFee, "zero video rate")
	assertDecimal(t, "0", free.LateFee, "zero late rate")
	assertDecimal(t, "30", free.TotalFee, "field fee only")
}

func TestRateInput_Resolve(t *testing.T) {
	t.Parallel()

	defaults := RateInput{FieldFeeTotal: dec("900")}.Resolve()
	assertDecimal(t, "10", defaults.LateFeeRate, "default late rate")
	assertDecimal(t, "2", defaults.VideoFeeRate, "default video rate")

	zero := decimal.Zero
	explicit := RateInput{FieldFeeTotal: dec("900"), LateFeeRate: &zero, VideoFeeRate: &zero}.Resolve()
	assertDecimal(t, "0", explicit.LateFeeRate, "explicit zero late rate")
	assertDecimal(t, "0", explicit.VideoFeeRate, "explicit zero video rate")
	assertDecimal(t, "900", explicit.FieldFeeTotal, "field total")
}

func TestWaiveLateFeeWithoutPlay(t *testing.T) {
	t.Parallel()

	absent := CalculateForParticipant(attendance.Grid{}, true, dec("12.78"), DefaultRates(decimal.Zero, decimal.Zero))
	assertDecimal(t, "0", absent.LateFee, "absent late fee")
	assertDecimal(t, "0", absent.TotalFee, "absent total")

	var keeperOnly attendance.Grid
	require.NoError(t, keeperOnly.Set(2, 2, 1, true))
	keeper := CalculateForParticipant(keeperOnly, true, dec("12.78"), DefaultRates(decimal.Zero, decimal.Zero))
	assertDecimal(t, "10", keeper.LateFee, "keeper late fee")
	assertDecimal(t, "10", keeper.TotalFee, "keeper total")

	played := CalculateForParticipant(gridWithParts(t, 1), true, dec("12.78"), DefaultRates(decimal.Zero, decimal.Zero))
	assertDecimal(t, "10", played.LateFee, "played late fee")
	assertDecimal(t, "23.78", played.TotalFee, "played total")
}

func TestCalculateCoefficient(t *testing.T) {
	t.Parallel()

	coefficient, ok := CalculateCoefficient(dec("1100"), dec("50"), dec("90"))
	require.True(t, ok)
	assertDecimal(t, "12.78", coefficient.Round(2), "coefficient")
	assert.True(t, coefficient.GreaterThan(dec("12.7777")))
	assert.True(t, coefficient.LessThan(dec("12.7778")))

	zero, ok := CalculateCoefficient(dec("1100"), dec("50"), decimal.Zero)
	assert.False(t, ok)
	assert.True(t, zero.IsZero())

	negative, ok := CalculateCoefficient(dec("1100"), dec("50"), dec("-1"))
	assert.False(t, ok)
	assert.True(t, negative.IsZero())
}

func TestResolveCoefficient(t *testing.T) {
	t.Parallel()

	cfg := RateConfig{FieldFeeTotal: dec("1100"), WaterFeeTotal: dec("50")}

	var keeper attendance.Grid
	require.NoError(t, keeper.Set(1, 1, 1, true))
	grids := []attendance.Grid{gridWithParts(t, 9), gridWithParts(t, 2.5), keeper}

	dynamic, ok := ResolveCoefficient(cfg, CoefficientDynamic, grids)
	require.True(t, ok)
	assertDecimal(t, "100", dynamic, "dynamic coefficient")

	fixed, ok := ResolveCoefficient(cfg, CoefficientFixed, grids)
	require.True(t, ok)
	assertDecimal(t, "12.78", fixed.Round(2), "fixed coefficient")

	empty, ok := ResolveCoefficient(cfg, CoefficientDynamic, nil)
	assert.False(t, ok)
	assert.True(t, empty.IsZero())
}

func TestParseCoefficientMode(t *testing.T) {
	t.Parallel()

	mode, err := ParseCoefficientMode("")
	require.NoError(t, err)
	assert.Equal(t, CoefficientDynamic, mode)

	mode, err = ParseCoefficientMode(" Fixed ")
	require.NoError(t, err)
	assert.Equal(t, CoefficientFixed, mode)

	_, err = ParseCoefficientMode("weekly")
	assert.Error(t, err)
}

func TestRateConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, RateConfig{FieldFeeTotal: dec("1100")}.Validate())

	cfg := RateConfig{FieldFeeTotal: dec("-1"), WaterFeeTotal: dec("50"), VideoFeeRate: dec("-2")}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNegativeAmount))

	violations := cfg.Violations()
	require.Len(t, violations, 2)
	assert.Equal(t, "fieldFeeTotal", violations[0].Field)
	assert.Equal(t, "videoFeeRate", violations[1].Field)
}
