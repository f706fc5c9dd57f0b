package fee

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/football-club/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// CoefficientMode selects the play-time denominator of the coefficient.
type CoefficientMode string

const (
	// CoefficientDynamic divides by the normal play time of every participant.
	CoefficientDynamic CoefficientMode = "dynamic"
	// CoefficientFixed divides by FixedPlayTimeUnits. Historical imports use it.
	CoefficientFixed CoefficientMode = "fixed"
)

// FixedPlayTimeUnits is a full 3 section x 3 part grid of ten minute units.
const FixedPlayTimeUnits = 90

func ParseCoefficientMode(raw string) (CoefficientMode, error) {
	switch mode := CoefficientMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return CoefficientDynamic, nil
	case CoefficientDynamic, CoefficientFixed:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid coefficient mode %q", raw)
	}
}

// CalculateCoefficient is (fieldFeeTotal+waterFeeTotal)/totalPlayTimeUnits.
// ok is false when there is no play time yet; the coefficient is then zero.
func CalculateCoefficient(fieldFeeTotal, waterFeeTotal, totalPlayTimeUnits decimal.Decimal) (decimal.Decimal, bool) {
	if !totalPlayTimeUnits.IsPositive() {
		return decimal.Zero, false
	}
	return fieldFeeTotal.Add(waterFeeTotal).Div(totalPlayTimeUnits), true
}

// NormalPlayTime sums the fee-bearing parts of every grid.
func NormalPlayTime(grids []attendance.Grid) decimal.Decimal {
	total := decimal.Zero
	for _, grid := range grids {
		total = total.Add(CalculatePlayerFees(grid, false, decimal.Zero, decimal.Zero, decimal.Zero).NormalPlayerParts)
	}
	return total
}

// ResolveCoefficient picks the denominator by mode and computes the coefficient.
func ResolveCoefficient(cfg RateConfig, mode CoefficientMode, grids []attendance.Grid) (decimal.Decimal, bool) {
	units := decimal.NewFromInt(FixedPlayTimeUnits)
	if mode != CoefficientFixed {
		units = NormalPlayTime(grids)
	}
	return CalculateCoefficient(cfg.FieldFeeTotal, cfg.WaterFeeTotal, units)
}
