package fee

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrNegativeAmount = errors.New("amount must not be negative")

var (
	DefaultLateFeeRate  = decimal.NewFromInt(10)
	DefaultVideoFeeRate = decimal.NewFromInt(2)
)

// RateConfig is the per-match money input of the engine.
type RateConfig struct {
	FieldFeeTotal decimal.Decimal
	WaterFeeTotal decimal.Decimal
	LateFeeRate   decimal.Decimal
	VideoFeeRate  decimal.Decimal
}

// RateInput is a rate config as submitted. A nil late or video rate takes its
// default. An explicit zero is kept.
type RateInput struct {
	FieldFeeTotal decimal.Decimal
	WaterFeeTotal decimal.Decimal
	LateFeeRate   *decimal.Decimal
	VideoFeeRate  *decimal.Decimal
}

func (in RateInput) Resolve() RateConfig {
	cfg := RateConfig{
		FieldFeeTotal: in.FieldFeeTotal,
		WaterFeeTotal: in.WaterFeeTotal,
		LateFeeRate:   DefaultLateFeeRate,
		VideoFeeRate:  DefaultVideoFeeRate,
	}
	if in.LateFeeRate != nil {
		cfg.LateFeeRate = *in.LateFeeRate
	}
	if in.VideoFeeRate != nil {
		cfg.VideoFeeRate = *in.VideoFeeRate
	}
	return cfg
}

// DefaultRates is a config with the given totals and the default rates.
func DefaultRates(fieldFeeTotal, waterFeeTotal decimal.Decimal) RateConfig {
	return RateInput{FieldFeeTotal: fieldFeeTotal, WaterFeeTotal: waterFeeTotal}.Resolve()
}

// AmountError names a rate field holding a negative value.
type AmountError struct {
	Field string
	Value decimal.Decimal
}

func (e AmountError) Error() string {
	return fmt.Sprintf("%s: %s (got %s)", e.Field, ErrNegativeAmount, e.Value.String())
}

func (e AmountError) Unwrap() error {
	return ErrNegativeAmount
}

// Violations lists every negative amount, in field order.
func (c RateConfig) Violations() []AmountError {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{name: "fieldFeeTotal", value: c.FieldFeeTotal},
		{name: "waterFeeTotal", value: c.WaterFeeTotal},
		{name: "lateFeeRate", value: c.LateFeeRate},
		{name: "videoFeeRate", value: c.VideoFeeRate},
	}

	var out []AmountError
	for _, f := range fields {
		if f.value.IsNegative() {
			out = append(out, AmountError{Field: f.name, Value: f.value})
		}
	}
	return out
}

func (c RateConfig) Validate() error {
	violations := c.Violations()
	if len(violations) == 0 {
		return nil
	}
	errs := make([]error, 0, len(violations))
	for _, v := range violations {
		errs = append(errs, v)
	}
	return errors.Join(errs...)
}
