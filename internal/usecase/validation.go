package usecase

import (
	"fmt"

	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/shopspring/decimal"
)

func rateViolations(cfg fee.RateConfig, prefix string) []FieldViolation {
	var out []FieldViolation
	for _, v := range cfg.Violations() {
		out = append(out, FieldViolation{
			Field:   prefix + v.Field,
			Value:   v.Value.String(),
			Message: fee.ErrNegativeAmount.Error(),
		})
	}
	return out
}

func amountViolation(field string, v *decimal.Decimal) (FieldViolation, bool) {
	if v == nil || !v.IsNegative() {
		return FieldViolation{}, false
	}
	return FieldViolation{
		Field:   field,
		Value:   v.String(),
		Message: fee.ErrNegativeAmount.Error(),
	}, true
}

func indexedField(list string, i int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, i, field)
}
