package services

import (
	"strings"

	"github.com/platformbuilds/loan-approval/internal/models"
	"github.com/platformbuilds/loan-approval/internal/validation"
)

// normalizeApplication returns a copy of app with money fields as decimal.Decimal and
// text answers trimmed. Validation has already rejected money with more than
// MoneyDecimalPlaces fractional digits, so the rounding never changes a value.
// Values that cannot be read as money are left untouched for the engine to reject.
func normalizeApplication(app models.Application) models.Application {
	out := app.Clone()
	for _, field := range models.MoneyFields {
		v, ok := out[field]
		if !ok || v == nil {
			continue
		}
		if d, ok := validation.ToDecimal(v); ok {
			out[field] = d.Round(validation.MoneyDecimalPlaces)
		}
	}
	for k, v := range out {
		if s, ok := v.(string); ok {
			out[k] = strings.TrimSpace(s)
		}
	}
	return out
}
