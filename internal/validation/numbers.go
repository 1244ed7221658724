package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/platformbuilds/loan-approval/internal/models"
)

// Money fields hold at most 12 digits, 2 of them after the decimal point.
const (
	MoneyMaxDigits     = 12
	MoneyDecimalPlaces = 2
)

// integerFields accept numeric strings such as "2" as well as JSON integers.
var integerFields = []string{models.FieldDependents, models.FieldLoanAmountTerm}

// ToDecimal reads v as an exact decimal. JSON numbers, numeric strings, Go numbers
// and decimals are accepted; anything else (including NaN and infinities) is not.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case *decimal.Decimal:
		if t == nil {
			return decimal.Decimal{}, false
		}
		return *t, true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(t), true
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt32(t), true
	case int64:
		return decimal.NewFromInt(t), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// moneyPrecision reports the first digit-count rule d breaks, or "" when it fits.
func moneyPrecision(d decimal.Decimal) string {
	digits := len(d.Abs().Coefficient().String())
	exponent := int(d.Exponent())

	var total, places int
	switch {
	case exponent >= 0:
		total = digits + exponent
	case -exponent > digits:
		total, places = -exponent, -exponent
	default:
		total, places = digits, -exponent
	}

	switch {
	case total > MoneyMaxDigits:
		return fmt.Sprintf("Ensure that there are no more than %d digits in total.", MoneyMaxDigits)
	case places > MoneyDecimalPlaces:
		return fmt.Sprintf("Ensure that there are no more than %d decimal places.", MoneyDecimalPlaces)
	case total-places > MoneyMaxDigits-MoneyDecimalPlaces:
		return fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", MoneyMaxDigits-MoneyDecimalPlaces)
	}
	return ""
}

// coerceNumbers rewrites money and integer fields of doc into JSON numbers so the
// schema sees "5000.00" and "2" the same as 5000.00 and 2. Money values breaking the
// digit limits are reported as field errors. Unreadable values are left for the
// schema to reject.
func coerceNumbers(doc map[string]any) []FieldError {
	var errs []FieldError
	for _, field := range models.MoneyFields {
		v, ok := doc[field]
		if !ok || v == nil {
			continue
		}
		d, ok := ToDecimal(v)
		if !ok {
			continue
		}
		doc[field] = d.InexactFloat64()
		if msg := moneyPrecision(d); msg != "" {
			errs = append(errs, FieldError{Field: field, Message: msg})
		}
	}
	for _, field := range integerFields {
		s, ok := doc[field].(string)
		if !ok {
			continue
		}
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			doc[field] = n
		}
	}
	return errs
}
