package features

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func requireValue(base map[string]any, column string) (any, error) {
	v, ok := base[column]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: missing column %s", ErrSchemaMismatch, column)
	}
	return v, nil
}

func numberColumn(base map[string]any, column string) (float64, error) {
	v, err := requireValue(base, column)
	if err != nil {
		return 0, err
	}
	n, err := toNumber(v)
	if err != nil {
		return 0, fmt.Errorf("%w: column %s: %v", ErrSchemaMismatch, column, err)
	}
	return n, nil
}

func textColumn(base map[string]any, column string) (string, error) {
	v, err := requireValue(base, column)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: column %s: expected string, got %T", ErrSchemaMismatch, column, v)
	}
	return s, nil
}

// dependentsColumn accepts the training data's "3+" bucket as 3.
func dependentsColumn(base map[string]any) (float64, error) {
	v, err := requireValue(base, ColDependents)
	if err != nil {
		return 0, err
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "3+" {
		return 3, nil
	}
	return numberColumn(base, ColDependents)
}

// creditHistoryColumn maps Yes/No answers to 1/0 the way the intake serializer did.
func creditHistoryColumn(base map[string]any) (float64, error) {
	v, err := requireValue(base, ColCreditHistory)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "y":
			return 1, nil
		case "no", "n":
			return 0, nil
		}
	}
	return numberColumn(base, ColCreditHistory)
}

func toNumber(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint:
		return float64(t), nil
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case decimal.Decimal:
		return t.InexactFloat64(), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
