package engine

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/loan-approval/internal/features"
)

type stubClassifier struct {
	mu    sync.Mutex
	p     float64
	err   error
	calls int
	rows  []features.Row
}

func (s *stubClassifier) PredictProba(row features.Row) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.rows = append(s.rows, row)
	return s.p, s.err
}

func (s *stubClassifier) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// scenarioApplication is the application used across the decision scenarios.
func scenarioApplication() map[string]any {
	return map[string]any{
		"gender":             "Male",
		"married":            "Yes",
		"dependents":         0,
		"education":          "Graduate",
		"self_employed":      "No",
		"applicant_income":   decimal.RequireFromString("5000.00"),
		"coapplicant_income": decimal.RequireFromString("2000.00"),
		"loan_amount":        decimal.RequireFromString("150000.00"),
		"loan_amount_term":   360,
		"credit_history":     "Yes",
		"property_area":      "Urban",
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
