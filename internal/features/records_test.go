package features

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBase() map[string]any {
	return map[string]any{
		ColGender:            "Male",
		ColMarried:           "Yes",
		ColDependents:        0,
		ColEducation:         "Graduate",
		ColSelfEmployed:      "No",
		ColApplicantIncome:   5000.0,
		ColCoapplicantIncome: 2000.0,
		ColLoanAmount:        150000.0,
		ColLoanAmountTerm:    360,
		ColCreditHistory:     "Yes",
		ColPropertyArea:      "Urban",
	}
}

func TestBuildCreditRecordRowOrder(t *testing.T) {
	rec, err := BuildCreditRecord(sampleBase())
	require.NoError(t, err)

	row := rec.Row()
	assert.Equal(t, CreditColumns, row.Columns())
	require.NoError(t, row.CheckColumns(CreditColumns))

	cell, ok := row.Get(ColCreditHistory)
	require.True(t, ok)
	assert.Equal(t, Num(1), cell)

	cell, ok = row.Get(ColPropertyArea)
	require.True(t, ok)
	assert.Equal(t, Text("Urban"), cell)
}

func TestBuildCreditRecordCreditHistoryForms(t *testing.T) {
	cases := map[string]struct {
		value any
		want  float64
	}{
		"no answer":    {value: "No", want: 0},
		"numeric one":  {value: 1.0, want: 1},
		"numeric zero": {value: 0, want: 0},
		"boolean":      {value: true, want: 1},
		"json number":  {value: json.Number("1"), want: 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			base := sampleBase()
			base[ColCreditHistory] = tc.value
			rec, err := BuildCreditRecord(base)
			require.NoError(t, err)
			assert.Equal(t, tc.want, rec.CreditHistory)
		})
	}
}

func TestBuildCreditRecordMissingCreditHistory(t *testing.T) {
	base := sampleBase()
	delete(base, ColCreditHistory)

	_, err := BuildCreditRecord(base)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestBuildBaseRecordTypeErrors(t *testing.T) {
	cases := map[string]func(map[string]any){
		"numeric gender":      func(b map[string]any) { b[ColGender] = 1 },
		"text income":         func(b map[string]any) { b[ColApplicantIncome] = "lots" },
		"missing term":        func(b map[string]any) { delete(b, ColLoanAmountTerm) },
		"nil property area":   func(b map[string]any) { b[ColPropertyArea] = nil },
		"struct dependents":   func(b map[string]any) { b[ColDependents] = struct{}{} },
		"garbage credit hist": func(b map[string]any) { b[ColCreditHistory] = "maybe" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			base := sampleBase()
			mutate(base)
			_, err := BuildCreditRecord(base)
			require.ErrorIs(t, err, ErrSchemaMismatch)
		})
	}
}

func TestDependentsAcceptsThreePlusBucket(t *testing.T) {
	base := sampleBase()
	base[ColDependents] = "3+"

	rec, err := BuildBaseRecord(base)
	require.NoError(t, err)
	assert.Equal(t, 3.0, rec.Dependents)
}

func TestRowCheckColumnsMismatch(t *testing.T) {
	rec, err := BuildCreditRecord(sampleBase())
	require.NoError(t, err)

	err = rec.Row().CheckColumns(ReducedColumns)
	require.ErrorIs(t, err, ErrSchemaMismatch)

	swapped := append([]string(nil), CreditColumns...)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	require.ErrorIs(t, rec.Row().CheckColumns(swapped), ErrSchemaMismatch)
}

func TestNewRowLengthMismatch(t *testing.T) {
	_, err := NewRow([]string{"a", "b"}, []Cell{Num(1)})
	require.ErrorIs(t, err, ErrSchemaMismatch)
}
