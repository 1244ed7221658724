package features

import (
	"github.com/shopspring/decimal"

	"github.com/platformbuilds/loan-approval/internal/models"
)

// Model column names, as frozen at training time.
const (
	ColGender                = "Gender"
	ColMarried               = "Married"
	ColDependents            = "Dependents"
	ColEducation             = "Education"
	ColSelfEmployed          = "Self_Employed"
	ColApplicantIncome       = "ApplicantIncome"
	ColCoapplicantIncome     = "CoapplicantIncome"
	ColLoanAmount            = "LoanAmount"
	ColLoanAmountTerm        = "Loan_Amount_Term"
	ColCreditHistory         = "Credit_History"
	ColPropertyArea          = "Property_Area"
	ColTotalIncome           = "Total_Income"
	ColIncomeToLoan          = "Income_to_Loan"
	ColLoanPerTerm           = "Loan_per_Term"
	ColIsGraduateAndEmployed = "Is_Graduate_and_Employed"
)

var renameTable = map[string]string{
	models.FieldGender:            ColGender,
	models.FieldMarried:           ColMarried,
	models.FieldDependents:        ColDependents,
	models.FieldEducation:         ColEducation,
	models.FieldSelfEmployed:      ColSelfEmployed,
	models.FieldApplicantIncome:   ColApplicantIncome,
	models.FieldCoapplicantIncome: ColCoapplicantIncome,
	models.FieldLoanAmount:        ColLoanAmount,
	models.FieldLoanAmountTerm:    ColLoanAmountTerm,
	models.FieldCreditHistory:     ColCreditHistory,
	models.FieldPropertyArea:      ColPropertyArea,
}

// ColumnFor returns the model column for an external field name.
func ColumnFor(field string) (string, bool) {
	col, ok := renameTable[field]
	return col, ok
}

// Transform renames recognised external fields to model columns. Unknown keys are
// dropped. Exact decimals become float64; every other value passes through unchanged.
func Transform(raw map[string]any) map[string]any {
	out := make(map[string]any, len(renameTable))
	for key, value := range raw {
		col, ok := renameTable[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case decimal.Decimal:
			value = v.InexactFloat64()
		case *decimal.Decimal:
			if v != nil {
				value = v.InexactFloat64()
			}
		}
		out[col] = value
	}
	return out
}
