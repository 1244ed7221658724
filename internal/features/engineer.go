package features

import "github.com/platformbuilds/loan-approval/internal/models"

// denominatorOffset keeps the ratio features finite for zero amounts and terms.
const denominatorOffset = 1.0

// Augment builds the reduced-model record from a transformed mapping. Credit_History
// is ignored when present. Category values are not range-checked here.
func Augment(base map[string]any) (ReducedRecord, error) {
	shared, err := BuildBaseRecord(base)
	if err != nil {
		return ReducedRecord{}, err
	}
	return Derive(shared), nil
}

// Derive computes the engineered columns from the shared columns.
func Derive(shared BaseRecord) ReducedRecord {
	total := shared.ApplicantIncome + shared.CoapplicantIncome
	graduateAndEmployed := 0
	if shared.Education == models.EducationGraduate && shared.SelfEmployed == models.AnswerNo {
		graduateAndEmployed = 1
	}
	return ReducedRecord{
		BaseRecord:            shared,
		TotalIncome:           total,
		IncomeToLoan:          total / (shared.LoanAmount + denominatorOffset),
		LoanPerTerm:           shared.LoanAmount / (shared.LoanAmountTerm + denominatorOffset),
		IsGraduateAndEmployed: graduateAndEmployed,
	}
}
