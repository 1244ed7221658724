package models

// External field names accepted from forms and API callers.
const (
	FieldGender            = "gender"
	FieldMarried           = "married"
	FieldDependents        = "dependents"
	FieldEducation         = "education"
	FieldSelfEmployed      = "self_employed"
	FieldApplicantIncome   = "applicant_income"
	FieldCoapplicantIncome = "coapplicant_income"
	FieldLoanAmount        = "loan_amount"
	FieldLoanAmountTerm    = "loan_amount_term"
	FieldCreditHistory     = "credit_history"
	FieldPropertyArea      = "property_area"
)

// Categorical values used by the application form.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"

	AnswerYes = "Yes"
	AnswerNo  = "No"

	EducationGraduate    = "Graduate"
	EducationNotGraduate = "Not Graduate"

	PropertyAreaUrban     = "Urban"
	PropertyAreaSemiurban = "Semiurban"
	PropertyAreaRural     = "Rural"
)

// MoneyFields are the fields submitted as exact decimals with two fractional digits.
var MoneyFields = []string{FieldApplicantIncome, FieldCoapplicantIncome, FieldLoanAmount}

// Application is a raw application record keyed by external field name.
// It is built fresh per request and treated as immutable once handed to the engine.
type Application map[string]any

// Clone returns a shallow copy of the application.
func (a Application) Clone() Application {
	out := make(Application, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
