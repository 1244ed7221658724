package features

// CreditColumns is the column order of the model trained with credit history.
var CreditColumns = []string{
	ColGender,
	ColMarried,
	ColDependents,
	ColEducation,
	ColSelfEmployed,
	ColApplicantIncome,
	ColCoapplicantIncome,
	ColLoanAmount,
	ColLoanAmountTerm,
	ColCreditHistory,
	ColPropertyArea,
}

// ReducedColumns is the column order of the model trained without credit history:
// the credit columns minus Credit_History, followed by the derived columns.
var ReducedColumns = []string{
	ColGender,
	ColMarried,
	ColDependents,
	ColEducation,
	ColSelfEmployed,
	ColApplicantIncome,
	ColCoapplicantIncome,
	ColLoanAmount,
	ColLoanAmountTerm,
	ColPropertyArea,
	ColTotalIncome,
	ColIncomeToLoan,
	ColLoanPerTerm,
	ColIsGraduateAndEmployed,
}

// BaseRecord holds the application columns shared by both models.
type BaseRecord struct {
	Gender            string
	Married           string
	Dependents        float64
	Education         string
	SelfEmployed      string
	ApplicantIncome   float64
	CoapplicantIncome float64
	LoanAmount        float64
	LoanAmountTerm    float64
	PropertyArea      string
}

// CreditRecord is the feature record of the model trained with credit history.
type CreditRecord struct {
	BaseRecord
	CreditHistory float64
}

// ReducedRecord is the feature record of the model trained without credit history.
type ReducedRecord struct {
	BaseRecord
	TotalIncome           float64
	IncomeToLoan          float64
	LoanPerTerm           float64
	IsGraduateAndEmployed int
}

// BuildBaseRecord reads the shared columns from a transformed mapping.
func BuildBaseRecord(base map[string]any) (BaseRecord, error) {
	var (
		rec BaseRecord
		err error
	)
	if rec.Gender, err = textColumn(base, ColGender); err != nil {
		return BaseRecord{}, err
	}
	if rec.Married, err = textColumn(base, ColMarried); err != nil {
		return BaseRecord{}, err
	}
	if rec.Dependents, err = dependentsColumn(base); err != nil {
		return BaseRecord{}, err
	}
	if rec.Education, err = textColumn(base, ColEducation); err != nil {
		return BaseRecord{}, err
	}
	if rec.SelfEmployed, err = textColumn(base, ColSelfEmployed); err != nil {
		return BaseRecord{}, err
	}
	if rec.ApplicantIncome, err = numberColumn(base, ColApplicantIncome); err != nil {
		return BaseRecord{}, err
	}
	if rec.CoapplicantIncome, err = numberColumn(base, ColCoapplicantIncome); err != nil {
		return BaseRecord{}, err
	}
	if rec.LoanAmount, err = numberColumn(base, ColLoanAmount); err != nil {
		return BaseRecord{}, err
	}
	if rec.LoanAmountTerm, err = numberColumn(base, ColLoanAmountTerm); err != nil {
		return BaseRecord{}, err
	}
	if rec.PropertyArea, err = textColumn(base, ColPropertyArea); err != nil {
		return BaseRecord{}, err
	}
	return rec, nil
}

// BuildCreditRecord projects a transformed mapping onto the credit-history schema.
func BuildCreditRecord(base map[string]any) (CreditRecord, error) {
	shared, err := BuildBaseRecord(base)
	if err != nil {
		return CreditRecord{}, err
	}
	history, err := creditHistoryColumn(base)
	if err != nil {
		return CreditRecord{}, err
	}
	return CreditRecord{BaseRecord: shared, CreditHistory: history}, nil
}

// Row renders the record in CreditColumns order.
func (r CreditRecord) Row() Row {
	return Row{
		columns: CreditColumns,
		cells: []Cell{
			Text(r.Gender),
			Text(r.Married),
			Num(r.Dependents),
			Text(r.Education),
			Text(r.SelfEmployed),
			Num(r.ApplicantIncome),
			Num(r.CoapplicantIncome),
			Num(r.LoanAmount),
			Num(r.LoanAmountTerm),
			Num(r.CreditHistory),
			Text(r.PropertyArea),
		},
	}
}

// Row renders the record in ReducedColumns order.
func (r ReducedRecord) Row() Row {
	return Row{
		columns: ReducedColumns,
		cells: []Cell{
			Text(r.Gender),
			Text(r.Married),
			Num(r.Dependents),
			Text(r.Education),
			Text(r.SelfEmployed),
			Num(r.ApplicantIncome),
			Num(r.CoapplicantIncome),
			Num(r.LoanAmount),
			Num(r.LoanAmountTerm),
			Text(r.PropertyArea),
			Num(r.TotalIncome),
			Num(r.IncomeToLoan),
			Num(r.LoanPerTerm),
			Num(float64(r.IsGraduateAndEmployed)),
		},
	}
}
