package validation

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/loan-approval/internal/models"
)

func validApplication() map[string]any {
	return map[string]any{
		"gender":             "Male",
		"married":            "Yes",
		"dependents":         0,
		"education":          "Graduate",
		"self_employed":      "No",
		"applicant_income":   decimal.RequireFromString("5000.00"),
		"coapplicant_income": 2000.0,
		"loan_amount":        150000,
		"loan_amount_term":   360,
		"credit_history":     "Yes",
		"property_area":      "Urban",
	}
}

func TestValidateApplicationAcceptsCompleteApplication(t *testing.T) {
	for _, mode := range models.Modes() {
		res, err := ValidateApplication(validApplication(), mode)
		require.NoError(t, err)
		assert.True(t, res.Valid(), "mode %s: %v", mode, res.AsMap())
	}
}

func TestValidateApplicationAllowsUnknownFields(t *testing.T) {
	app := validApplication()
	app["csrfmiddlewaretoken"] = "abc"
	res, err := ValidateApplication(app, models.ModeWithCreditHistory)
	require.NoError(t, err)
	assert.True(t, res.Valid())
}

func TestValidateApplicationCreditHistoryPerMode(t *testing.T) {
	app := validApplication()
	delete(app, "credit_history")

	res, err := ValidateApplication(app, models.ModeWithoutCreditHistory)
	require.NoError(t, err)
	assert.True(t, res.Valid())

	for _, mode := range []models.Mode{models.ModeWithCreditHistory, models.ModeEnsemble} {
		res, err = ValidateApplication(app, mode)
		require.NoError(t, err)
		assert.Equal(t, []string{"This field is required."}, res.AsMap()["credit_history"], mode)
	}

	app["credit_history"] = "Maybe"
	res, err = ValidateApplication(app, models.ModeWithoutCreditHistory)
	require.NoError(t, err)
	assert.True(t, res.Valid(), "credit_history is ignored without credit history")
}

func TestValidateApplicationReportsFieldErrors(t *testing.T) {
	app := validApplication()
	app["gender"] = "Other"
	app["loan_amount"] = -1
	app["loan_amount_term"] = 0
	app["dependents"] = "3+"
	delete(app, "property_area")

	res, err := ValidateApplication(app, models.ModeWithCreditHistory)
	require.NoError(t, err)
	require.False(t, res.Valid())

	errs := res.AsMap()
	assert.Equal(t, []string{`"Other" is not a valid choice.`}, errs["gender"])
	assert.Equal(t, []string{"Ensure this value is greater than or equal to 0."}, errs["loan_amount"])
	assert.Equal(t, []string{"Ensure this value is greater than or equal to 1."}, errs["loan_amount_term"])
	assert.Equal(t, []string{"This field is required."}, errs["property_area"])
	assert.NotContains(t, errs, "dependents")
}

func TestValidateApplicationRejectsWrongTypes(t *testing.T) {
	app := validApplication()
	app["applicant_income"] = "lots"
	app["loan_amount_term"] = 12.5

	res, err := ValidateApplication(app, models.ModeWithCreditHistory)
	require.NoError(t, err)
	errs := res.AsMap()
	assert.Contains(t, errs["applicant_income"], "A valid number is required.")
	assert.Contains(t, errs["loan_amount_term"], "A valid integer is required.")
}

func TestValidateApplicationRejectsInvalidMode(t *testing.T) {
	_, err := ValidateApplication(validApplication(), models.Mode("mode4"))
	require.ErrorIs(t, err, models.ErrInvalidMode)
}

func TestValidateApplicationDoesNotMutateInput(t *testing.T) {
	app := validApplication()
	_, err := ValidateApplication(app, models.ModeWithoutCreditHistory)
	require.NoError(t, err)
	assert.Contains(t, app, "credit_history")
	assert.IsType(t, decimal.Decimal{}, app["applicant_income"])
}

func TestValidateApplicationAcceptsNumericStrings(t *testing.T) {
	app := validApplication()
	app["applicant_income"] = "5000.00"
	app["coapplicant_income"] = "0"
	app["loan_amount"] = " 150000.50 "
	app["dependents"] = "2"
	app["loan_amount_term"] = "360"

	for _, mode := range models.Modes() {
		res, err := ValidateApplication(app, mode)
		require.NoError(t, err)
		assert.True(t, res.Valid(), "mode %s: %v", mode, res.AsMap())
	}
	assert.Equal(t, "5000.00", app["applicant_income"], "input is not mutated")
}

func TestValidateApplicationEnforcesMoneyDigits(t *testing.T) {
	cases := map[string]struct {
		value any
		want  string
	}{
		"three decimal places":  {5000.129, "Ensure that there are no more than 2 decimal places."},
		"decimal places string": {"0.001", "Ensure that there are no more than 2 decimal places."},
		"too many digits":       {1e15, "Ensure that there are no more than 12 digits in total."},
		"too many whole digits": {json.Number("12345678901.5"), "Ensure that there are no more than 10 digits before the decimal point."},
		"exact decimal":         {decimal.RequireFromString("10.125"), "Ensure that there are no more than 2 decimal places."},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := validApplication()
			app["loan_amount"] = tc.value
			res, err := ValidateApplication(app, models.ModeWithCreditHistory)
			require.NoError(t, err)
			assert.Equal(t, map[string][]string{"loan_amount": {tc.want}}, res.AsMap())
		})
	}

	app := validApplication()
	app["applicant_income"] = "9999999999.99"
	app["loan_amount"] = json.Number("5000.10")
	res, err := ValidateApplication(app, models.ModeWithCreditHistory)
	require.NoError(t, err)
	assert.True(t, res.Valid(), res.AsMap())
}

func TestValidateApplicationReportsOneMessageForDependents(t *testing.T) {
	for _, value := range []any{"two", -1, 1.5, "-3"} {
		app := validApplication()
		app["dependents"] = value
		res, err := ValidateApplication(app, models.ModeWithCreditHistory)
		require.NoError(t, err)
		assert.Equal(t, map[string][]string{"dependents": {`Expected a non-negative integer or "3+".`}}, res.AsMap(), "value %v", value)
	}
}
