package validation

import (
	"github.com/xeipuuv/gojsonschema"

	"github.com/platformbuilds/loan-approval/internal/models"
)

var (
	yesNo         = []any{models.AnswerYes, models.AnswerNo}
	genders       = []any{models.GenderMale, models.GenderFemale}
	educations    = []any{models.EducationGraduate, models.EducationNotGraduate}
	propertyAreas = []any{models.PropertyAreaUrban, models.PropertyAreaSemiurban, models.PropertyAreaRural}
)

func applicationSchema(requireCreditHistory bool) map[string]any {
	required := []any{
		models.FieldGender,
		models.FieldMarried,
		models.FieldDependents,
		models.FieldEducation,
		models.FieldSelfEmployed,
		models.FieldApplicantIncome,
		models.FieldCoapplicantIncome,
		models.FieldLoanAmount,
		models.FieldLoanAmountTerm,
		models.FieldPropertyArea,
	}
	if requireCreditHistory {
		required = append(required, models.FieldCreditHistory)
	}
	money := map[string]any{"type": "number", "minimum": 0}

	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": required,
		"properties": map[string]any{
			models.FieldGender:  map[string]any{"enum": genders},
			models.FieldMarried: map[string]any{"enum": yesNo},
			models.FieldDependents: map[string]any{
				"anyOf": []any{
					map[string]any{"type": "integer", "minimum": 0},
					map[string]any{"enum": []any{"3+"}},
				},
			},
			models.FieldEducation:         map[string]any{"enum": educations},
			models.FieldSelfEmployed:      map[string]any{"enum": yesNo},
			models.FieldApplicantIncome:   money,
			models.FieldCoapplicantIncome: money,
			models.FieldLoanAmount:        money,
			models.FieldLoanAmountTerm:    map[string]any{"type": "integer", "minimum": 1},
			models.FieldCreditHistory:     map[string]any{"enum": yesNo},
			models.FieldPropertyArea:      map[string]any{"enum": propertyAreas},
		},
	}
}

func mustCompile(requireCreditHistory bool) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(applicationSchema(requireCreditHistory)))
	if err != nil {
		panic("validation: compile application schema: " + err.Error())
	}
	return schema
}

var (
	withCreditSchema    = mustCompile(true)
	withoutCreditSchema = mustCompile(false)
)
