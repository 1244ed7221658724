// Package validation checks loan applications at the service boundary before they
// reach the decision engine, reporting problems per field.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"

	"github.com/platformbuilds/loan-approval/internal/models"
)

// FieldError describes one rejected field. Field is "non_field_errors" for problems
// that are not tied to a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result holds the outcome of validating one application.
type Result struct {
	Mode   models.Mode
	Errors []FieldError
}

// Valid reports whether no field was rejected.
func (r *Result) Valid() bool { return r == nil || len(r.Errors) == 0 }

// AsMap renders errors as {"field": ["message", ...]}.
func (r *Result) AsMap() map[string][]string {
	out := make(map[string][]string)
	if r == nil {
		return out
	}
	for _, fe := range r.Errors {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

const (
	nonFieldErrors = "non_field_errors"
	rootContext    = "(root)"
)

// ValidateApplication checks raw against the application schema for mode. Without
// credit history (mode2) the credit_history field is ignored entirely. Unknown
// fields are allowed.
func ValidateApplication(raw map[string]any, mode models.Mode) (*Result, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidMode, mode)
	}

	schema := withCreditSchema
	if !mode.RequiresCreditHistory() {
		schema = withoutCreditSchema
	}

	doc, precision := document(raw, mode)
	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, eris.Wrap(err, "validate application")
	}

	// A failed anyOf also reports each branch; keep only the summary for that field.
	summarised := make(map[string]bool)
	for _, desc := range res.Errors() {
		if desc.Type() == "number_any_of" {
			summarised[desc.Field()] = true
		}
	}

	result := &Result{Mode: mode}
	seen := make(map[FieldError]struct{})
	add := func(fe FieldError) {
		if _, dup := seen[fe]; dup {
			return
		}
		seen[fe] = struct{}{}
		result.Errors = append(result.Errors, fe)
	}
	for _, desc := range res.Errors() {
		if summarised[desc.Field()] && desc.Type() != "number_any_of" {
			continue
		}
		add(describe(desc))
	}
	for _, fe := range precision {
		add(fe)
	}
	sort.SliceStable(result.Errors, func(i, j int) bool {
		return result.Errors[i].Field < result.Errors[j].Field
	})
	return result, nil
}

// document copies raw into a JSON-friendly map: money and integer fields are coerced
// to numbers, remaining decimals become floats and, for modes without credit history,
// credit_history is dropped. Money precision problems are returned as field errors.
func document(raw map[string]any, mode models.Mode) (map[string]any, []FieldError) {
	doc := make(map[string]any, len(raw))
	for k, v := range raw {
		doc[k] = v
	}
	if !mode.RequiresCreditHistory() {
		delete(doc, models.FieldCreditHistory)
	}

	precision := coerceNumbers(doc)
	for k, v := range doc {
		switch t := v.(type) {
		case decimal.Decimal:
			doc[k] = t.InexactFloat64()
		case *decimal.Decimal:
			if t != nil {
				doc[k] = t.InexactFloat64()
			} else {
				doc[k] = nil
			}
		}
	}
	return doc, precision
}

func describe(desc gojsonschema.ResultError) FieldError {
	field := desc.Field()
	details := desc.Details()

	switch desc.Type() {
	case "required":
		if prop, ok := details["property"].(string); ok {
			return FieldError{Field: prop, Message: "This field is required."}
		}
	case "enum":
		return FieldError{Field: field, Message: fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(desc.Value()))}
	case "invalid_type":
		switch details["expected"] {
		case "integer":
			return FieldError{Field: field, Message: "A valid integer is required."}
		case "number":
			return FieldError{Field: field, Message: "A valid number is required."}
		}
	case "number_gte":
		return FieldError{Field: field, Message: fmt.Sprintf("Ensure this value is greater than or equal to %v.", details["min"])}
	case "number_any_of":
		return FieldError{Field: field, Message: `Expected a non-negative integer or "3+".`}
	}

	if field == "" || field == rootContext {
		field = nonFieldErrors
	}
	return FieldError{Field: field, Message: desc.Description()}
}

// Error reports a rejected application.
type Error struct {
	Result *Result
}

func (e *Error) Error() string {
	if e == nil || e.Result == nil || len(e.Result.Errors) == 0 {
		return "invalid application"
	}
	parts := make([]string, 0, len(e.Result.Errors))
	for _, fe := range e.Result.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid application: " + strings.Join(parts, "; ")
}
