package engine

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/platformbuilds/loan-approval/internal/features"
)

const tinyArtifact = `
name: tiny
kind: logistic_regression
columns: [Gender, Income]
numeric:
  - column: Income
    mean: 1
    scale: 2
    weight: 1
categorical:
  - column: Gender
    categories: [Female, Male]
    weights: [1.0]
intercept: 0.5
`

func tinyRow(t *testing.T, gender string, income float64) features.Row {
	t.Helper()
	row, err := features.NewRow([]string{"Gender", "Income"}, []features.Cell{features.Text(gender), features.Num(income)})
	require.NoError(t, err)
	return row
}

func TestLoadModelScoresLogisticPipeline(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tiny.yaml", tinyArtifact)

	model, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, "tiny", model.Name())
	assert.Equal(t, path, model.Path())
	assert.Equal(t, []string{"Gender", "Income"}, model.Columns())

	// z = 0.5 + (2-1)/2 + 1.0 = 2
	p, err := model.PredictProba(tinyRow(t, "Male", 2))
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-2)), p, 1e-12)

	// reference category contributes nothing: z = 0.5 + 0.5 = 1
	p, err = model.PredictProba(tinyRow(t, "Female", 2))
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-1)), p, 1e-12)
}

func TestLoadModelJSONArtifact(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tiny.json", `{
  "name": "tiny-json",
  "kind": "logistic_regression",
  "columns": ["Income"],
  "numeric": [{"column": "Income", "mean": 0, "scale": 0, "weight": 1}],
  "intercept": 0
}`)

	model, err := LoadModel(path)
	require.NoError(t, err)

	row, err := features.NewRow([]string{"Income"}, []features.Cell{features.Num(0)})
	require.NoError(t, err)
	p, err := model.PredictProba(row)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, ErrArtifactNotFound)

	_, err = LoadModel("")
	require.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestParseArtifactRejectsInconsistentDocuments(t *testing.T) {
	cases := map[string]string{
		"unknown kind": `
kind: random_forest
columns: [Income]
numeric: [{column: Income, scale: 1}]`,
		"no columns": `
kind: logistic_regression`,
		"weights mismatch": `
kind: logistic_regression
columns: [Gender]
categorical: [{column: Gender, categories: [Female, Male], weights: [0.1, 0.2]}]`,
		"column without encoder": `
kind: logistic_regression
columns: [Gender, Income]
numeric: [{column: Income, scale: 1}]`,
		"encoder for undeclared column": `
kind: logistic_regression
columns: [Income]
numeric: [{column: Income, scale: 1}, {column: Other, scale: 1}]`,
		"double encoded column": `
kind: logistic_regression
columns: [Income]
numeric: [{column: Income, scale: 1}]
categorical: [{column: Income, categories: [a], weights: []}]`,
		"duplicate column": `
kind: logistic_regression
columns: [Income, Income]
numeric: [{column: Income, scale: 1}]`,
		"not yaml": `{{{`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseArtifact([]byte(doc))
			require.ErrorIs(t, err, ErrInvalidArtifact)
		})
	}
}

func TestParseArtifactKeepsDecodeCause(t *testing.T) {
	_, err := ParseArtifact([]byte("kind: logistic_regression\ncolumns: {a: b}\n"))
	require.ErrorIs(t, err, ErrInvalidArtifact)

	var typeErr *yaml.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.NotEmpty(t, typeErr.Errors)
}

func TestModelRejectsMismatchedRows(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tiny.yaml", tinyArtifact)
	model, err := LoadModel(path)
	require.NoError(t, err)

	swapped, err := features.NewRow([]string{"Income", "Gender"}, []features.Cell{features.Num(1), features.Text("Male")})
	require.NoError(t, err)
	_, err = model.PredictProba(swapped)
	require.ErrorIs(t, err, features.ErrSchemaMismatch)

	_, err = model.PredictProba(tinyRow(t, "Other", 1))
	require.ErrorIs(t, err, features.ErrSchemaMismatch)

	wrongKind, err := features.NewRow([]string{"Gender", "Income"}, []features.Cell{features.Num(1), features.Num(1)})
	require.NoError(t, err)
	_, err = model.PredictProba(wrongKind)
	require.ErrorIs(t, err, features.ErrSchemaMismatch)
}

func TestSampleArtifactsMatchFeatureSchemas(t *testing.T) {
	withCredit, err := LoadModel(filepath.Join("..", "..", "configs", "models", "best_model_with_credit_history.yaml"))
	require.NoError(t, err)
	assert.Equal(t, features.CreditColumns, withCredit.Columns())

	withoutCredit, err := LoadModel(filepath.Join("..", "..", "configs", "models", "best_model_without_credit_history.yaml"))
	require.NoError(t, err)
	assert.Equal(t, features.ReducedColumns, withoutCredit.Columns())

	ensemble := NewEnsemble(withCredit, withoutCredit)
	for _, mode := range []string{"mode1", "mode2", "mode3"} {
		outcome, err := ensemble.Evaluate(scenarioApplication(), parseMode(t, mode))
		require.NoError(t, err, mode)
		assert.GreaterOrEqual(t, outcome.Probability, 0.0)
		assert.LessOrEqual(t, outcome.Probability, 1.0)
	}
}

func TestSigmoidIsStableForLargeInputs(t *testing.T) {
	assert.InDelta(t, 1.0, sigmoid(800), 1e-12)
	assert.InDelta(t, 0.0, sigmoid(-800), 1e-12)
	assert.False(t, math.IsNaN(sigmoid(-800)))
}
