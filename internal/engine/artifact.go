package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/platformbuilds/loan-approval/internal/features"
)

// KindLogisticRegression is the only classifier head currently exported by the training job.
const KindLogisticRegression = "logistic_regression"

// Artifact is the declarative export of a trained pipeline: standard scaling of numeric
// columns, one-hot encoding with the first category dropped, and a logistic head.
type Artifact struct {
	Name        string               `yaml:"name"`
	Kind        string               `yaml:"kind"`
	Columns     []string             `yaml:"columns"`
	Numeric     []NumericFeature     `yaml:"numeric"`
	Categorical []CategoricalFeature `yaml:"categorical"`
	Intercept   float64              `yaml:"intercept"`
}

// NumericFeature describes a standardised numeric column.
type NumericFeature struct {
	Column string  `yaml:"column"`
	Mean   float64 `yaml:"mean"`
	Scale  float64 `yaml:"scale"`
	Weight float64 `yaml:"weight"`
}

// CategoricalFeature describes a one-hot encoded column. Categories[0] is the
// reference level and carries no weight.
type CategoricalFeature struct {
	Column     string    `yaml:"column"`
	Categories []string  `yaml:"categories"`
	Weights    []float64 `yaml:"weights"`
}

// LoadArtifact reads and validates an artifact file. A missing file yields
// ErrArtifactNotFound.
func LoadArtifact(path string) (*Artifact, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrArtifactNotFound)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, eris.Wrapf(err, "read model artifact %s", path)
	}
	artifact, err := ParseArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return artifact, nil
}

// ParseArtifact decodes a YAML (or JSON) artifact document.
func ParseArtifact(data []byte) (*Artifact, error) {
	var artifact Artifact
	if err := yaml.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidArtifact, err)
	}
	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// Validate checks that every column is encoded exactly once and weights line up.
func (a *Artifact) Validate() error {
	if a.Kind != KindLogisticRegression {
		return fmt.Errorf("%w: unsupported kind %q", ErrInvalidArtifact, a.Kind)
	}
	if len(a.Columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidArtifact)
	}
	declared := make(map[string]int, len(a.Columns))
	for _, col := range a.Columns {
		if _, dup := declared[col]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidArtifact, col)
		}
		declared[col] = 0
	}
	for _, num := range a.Numeric {
		if _, ok := declared[num.Column]; !ok {
			return fmt.Errorf("%w: numeric column %q not in columns", ErrInvalidArtifact, num.Column)
		}
		declared[num.Column]++
	}
	for _, cat := range a.Categorical {
		if _, ok := declared[cat.Column]; !ok {
			return fmt.Errorf("%w: categorical column %q not in columns", ErrInvalidArtifact, cat.Column)
		}
		if len(cat.Categories) == 0 {
			return fmt.Errorf("%w: categorical column %q has no categories", ErrInvalidArtifact, cat.Column)
		}
		if len(cat.Weights) != len(cat.Categories)-1 {
			return fmt.Errorf("%w: categorical column %q has %d weights for %d categories",
				ErrInvalidArtifact, cat.Column, len(cat.Weights), len(cat.Categories))
		}
		declared[cat.Column]++
	}
	for _, col := range a.Columns {
		switch declared[col] {
		case 1:
		case 0:
			return fmt.Errorf("%w: column %q has no encoder", ErrInvalidArtifact, col)
		default:
			return fmt.Errorf("%w: column %q is encoded more than once", ErrInvalidArtifact, col)
		}
	}
	return nil
}

type columnEncoder struct {
	numeric *NumericFeature
	levels  map[string]float64
}

type logisticPipeline struct {
	columns   []string
	encoders  []columnEncoder
	intercept float64
}

func (a *Artifact) compile() *logisticPipeline {
	byColumn := make(map[string]columnEncoder, len(a.Columns))
	for i := range a.Numeric {
		num := a.Numeric[i]
		if num.Scale == 0 {
			num.Scale = 1
		}
		byColumn[num.Column] = columnEncoder{numeric: &num}
	}
	for _, cat := range a.Categorical {
		levels := make(map[string]float64, len(cat.Categories))
		for i, level := range cat.Categories {
			if i == 0 {
				levels[level] = 0
				continue
			}
			levels[level] = cat.Weights[i-1]
		}
		byColumn[cat.Column] = columnEncoder{levels: levels}
	}

	p := &logisticPipeline{
		columns:   append([]string(nil), a.Columns...),
		encoders:  make([]columnEncoder, len(a.Columns)),
		intercept: a.Intercept,
	}
	for i, col := range a.Columns {
		p.encoders[i] = byColumn[col]
	}
	return p
}

func (p *logisticPipeline) probability(row features.Row) (float64, error) {
	if err := row.CheckColumns(p.columns); err != nil {
		return 0, err
	}
	z := p.intercept
	for i, enc := range p.encoders {
		column, cell := row.At(i)
		if enc.numeric != nil {
			if cell.Kind != features.KindNumber {
				return 0, fmt.Errorf("%w: column %s expects a number, got %q", features.ErrSchemaMismatch, column, cell.Text)
			}
			z += enc.numeric.Weight * (cell.Number - enc.numeric.Mean) / enc.numeric.Scale
			continue
		}
		if cell.Kind != features.KindText {
			return 0, fmt.Errorf("%w: column %s expects a category, got %s", features.ErrSchemaMismatch, column, cell)
		}
		weight, ok := enc.levels[cell.Text]
		if !ok {
			return 0, fmt.Errorf("%w: column %s has unknown category %q", features.ErrSchemaMismatch, column, cell.Text)
		}
		z += weight
	}
	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
