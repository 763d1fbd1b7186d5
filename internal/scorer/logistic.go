// Package scorer provides predict.Scorer implementations.
package scorer

import (
	"context"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inodb/m6a-predict/internal/features"
	"github.com/inodb/m6a-predict/internal/predict"
)

// Logistic is a linear model over the m6A features passed through a sigmoid.
// Categorical levels without a coefficient, Unknown categories and missing
// bases contribute nothing to the linear predictor.
//
// The YAML form is:
//
//	intercept: -0.4
//	numeric:
//	  gc_content: 1.2
//	  evolutionary_conservation: 2.1
//	rna_type:
//	  mRNA: 0.3
//	rna_region:
//	  "3'UTR": 0.8
//	positions:
//	  - {A: 0.1, G: 0.4}
//	  - {}
//	  - {A: 1.5}
type Logistic struct {
	Intercept float64              `yaml:"intercept"`
	Numeric   map[string]float64   `yaml:"numeric"`
	RNAType   map[string]float64   `yaml:"rna_type"`
	RNARegion map[string]float64   `yaml:"rna_region"`
	Positions []map[string]float64 `yaml:"positions"`
}

var numericColumns = map[string]bool{
	features.ColGCContent:                true,
	features.ColExonLength:               true,
	features.ColDistanceToJunction:       true,
	features.ColEvolutionaryConservation: true,
}

// LoadLogistic reads a Logistic model from a YAML file.
func LoadLogistic(path string) (*Logistic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	m, err := ParseLogistic(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseLogistic decodes and validates a Logistic model.
func ParseLogistic(data []byte) (*Logistic, error) {
	var m Logistic
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every coefficient names a known column or level.
func (m *Logistic) Validate() error {
	for name := range m.Numeric {
		if !numericColumns[name] {
			return fmt.Errorf("numeric coefficient %q: not a numeric feature column", name)
		}
	}
	for level := range m.RNAType {
		if _, ok := features.ParseRNAType(level); !ok {
			return fmt.Errorf("rna_type coefficient %q: unknown level", level)
		}
	}
	for level := range m.RNARegion {
		if _, ok := features.ParseRNARegion(level); !ok {
			return fmt.Errorf("rna_region coefficient %q: unknown level", level)
		}
	}
	for i, pos := range m.Positions {
		for base := range pos {
			if len(base) != 1 || !isBase(base[0]) {
				return fmt.Errorf("positions[%d] coefficient %q: not one of A, T, C, G", i, base)
			}
		}
	}
	return nil
}

func isBase(b byte) bool {
	return b == 'A' || b == 'T' || b == 'C' || b == 'G'
}

// PredictProba implements predict.Scorer.
func (m *Logistic) PredictProba(ctx context.Context, rows []predict.Row) ([]predict.Probabilities, error) {
	out := make([]predict.Probabilities, len(rows))
	for i, r := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(m.Positions) > len(r.Positions) {
			return nil, fmt.Errorf("row %d: model has %d position coefficients, row has %d positions",
				i+1, len(m.Positions), len(r.Positions))
		}
		p := sigmoid(m.linear(r))
		out[i] = predict.Probabilities{predict.Positive: p, predict.Negative: 1 - p}
	}
	return out, nil
}

func (m *Logistic) linear(r predict.Row) float64 {
	z := m.Intercept
	z += m.Numeric[features.ColGCContent] * r.GCContent
	z += m.Numeric[features.ColExonLength] * r.ExonLength
	z += m.Numeric[features.ColDistanceToJunction] * r.DistanceToJunction
	z += m.Numeric[features.ColEvolutionaryConservation] * r.EvolutionaryConservation

	// Map lookups on "NA" miss, so Unknown levels add zero.
	z += m.RNAType[r.RNAType.String()]
	z += m.RNARegion[r.RNARegion.String()]

	for j, coef := range m.Positions {
		if b := r.Positions[j]; b.Valid() {
			z += coef[b.String()]
		}
	}
	return z
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
