package predict

import (
	"context"

	"github.com/inodb/m6a-predict/internal/features"
	"github.com/inodb/m6a-predict/internal/nucleotide"
)

// Class is a predicted m6A status label.
type Class string

const (
	Positive Class = "Positive"
	Negative Class = "Negative"
)

// Probabilities maps class labels to their predicted probability.
type Probabilities map[Class]float64

// Row is the model input for one site: the parsed features plus the encoded
// DNA_5mer positions (nt_pos1..nt_posN).
type Row struct {
	features.Record
	Positions []nucleotide.Base
}

// Scorer is a fitted binary classifier that emits class probabilities.
// PredictProba must return one Probabilities per input row, in order.
type Scorer interface {
	PredictProba(ctx context.Context, rows []Row) ([]Probabilities, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, rows []Row) ([]Probabilities, error)

// PredictProba calls f(ctx, rows).
func (f ScorerFunc) PredictProba(ctx context.Context, rows []Row) ([]Probabilities, error) {
	return f(ctx, rows)
}
