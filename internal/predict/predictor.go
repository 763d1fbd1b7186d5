// Package predict runs m6A feature tables through a Scorer and derives a
// Positive/Negative status from a probability threshold.
package predict

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/inodb/m6a-predict/internal/features"
	"github.com/inodb/m6a-predict/internal/nucleotide"
)

// Result columns added to the input table.
const (
	ColProbability = "predicted_m6A_prob"
	ColStatus      = "predicted_m6A_status"
)

// DefaultThreshold is the probability a site must exceed to be Positive.
const DefaultThreshold = 0.5

// KmerLength is the declared width of the DNA_5mer column.
const KmerLength = 5

var (
	// ErrInvalidThreshold is returned for a threshold outside [0,1] or NaN.
	ErrInvalidThreshold = errors.New("threshold must be within [0, 1]")

	// ErrNoPositiveClass is returned when the scorer omits the Positive class.
	ErrNoPositiveClass = errors.New("scorer returned no probability for class Positive")

	// ErrInvalidProbability is returned when the scorer yields NaN or a
	// value outside [0,1].
	ErrInvalidProbability = errors.New("probability must be within [0, 1]")
)

// Predictor validates, encodes and scores feature tables.
type Predictor struct {
	scorer  Scorer
	encoder *nucleotide.Encoder
	parser  *features.RecordParser
	logger  *zap.Logger
}

// NewPredictor creates a strict predictor around the given scorer.
func NewPredictor(s Scorer) *Predictor {
	enc := nucleotide.NewEncoder()
	enc.SetLength(KmerLength)
	return &Predictor{
		scorer:  s,
		encoder: enc,
		parser:  features.NewRecordParser(),
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and info messages.
func (p *Predictor) SetLogger(l *zap.Logger) {
	p.logger = l
	p.encoder.SetLogger(l)
	p.parser.SetLogger(l)
}

// SetLenient configures whether out-of-vocabulary categories and bases are
// scored as missing (with a warning) instead of failing the call.
func (p *Predictor) SetLenient(lenient bool) {
	p.encoder.SetLenient(lenient)
	p.parser.SetLenient(lenient)
}

// SetKmerLength overrides the declared DNA_5mer width. Zero infers it from
// the first row.
func (p *Predictor) SetKmerLength(n int) {
	p.encoder.SetLength(n)
}

// PredictBatch scores every row of t and returns a copy of t with
// predicted_m6A_prob and predicted_m6A_status set. t is not modified.
func (p *Predictor) PredictBatch(ctx context.Context, t *features.Table, threshold float64) (*features.Table, error) {
	if err := CheckThreshold(threshold); err != nil {
		return nil, err
	}
	if err := t.Require(features.RequiredColumns...); err != nil {
		return nil, err
	}

	records, err := p.parser.Parse(t)
	if err != nil {
		return nil, err
	}
	probCol := make([]string, len(records))
	statusCol := make([]string, len(records))

	if len(records) == 0 {
		p.logger.Info("0 rows to score")
	} else {
		probs, err := p.score(ctx, records)
		if err != nil {
			return nil, err
		}
		for i, pr := range probs {
			v, ok := pr[Positive]
			if !ok {
				return nil, fmt.Errorf("row %d: %w", i+1, ErrNoPositiveClass)
			}
			if math.IsNaN(v) || v < 0 || v > 1 {
				return nil, fmt.Errorf("row %d: scorer returned probability %v: %w", i+1, v, ErrInvalidProbability)
			}
			v = Round(v)
			probCol[i] = FormatProbability(v)
			statusCol[i] = string(Status(v, threshold))
		}
	}

	out := t.Clone()
	if err := out.SetColumn(ColProbability, probCol); err != nil {
		return nil, err
	}
	if err := out.SetColumn(ColStatus, statusCol); err != nil {
		return nil, err
	}

	p.logger.Debug("scored feature table",
		zap.Int("rows", len(records)),
		zap.Float64("threshold", threshold))

	return out, nil
}

// score encodes the DNA_5mer column and calls the scorer once for all records.
func (p *Predictor) score(ctx context.Context, records []features.Record) ([]Probabilities, error) {
	kmers := make([]string, len(records))
	for i := range records {
		kmers[i] = records[i].DNA5mer
	}
	enc, err := p.encoder.Encode(kmers)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", features.ColDNA5mer, err)
	}

	rows := make([]Row, len(records))
	for i := range records {
		rows[i] = Row{Record: records[i], Positions: enc.Row(i)}
	}

	probs, err := p.scorer.PredictProba(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("score features: %w", err)
	}
	if len(probs) != len(rows) {
		return nil, fmt.Errorf("score features: scorer returned %d results for %d rows", len(probs), len(rows))
	}
	return probs, nil
}

// SingleResult is the prediction for one sample.
type SingleResult struct {
	Probability string
	Status      Class
}

// PredictSingle wraps s into a one-row table and runs it through PredictBatch.
func (p *Predictor) PredictSingle(ctx context.Context, s features.Sample, threshold float64) (SingleResult, error) {
	out, err := p.PredictBatch(ctx, s.Table(), threshold)
	if err != nil {
		return SingleResult{}, err
	}
	prob, _ := out.Value(0, ColProbability)
	status, _ := out.Value(0, ColStatus)
	return SingleResult{Probability: prob, Status: Class(status)}, nil
}

// PredictBatch scores t with a strict predictor around s.
func PredictBatch(ctx context.Context, s Scorer, t *features.Table, threshold float64) (*features.Table, error) {
	return NewPredictor(s).PredictBatch(ctx, t, threshold)
}

// PredictSingle scores one sample with a strict predictor around s.
func PredictSingle(ctx context.Context, s Scorer, sample features.Sample, threshold float64) (SingleResult, error) {
	return NewPredictor(s).PredictSingle(ctx, sample, threshold)
}

// Round rounds a probability to 3 decimal places.
func Round(p float64) float64 {
	return math.Round(p*1000) / 1000
}

// FormatProbability renders a probability in its shortest form, e.g. "0.7".
func FormatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// Status returns Positive iff p is strictly greater than threshold.
func Status(p, threshold float64) Class {
	if p > threshold {
		return Positive
	}
	return Negative
}

// CheckThreshold returns ErrInvalidThreshold unless t is within [0,1].
func CheckThreshold(t float64) error {
	if math.IsNaN(t) || t < 0 || t > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, t)
	}
	return nil
}
