package features

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Record is one parsed feature row.
type Record struct {
	GCContent                float64
	RNAType                  RNAType
	RNARegion                RNARegion
	ExonLength               float64
	DistanceToJunction       float64
	EvolutionaryConservation float64
	DNA5mer                  string
}

// Sample holds the raw scalar inputs for a single prediction. Categorical
// fields are kept as text so vocabulary checks happen in one place.
type Sample struct {
	GCContent                float64
	RNAType                  string
	RNARegion                string
	ExonLength               float64
	DistanceToJunction       float64
	EvolutionaryConservation float64
	DNA5mer                  string
}

// Table wraps the sample into a one-row table with the required columns.
func (s Sample) Table() *Table {
	t, err := NewTable(RequiredColumns...)
	if err != nil {
		panic(err) // RequiredColumns has no duplicates
	}
	t.rows = append(t.rows, []string{
		formatFloat(s.GCContent),
		s.RNAType,
		s.RNARegion,
		formatFloat(s.ExonLength),
		formatFloat(s.DistanceToJunction),
		formatFloat(s.EvolutionaryConservation),
		s.DNA5mer,
	})
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValueError reports a cell that could not be parsed as a number.
type ValueError struct {
	Row    int // 1-based data row
	Column string
	Value  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("row %d: %s value %q is not a number", e.Row, e.Column, e.Value)
}

// RecordParser converts table rows into Records.
type RecordParser struct {
	lenient bool
	logger  *zap.Logger
}

// NewRecordParser creates a strict parser.
func NewRecordParser() *RecordParser {
	return &RecordParser{logger: zap.NewNop()}
}

// SetLenient configures whether out-of-vocabulary categories are kept as
// Unknown (with a warning) instead of failing.
func (p *RecordParser) SetLenient(lenient bool) {
	p.lenient = lenient
}

// SetLogger sets the logger for warning messages.
func (p *RecordParser) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Parse converts every row of t. The table must already carry the required
// columns; see Table.Require.
func (p *RecordParser) Parse(t *Table) ([]Record, error) {
	if err := t.Require(RequiredColumns...); err != nil {
		return nil, err
	}

	idx := func(name string) int { return t.index[name] }
	var (
		gcIdx     = idx(ColGCContent)
		typeIdx   = idx(ColRNAType)
		regionIdx = idx(ColRNARegion)
		exonIdx   = idx(ColExonLength)
		distIdx   = idx(ColDistanceToJunction)
		consIdx   = idx(ColEvolutionaryConservation)
		kmerIdx   = idx(ColDNA5mer)
	)

	records := make([]Record, len(t.rows))
	for i, row := range t.rows {
		n := i + 1
		r := &records[i]
		var err error

		if r.GCContent, err = parseNumber(n, ColGCContent, row[gcIdx]); err != nil {
			return nil, err
		}
		if r.ExonLength, err = parseNumber(n, ColExonLength, row[exonIdx]); err != nil {
			return nil, err
		}
		if r.DistanceToJunction, err = parseNumber(n, ColDistanceToJunction, row[distIdx]); err != nil {
			return nil, err
		}
		if r.EvolutionaryConservation, err = parseNumber(n, ColEvolutionaryConservation, row[consIdx]); err != nil {
			return nil, err
		}

		p.checkFraction(n, ColGCContent, r.GCContent)
		p.checkFraction(n, ColEvolutionaryConservation, r.EvolutionaryConservation)

		rnaType, ok := ParseRNAType(row[typeIdx])
		if !ok {
			if err := p.outOfVocabulary(n, ColRNAType, row[typeIdx]); err != nil {
				return nil, err
			}
		}
		r.RNAType = rnaType

		region, ok := ParseRNARegion(row[regionIdx])
		if !ok {
			if err := p.outOfVocabulary(n, ColRNARegion, row[regionIdx]); err != nil {
				return nil, err
			}
		}
		r.RNARegion = region

		r.DNA5mer = row[kmerIdx]
	}

	return records, nil
}

func (p *RecordParser) outOfVocabulary(row int, column, value string) error {
	if !p.lenient {
		return &VocabularyError{Row: row, Column: column, Value: value}
	}
	p.logger.Warn("category outside vocabulary treated as missing",
		zap.Int("row", row),
		zap.String("column", column),
		zap.String("value", value))
	return nil
}

func (p *RecordParser) checkFraction(row int, column string, v float64) {
	if v < 0 || v > 1 {
		p.logger.Warn("value outside expected range [0,1]",
			zap.Int("row", row),
			zap.String("column", column),
			zap.Float64("value", v))
	}
}

func parseNumber(row int, column, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValueError{Row: row, Column: column, Value: s}
	}
	return v, nil
}
