package nucleotide

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// ColumnPrefix is the name prefix of the positional feature columns.
const ColumnPrefix = "nt_pos"

// ErrNoSequences is returned when Encode is called without any sequences.
var ErrNoSequences = errors.New("no sequences to encode")

// ShapeError reports a sequence whose length differs from the expected width.
type ShapeError struct {
	Index int // 0-based index of the offending sequence
	Want  int
	Got   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("sequence %d has length %d, expected %d", e.Index+1, e.Got, e.Want)
}

// SymbolError reports a byte outside the A/T/C/G alphabet.
type SymbolError struct {
	Index    int // 0-based index of the offending sequence
	Position int // 1-based position within the sequence
	Symbol   byte
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("sequence %d position %d: symbol %q is not one of A, T, C, G",
		e.Index+1, e.Position, e.Symbol)
}

// ColumnName returns the feature column name for a 1-based position.
func ColumnName(pos int) string {
	return ColumnPrefix + strconv.Itoa(pos)
}

// Encoding is a rows-by-width grid of bases with named columns.
type Encoding struct {
	columns []string
	rows    [][]Base
}

// Columns returns the column names nt_pos1..nt_posN.
func (e *Encoding) Columns() []string {
	return e.columns
}

// Len returns the number of encoded sequences.
func (e *Encoding) Len() int {
	return len(e.rows)
}

// Width returns the number of positional columns.
func (e *Encoding) Width() int {
	return len(e.columns)
}

// Row returns the bases of sequence i.
func (e *Encoding) Row(i int) []Base {
	return e.rows[i]
}

// Column returns position j (0-based) across all sequences.
func (e *Encoding) Column(j int) []Base {
	col := make([]Base, len(e.rows))
	for i, r := range e.rows {
		col[i] = r[j]
	}
	return col
}

// Strings returns column j rendered as symbols, with "NA" for missing bases.
func (e *Encoding) Strings(j int) []string {
	col := make([]string, len(e.rows))
	for i, r := range e.rows {
		col[i] = r[j].String()
	}
	return col
}

// Encoder turns sequences into an Encoding.
type Encoder struct {
	length  int
	lenient bool
	logger  *zap.Logger
}

// NewEncoder creates a strict encoder that infers the width from the first sequence.
func NewEncoder() *Encoder {
	return &Encoder{logger: zap.NewNop()}
}

// SetLength declares the expected sequence length. Zero infers it from the
// first sequence.
func (e *Encoder) SetLength(n int) {
	e.length = n
}

// Length returns the declared sequence length, or 0 if inferred.
func (e *Encoder) Length() int {
	return e.length
}

// SetLenient configures whether out-of-alphabet symbols are encoded as
// BaseMissing (with a warning) instead of failing.
func (e *Encoder) SetLenient(lenient bool) {
	e.lenient = lenient
}

// SetLogger sets the logger for warning messages.
func (e *Encoder) SetLogger(l *zap.Logger) {
	e.logger = l
}

// Encode splits every sequence into its positions.
func (e *Encoder) Encode(seqs []string) (*Encoding, error) {
	if len(seqs) == 0 {
		return nil, ErrNoSequences
	}

	width := e.length
	if width <= 0 {
		width = len(seqs[0])
	}
	if width == 0 {
		return nil, &ShapeError{Index: 0, Want: 1, Got: 0}
	}

	columns := make([]string, width)
	for j := range columns {
		columns[j] = ColumnName(j + 1)
	}

	// One backing array for all rows.
	cells := make([]Base, len(seqs)*width)
	rows := make([][]Base, len(seqs))

	for i, s := range seqs {
		if len(s) != width {
			return nil, &ShapeError{Index: i, Want: width, Got: len(s)}
		}
		row := cells[i*width : (i+1)*width : (i+1)*width]
		for j := 0; j < width; j++ {
			b, ok := ParseBase(s[j])
			if !ok {
				if !e.lenient {
					return nil, &SymbolError{Index: i, Position: j + 1, Symbol: s[j]}
				}
				e.logger.Warn("symbol outside A/T/C/G encoded as missing",
					zap.Int("sequence", i+1),
					zap.Int("position", j+1),
					zap.String("symbol", string(s[j])))
			}
			row[j] = b
		}
		rows[i] = row
	}

	return &Encoding{columns: columns, rows: rows}, nil
}

// Encode encodes sequences with a strict encoder whose width is taken from
// the first sequence.
func Encode(seqs []string) (*Encoding, error) {
	return NewEncoder().Encode(seqs)
}
