// Package output provides prediction output formatters.
package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/inodb/m6a-predict/internal/features"
	"github.com/inodb/m6a-predict/internal/nucleotide"
	"github.com/inodb/m6a-predict/internal/predict"
)

// TabWriter writes tables in tab-delimited format.
type TabWriter struct {
	w *bufio.Writer
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{w: bufio.NewWriter(w)}
}

// WriteTable writes the header and every row of t.
func (tw *TabWriter) WriteTable(t *features.Table) error {
	if err := tw.writeLine(t.Columns()); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		if err := tw.writeLine(t.Row(i)); err != nil {
			return err
		}
	}
	return nil
}

// WriteEncoding writes an encoded sequence grid with the input sequence as
// the first column.
func (tw *TabWriter) WriteEncoding(seqs []string, enc *nucleotide.Encoding) error {
	if err := tw.writeLine(append([]string{"sequence"}, enc.Columns()...)); err != nil {
		return err
	}
	values := make([]string, enc.Width()+1)
	for i := 0; i < enc.Len(); i++ {
		values[0] = seqs[i]
		for j, b := range enc.Row(i) {
			values[j+1] = b.String()
		}
		if err := tw.writeLine(values); err != nil {
			return err
		}
	}
	return nil
}

// WriteSingle writes a single prediction as a header line and a value line.
func (tw *TabWriter) WriteSingle(r predict.SingleResult) error {
	if err := tw.writeLine([]string{predict.ColProbability, predict.ColStatus}); err != nil {
		return err
	}
	return tw.writeLine([]string{r.Probability, string(r.Status)})
}

func (tw *TabWriter) writeLine(values []string) error {
	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
