package features

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ParseError represents an error while reading a feature table, with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("feature table parse error at line %d: %s", e.Line, e.Message)
}

// Delimiter guesses the field separator from a file name: ',' for .csv
// (optionally gzipped), tab otherwise.
func Delimiter(path string) rune {
	lower := strings.ToLower(path)
	lower = strings.TrimSuffix(lower, ".gz")
	if filepath.Ext(lower) == ".csv" {
		return ','
	}
	return '\t'
}

// Open reads a delimited feature table from path, choosing the delimiter
// with Delimiter. Gzipped input is detected from the magic bytes. Use "-"
// for stdin (tab-delimited).
func Open(path string) (*Table, error) {
	return OpenDelimited(path, Delimiter(path))
}

// OpenDelimited is Open with an explicit delimiter.
func OpenDelimited(path string, delim rune) (*Table, error) {
	if path == "-" {
		return Read(os.Stdin, delim)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feature table: %w", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	magic, err := br.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read feature table header: %w", err)
	}

	var r io.Reader = br
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	return Read(r, delim)
}

// Read parses a delimited table. Lines starting with '#' and blank lines are
// skipped; the first remaining line is the header.
func Read(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	var t *Table
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{Line: pe.Line, Message: pe.Err.Error()}
			}
			return nil, fmt.Errorf("read feature table: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if t == nil {
			header := make([]string, len(rec))
			for i, c := range rec {
				header[i] = strings.TrimSpace(c)
			}
			t, err = NewTable(header...)
			if err != nil {
				return nil, &ParseError{Line: line, Message: err.Error()}
			}
			continue
		}

		if len(rec) != len(t.columns) {
			return nil, &ParseError{
				Line:    line,
				Message: fmt.Sprintf("expected %d columns, found %d", len(t.columns), len(rec)),
			}
		}
		if err := t.AddRow(rec...); err != nil {
			return nil, &ParseError{Line: line, Message: err.Error()}
		}
	}

	if t == nil {
		return nil, &ParseError{Line: 0, Message: "no header line found"}
	}
	return t, nil
}
