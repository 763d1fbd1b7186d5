package features

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newFeatureTable(t *testing.T, rows ...[]string) *Table {
	t.Helper()
	tbl, err := NewTable(RequiredColumns...)
	require.NoError(t, err)
	for _, r := range rows {
		require.NoError(t, tbl.AddRow(r...))
	}
	return tbl
}

func TestRecordParser_Parse(t *testing.T) {
	tbl := newFeatureTable(t,
		[]string{"0.5", "mRNA", "CDS", "10", "8", "0.5", "GGACA"},
		[]string{"0.62", "lncRNA", "3'UTR", "1520", "-35", "0.91", "AGACT"},
	)

	records, err := NewRecordParser().Parse(tbl)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{
		GCContent:                0.5,
		RNAType:                  RNATypeMRNA,
		RNARegion:                RNARegionCDS,
		ExonLength:               10,
		DistanceToJunction:       8,
		EvolutionaryConservation: 0.5,
		DNA5mer:                  "GGACA",
	}, records[0])

	assert.Equal(t, RNATypeLncRNA, records[1].RNAType)
	assert.Equal(t, RNARegionUTR3, records[1].RNARegion)
	assert.Equal(t, -35.0, records[1].DistanceToJunction)
}

func TestRecordParser_MissingColumns(t *testing.T) {
	tbl, err := NewTable(ColGCContent)
	require.NoError(t, err)

	_, err = NewRecordParser().Parse(tbl)
	var missing *MissingColumnsError
	assert.True(t, errors.As(err, &missing))
}

func TestRecordParser_BadNumber(t *testing.T) {
	tests := []struct {
		name   string
		row    []string
		column string
		value  string
	}{
		{
			name:   "not a number",
			row:    []string{"0.5", "mRNA", "CDS", "ten", "8", "0.5", "GGACA"},
			column: ColExonLength,
			value:  "ten",
		},
		{
			name:   "NaN",
			row:    []string{"NaN", "mRNA", "CDS", "10", "8", "0.5", "GGACA"},
			column: ColGCContent,
			value:  "NaN",
		},
		{
			name:   "infinity",
			row:    []string{"0.5", "mRNA", "CDS", "Inf", "8", "0.5", "GGACA"},
			column: ColExonLength,
			value:  "Inf",
		},
		{
			name:   "negative infinity",
			row:    []string{"0.5", "mRNA", "CDS", "10", "-infinity", "0.5", "GGACA"},
			column: ColDistanceToJunction,
			value:  "-infinity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecordParser().Parse(newFeatureTable(t, tt.row))
			var valErr *ValueError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, 1, valErr.Row)
			assert.Equal(t, tt.column, valErr.Column)
			assert.Equal(t, tt.value, valErr.Value)
		})
	}
}

func TestRecordParser_VocabularyStrict(t *testing.T) {
	tests := []struct {
		name   string
		row    []string
		column string
		value  string
	}{
		{
			name:   "unknown RNA type",
			row:    []string{"0.5", "snoRNA", "CDS", "10", "8", "0.5", "GGACA"},
			column: ColRNAType,
			value:  "snoRNA",
		},
		{
			name:   "unknown region",
			row:    []string{"0.5", "mRNA", "exon", "10", "8", "0.5", "GGACA"},
			column: ColRNARegion,
			value:  "exon",
		},
		{
			name:   "case matters",
			row:    []string{"0.5", "mrna", "CDS", "10", "8", "0.5", "GGACA"},
			column: ColRNAType,
			value:  "mrna",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecordParser().Parse(newFeatureTable(t, tt.row))
			var vocabErr *VocabularyError
			require.True(t, errors.As(err, &vocabErr))
			assert.Equal(t, tt.column, vocabErr.Column)
			assert.Equal(t, tt.value, vocabErr.Value)
			assert.Equal(t, 1, vocabErr.Row)
		})
	}
}

func TestRecordParser_VocabularyLenient(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	p := NewRecordParser()
	p.SetLenient(true)
	p.SetLogger(zap.New(core))

	records, err := p.Parse(newFeatureTable(t,
		[]string{"0.5", "snoRNA", "exon", "10", "8", "0.5", "GGACA"},
	))
	require.NoError(t, err)
	assert.Equal(t, RNATypeUnknown, records[0].RNAType)
	assert.Equal(t, RNARegionUnknown, records[0].RNARegion)
	assert.Equal(t, 2, logs.FilterMessage("category outside vocabulary treated as missing").Len())
}

func TestRecordParser_FractionWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	p := NewRecordParser()
	p.SetLogger(zap.New(core))

	_, err := p.Parse(newFeatureTable(t,
		[]string{"1.5", "mRNA", "CDS", "10", "8", "0.5", "GGACA"},
	))
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, ColGCContent, logs.All()[0].ContextMap()["column"])
}

func TestSample_Table(t *testing.T) {
	s := Sample{
		GCContent:                0.5,
		RNAType:                  "mRNA",
		RNARegion:                "CDS",
		ExonLength:               10,
		DistanceToJunction:       8,
		EvolutionaryConservation: 0.5,
		DNA5mer:                  "GGACA",
	}

	tbl := s.Table()
	assert.Equal(t, RequiredColumns, tbl.Columns())
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, []string{"0.5", "mRNA", "CDS", "10", "8", "0.5", "GGACA"}, tbl.Row(0))
}

func TestVocabularyStrings(t *testing.T) {
	for _, rt := range RNATypes {
		got, ok := ParseRNAType(rt.String())
		assert.True(t, ok)
		assert.Equal(t, rt, got)
	}
	for _, r := range RNARegions {
		got, ok := ParseRNARegion(r.String())
		assert.True(t, ok)
		assert.Equal(t, r, got)
	}
	assert.Equal(t, "NA", RNATypeUnknown.String())
	assert.Equal(t, "5'UTR", RNARegionUTR5.String())
}
