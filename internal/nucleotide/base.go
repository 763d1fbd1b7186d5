// Package nucleotide encodes fixed-length DNA sequences into positional
// categorical features.
package nucleotide

// Base is one position of an encoded sequence. The zero value is BaseMissing.
type Base uint8

const (
	BaseMissing Base = iota
	BaseA
	BaseT
	BaseC
	BaseG
)

// Alphabet lists the bases a position may take, in level order.
var Alphabet = [4]Base{BaseA, BaseT, BaseC, BaseG}

var baseNames = [5]string{"NA", "A", "T", "C", "G"}

// ParseBase maps a sequence byte to its Base. Only upper-case A, T, C and G
// are accepted; everything else (including U) reports false.
func ParseBase(b byte) (Base, bool) {
	switch b {
	case 'A':
		return BaseA, true
	case 'T':
		return BaseT, true
	case 'C':
		return BaseC, true
	case 'G':
		return BaseG, true
	}
	return BaseMissing, false
}

// String returns the single-letter symbol, or "NA" for BaseMissing.
func (b Base) String() string {
	if int(b) >= len(baseNames) {
		return "NA"
	}
	return baseNames[b]
}

// Valid reports whether b is one of the four alphabet bases.
func (b Base) Valid() bool {
	return b >= BaseA && b <= BaseG
}
