package features

import "fmt"

// RNAType is the transcript class a candidate site lies on.
type RNAType uint8

const (
	RNATypeUnknown RNAType = iota
	RNATypeMRNA
	RNATypeLincRNA
	RNATypeLncRNA
	RNATypePseudogene
)

// RNATypes lists the accepted RNA_type levels in level order.
var RNATypes = []RNAType{RNATypeMRNA, RNATypeLincRNA, RNATypeLncRNA, RNATypePseudogene}

var rnaTypeNames = [...]string{"NA", "mRNA", "lincRNA", "lncRNA", "pseudogene"}

// ParseRNAType maps a label to its RNAType. Matching is exact.
func ParseRNAType(s string) (RNAType, bool) {
	switch s {
	case "mRNA":
		return RNATypeMRNA, true
	case "lincRNA":
		return RNATypeLincRNA, true
	case "lncRNA":
		return RNATypeLncRNA, true
	case "pseudogene":
		return RNATypePseudogene, true
	}
	return RNATypeUnknown, false
}

func (t RNAType) String() string {
	if int(t) >= len(rnaTypeNames) {
		return "NA"
	}
	return rnaTypeNames[t]
}

// RNARegion is the transcript region a candidate site lies in.
type RNARegion uint8

const (
	RNARegionUnknown RNARegion = iota
	RNARegionCDS
	RNARegionIntron
	RNARegionUTR3
	RNARegionUTR5
)

// RNARegions lists the accepted RNA_region levels in level order.
var RNARegions = []RNARegion{RNARegionCDS, RNARegionIntron, RNARegionUTR3, RNARegionUTR5}

var rnaRegionNames = [...]string{"NA", "CDS", "intron", "3'UTR", "5'UTR"}

// ParseRNARegion maps a label to its RNARegion. Matching is exact.
func ParseRNARegion(s string) (RNARegion, bool) {
	switch s {
	case "CDS":
		return RNARegionCDS, true
	case "intron":
		return RNARegionIntron, true
	case "3'UTR":
		return RNARegionUTR3, true
	case "5'UTR":
		return RNARegionUTR5, true
	}
	return RNARegionUnknown, false
}

func (r RNARegion) String() string {
	if int(r) >= len(rnaRegionNames) {
		return "NA"
	}
	return rnaRegionNames[r]
}

// VocabularyError reports a categorical value outside its fixed vocabulary.
type VocabularyError struct {
	Row    int // 1-based data row
	Column string
	Value  string
}

func (e *VocabularyError) Error() string {
	var levels []string
	switch e.Column {
	case ColRNAType:
		for _, t := range RNATypes {
			levels = append(levels, t.String())
		}
	case ColRNARegion:
		for _, r := range RNARegions {
			levels = append(levels, r.String())
		}
	}
	return fmt.Sprintf("row %d: %s value %q is not one of %v", e.Row, e.Column, e.Value, levels)
}
