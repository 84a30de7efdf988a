package ann

import (
	"errors"
	"strings"
)

// HeaderPrefix starts the INFO header line that describes the ANN field.
const HeaderPrefix = "##INFO=<ID=ANN,"

var errNoFieldList = errors.New("ANN header has no field list")

// ParseHeaderFields extracts the declared sub-field names from an ANN header
// line such as
//
//	##INFO=<ID=ANN,Number=.,Type=String,Description="Functional annotations: 'Allele | Annotation | ...' ">
//
// Names are returned as written, trimmed of spaces.
func ParseHeaderFields(line string) ([]string, error) {
	if !strings.HasPrefix(line, HeaderPrefix) {
		return nil, errors.New("not an ANN header line")
	}
	start := strings.IndexByte(line, '\'')
	if start < 0 {
		return nil, errNoFieldList
	}
	end := strings.IndexByte(line[start+1:], '\'')
	if end < 0 {
		return nil, errNoFieldList
	}

	parts := strings.Split(line[start+1:start+1+end], "|")
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = strings.TrimSpace(p)
	}
	return names, nil
}

// headerAliases maps SnpEff header names to schema fields.
var headerAliases = map[string]Field{
	"allele":               Allele,
	"annotation":           Effect,
	"annotation_impact":    Impact,
	"putative_impact":      Impact,
	"gene_name":            GeneName,
	"gene_id":              GeneID,
	"feature_type":         FeatureType,
	"feature_id":           FeatureID,
	"transcript_biotype":   TranscriptBiotype,
	"rank":                 RankTotal,
	"rank/total":           RankTotal,
	"hgvs.c":               HGVSc,
	"hgvs.p":               HGVSp,
	"cdna.pos/cdna.length": CDNAPosition,
	"cds.pos/cds.length":   CDSPosition,
	"aa.pos/aa.length":     ProteinPosition,
	"distance":             DistanceToFeature,
	"errors/warnings/info": ErrorsWarningsInfo,
	"errors_warnings_info": ErrorsWarningsInfo,
}

// MatchesSchema reports whether header names declare the fixed field order.
// Names are compared case-insensitively against schema names and the
// spellings SnpEff writes.
func MatchesSchema(names []string) bool {
	if len(names) != NumFields {
		return false
	}
	for i, n := range names {
		n = strings.ToLower(strings.ReplaceAll(n, " ", ""))
		f, ok := headerAliases[n]
		if !ok {
			f = Field(n)
		}
		if f != schema[i] {
			return false
		}
	}
	return true
}
