// Package ann decodes the SnpEff "ANN" INFO field (VCF annotation format v1.0)
// into structured annotation records.
package ann

// Field names a positional sub-field of an ANN entry.
type Field string

// ANN v1.0 sub-fields in their positional order.
const (
	Allele             Field = "allele"
	Effect             Field = "effect" // aka annotation
	Impact             Field = "impact" // aka putative_impact
	GeneName           Field = "gene_name"
	GeneID             Field = "gene_id"
	FeatureType        Field = "feature_type"
	FeatureID          Field = "feature_id"
	TranscriptBiotype  Field = "transcript_biotype"
	RankTotal          Field = "rank_total"
	HGVSc              Field = "hgvs_c"
	HGVSp              Field = "hgvs_p"
	CDNAPosition       Field = "cdna_position"
	CDSPosition        Field = "cds_position"
	ProteinPosition    Field = "protein_position"
	DistanceToFeature  Field = "distance_to_feature"
	ErrorsWarningsInfo Field = "errors_warnings_info"
)

// schema is the fixed field order. The order could be read from the
// ##INFO=<ID=ANN> header, but deployed annotators all emit this one.
var schema = [...]Field{
	Allele,
	Effect,
	Impact,
	GeneName,
	GeneID,
	FeatureType,
	FeatureID,
	TranscriptBiotype,
	RankTotal,
	HGVSc,
	HGVSp,
	CDNAPosition,
	CDSPosition,
	ProteinPosition,
	DistanceToFeature,
	ErrorsWarningsInfo,
}

// NumFields is the number of positional fields in an ANN entry.
const NumFields = len(schema)

// Fields returns the field schema in positional order.
// The returned slice is a copy.
func Fields() []Field {
	out := make([]Field, NumFields)
	copy(out, schema[:])
	return out
}

// Index returns the position of f in the schema, or -1 if f is not a field.
func Index(f Field) int {
	for i, s := range schema {
		if s == f {
			return i
		}
	}
	return -1
}
