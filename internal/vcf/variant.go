package vcf

// AnnKey is the INFO key holding SnpEff functional annotations.
const AnnKey = "ANN"

// Variant represents a single data line from a VCF file.
type Variant struct {
	Chrom  string            // Chromosome name (e.g., "12", "chr12")
	Pos    int64             // 1-based genomic position
	ID     string            // Variant identifier (e.g., rs ID)
	Ref    string            // Reference allele
	Alt    string            // Alternate allele(s), comma-separated as in the file
	Qual   float64           // Quality score, 0 if "."
	Filter string            // Filter status (PASS or filter name)
	Info   map[string]string // INFO key-value pairs; flags map to ""
}

// Annotation returns the raw ANN INFO value, without the "ANN=" key.
// The second result is false when the variant carries no ANN key.
func (v *Variant) Annotation() (string, bool) {
	s, ok := v.Info[AnnKey]
	return s, ok
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (v *Variant) NormalizeChrom() string {
	if len(v.Chrom) > 3 && v.Chrom[:3] == "chr" {
		return v.Chrom[3:]
	}
	return v.Chrom
}
