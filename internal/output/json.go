package output

import (
	"bufio"
	"io"

	json "github.com/goccy/go-json"

	"github.com/inodb/vibe-ann/internal/ann"
	"github.com/inodb/vibe-ann/internal/vcf"
)

// jsonRow is the JSON-lines shape of one record.
// Only fields present in the record appear under "ann".
type jsonRow struct {
	Chrom string     `json:"chrom"`
	Pos   int64      `json:"pos"`
	Ref   string     `json:"ref"`
	Alt   string     `json:"alt"`
	Ann   ann.Record `json:"ann"`
}

// JSONWriter writes one JSON object per record.
type JSONWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONWriter creates a new JSON-lines writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	bw := bufio.NewWriter(w)
	return &JSONWriter{w: bw, enc: json.NewEncoder(bw)}
}

// WriteHeader is a no-op; JSON lines have no header.
func (jw *JSONWriter) WriteHeader() error {
	return nil
}

// Write writes a single record as a JSON line.
func (jw *JSONWriter) Write(v *vcf.Variant, rec ann.Record) error {
	return jw.enc.Encode(jsonRow{
		Chrom: v.Chrom,
		Pos:   v.Pos,
		Ref:   v.Ref,
		Alt:   v.Alt,
		Ann:   rec,
	})
}

// Flush flushes any buffered data to the underlying writer.
func (jw *JSONWriter) Flush() error {
	return jw.w.Flush()
}
