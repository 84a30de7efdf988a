// Package output provides writers for decoded ANN records.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-ann/internal/ann"
	"github.com/inodb/vibe-ann/internal/vcf"
)

// Missing is written for fields absent from a record.
const Missing = "-"

// TabWriter writes records in tab-delimited format, one record per line.
type TabWriter struct {
	w       *bufio.Writer
	fields  []ann.Field
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	fields := ann.Fields()
	columns := []string{"#CHROM", "POS", "REF", "ALT"}
	for _, f := range fields {
		columns = append(columns, string(f))
	}
	return &TabWriter{
		w:       bufio.NewWriter(w),
		fields:  fields,
		columns: columns,
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single record. Absent fields are written as "-";
// fields present with an empty value are written as an empty cell.
func (tw *TabWriter) Write(v *vcf.Variant, rec ann.Record) error {
	values := make([]string, 0, len(tw.columns))
	values = append(values, v.Chrom, strconv.FormatInt(v.Pos, 10), v.Ref, v.Alt)
	for _, f := range tw.fields {
		val, ok := rec.Get(f)
		if !ok {
			val = Missing
		}
		values = append(values, val)
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
