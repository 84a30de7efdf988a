package duckdb

import (
	"github.com/inodb/vibe-ann/internal/ann"
	"github.com/inodb/vibe-ann/internal/vcf"
)

// DefaultBatchSize is the number of records buffered before an append.
const DefaultBatchSize = 10000

// Writer buffers decoded records and appends them to a Store in batches.
type Writer struct {
	store     *Store
	batch     []Row
	batchSize int
}

// NewWriter creates a writer appending to s.
func NewWriter(s *Store) *Writer {
	return &Writer{store: s, batchSize: DefaultBatchSize}
}

// WriteHeader is a no-op; the table is created by Open.
func (w *Writer) WriteHeader() error {
	return nil
}

// Write buffers a record, appending the batch when it is full.
func (w *Writer) Write(v *vcf.Variant, rec ann.Record) error {
	w.batch = append(w.batch, Row{Chrom: v.Chrom, Pos: v.Pos, Ref: v.Ref, Alt: v.Alt, Record: rec})
	if len(w.batch) >= w.batchSize {
		return w.Flush()
	}
	return nil
}

// Flush appends buffered records.
func (w *Writer) Flush() error {
	if err := w.store.WriteRecords(w.batch); err != nil {
		return err
	}
	w.batch = w.batch[:0]
	return nil
}
