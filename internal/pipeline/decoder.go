// Package pipeline decodes the ANN annotations of a VCF stream and hands the
// resulting records to a writer.
package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inodb/vibe-ann/internal/ann"
	"github.com/inodb/vibe-ann/internal/vcf"
)

// RecordWriter defines the interface for writing decoded records.
type RecordWriter interface {
	WriteHeader() error
	Write(v *vcf.Variant, rec ann.Record) error
	Flush() error
}

// Stats summarizes a DecodeAll run.
type Stats struct {
	Variants    int // data lines read
	Unannotated int // variants without an ANN key
	Failed      int // variants whose ANN value could not be decoded
	Records     int // records decoded
	Written     int // records that passed the filter
}

// Decoder decodes ANN values of variants read from a parser.
type Decoder struct {
	filter  *Filter
	workers int
	logger  *zap.Logger
}

// NewDecoder creates a decoder that keeps every record.
func NewDecoder() *Decoder {
	return &Decoder{
		logger: zap.NewNop(),
	}
}

// SetFilter restricts written records to those matching f. Nil keeps all.
func (d *Decoder) SetFilter(f *Filter) {
	d.filter = f
}

// SetWorkers sets the worker pool size. Values <= 0 use runtime.NumCPU().
func (d *Decoder) SetWorkers(n int) {
	d.workers = n
}

// SetLogger sets the logger for warning and info messages.
func (d *Decoder) SetLogger(l *zap.Logger) {
	d.logger = l
}

// Decode decodes the ANN value of a single variant.
// A variant without ANN yields no records and no error.
func (d *Decoder) Decode(v *vcf.Variant) ([]ann.Record, error) {
	raw, ok := v.Annotation()
	if !ok {
		return nil, nil
	}
	return ann.Decode(raw)
}

// DecodeAll decodes all variants from a parser and writes the records that
// pass the filter, in input order. Decode failures are logged and counted
// but do not stop the run; read and write errors do.
func (d *Decoder) DecodeAll(ctx context.Context, parser vcf.VariantParser, writer RecordWriter) (Stats, error) {
	var stats Stats

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := d.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	items := make(chan WorkItem, 2*workers)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(items)
		for seq := 0; ; seq++ {
			v, err := parser.Next()
			if err != nil {
				return fmt.Errorf("read variant: %w", err)
			}
			if v == nil {
				return nil
			}
			select {
			case items <- WorkItem{Seq: seq, Variant: v}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	results := d.ParallelDecode(items, workers)

	collectErr := OrderedCollect(results, func(r WorkResult) error {
		stats.Variants++
		if _, ok := r.Variant.Annotation(); !ok {
			stats.Unannotated++
			return nil
		}
		if r.Err != nil {
			stats.Failed++
			d.logger.Warn("failed to decode ANN",
				zap.String("chrom", r.Variant.Chrom),
				zap.Int64("pos", r.Variant.Pos),
				zap.Error(r.Err))
			return nil
		}
		stats.Records += len(r.Records)
		for _, rec := range r.Records {
			if !d.filter.Match(rec) {
				continue
			}
			if err := writer.Write(r.Variant, rec); err != nil {
				cancel()
				return fmt.Errorf("write record: %w", err)
			}
			stats.Written++
		}
		return nil
	})

	if err := g.Wait(); collectErr == nil && err != nil {
		return stats, err
	}
	if collectErr != nil {
		return stats, collectErr
	}

	if stats.Variants == 0 {
		d.logger.Info("0 variants processed")
	}
	d.logger.Debug("decode finished",
		zap.Int("variants", stats.Variants),
		zap.Int("records", stats.Records),
		zap.Int("written", stats.Written),
		zap.Int("failed", stats.Failed))

	return stats, writer.Flush()
}
