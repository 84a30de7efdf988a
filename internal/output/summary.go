package output

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/inodb/vibe-ann/internal/ann"
	"github.com/inodb/vibe-ann/internal/vcf"
)

// Count is a term and how many records carried it.
type Count struct {
	Term  string
	Count int
}

// SummaryWriter tallies records by effect and impact and prints the
// tallies on Flush instead of writing records.
type SummaryWriter struct {
	w       io.Writer
	effects map[string]int
	impacts map[string]int
	genes   map[string]struct{}
	total   int
}

// NewSummaryWriter creates a new summary writer.
func NewSummaryWriter(w io.Writer) *SummaryWriter {
	return &SummaryWriter{
		w:       w,
		effects: make(map[string]int),
		impacts: make(map[string]int),
		genes:   make(map[string]struct{}),
	}
}

// WriteHeader is a no-op; the summary is rendered on Flush.
func (sw *SummaryWriter) WriteHeader() error {
	return nil
}

// Write counts a record.
func (sw *SummaryWriter) Write(_ *vcf.Variant, rec ann.Record) error {
	sw.total++
	sw.effects[rec.Value(ann.Effect)]++
	sw.impacts[rec.Value(ann.Impact)]++
	if g := rec.Gene(); g != "" {
		sw.genes[g] = struct{}{}
	}
	return nil
}

// Effects returns effect counts, most frequent first.
func (sw *SummaryWriter) Effects() []Count {
	return sortCounts(sw.effects)
}

// Impacts returns impact counts, most severe first.
func (sw *SummaryWriter) Impacts() []Count {
	counts := sortCounts(sw.impacts)
	slices.SortStableFunc(counts, func(a, b Count) int {
		return cmp.Compare(ann.ImpactRank(b.Term), ann.ImpactRank(a.Term))
	})
	return counts
}

// Flush writes the summary tables.
func (sw *SummaryWriter) Flush() error {
	tw := tabwriter.NewWriter(sw.w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Records\t%d\n", sw.total)
	fmt.Fprintf(tw, "Genes\t%d\n", len(sw.genes))

	fmt.Fprintln(tw, "\nImpact\tCount")
	for _, c := range sw.Impacts() {
		fmt.Fprintf(tw, "%s\t%d\n", display(c.Term), c.Count)
	}

	fmt.Fprintln(tw, "\nEffect\tCount")
	for _, c := range sw.Effects() {
		fmt.Fprintf(tw, "%s\t%d\n", display(c.Term), c.Count)
	}

	return tw.Flush()
}

func display(term string) string {
	if term == "" {
		return Missing
	}
	return term
}

// sortCounts orders by count descending, then term ascending.
func sortCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for term, n := range m {
		out = append(out, Count{Term: term, Count: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})
	return out
}
