package pipeline

import (
	"fmt"

	"github.com/inodb/vibe-ann/internal/ann"
)

// Filter selects records by impact, gene and effect term.
// Empty criteria match everything; a nil *Filter matches every record.
type Filter struct {
	minRank int
	genes   map[string]struct{}
	effects map[string]struct{}
}

// NewFilter builds a filter. minImpact may be "" for no impact threshold.
func NewFilter(minImpact string, genes, effects []string) (*Filter, error) {
	f := &Filter{}
	if minImpact != "" {
		if !ann.ValidImpact(minImpact) {
			return nil, fmt.Errorf("invalid impact %q: want HIGH, MODERATE, LOW or MODIFIER", minImpact)
		}
		f.minRank = ann.ImpactRank(minImpact)
	}
	f.genes = toSet(genes)
	f.effects = toSet(effects)
	return f, nil
}

// Match reports whether rec passes the filter.
// Genes match either gene_name or gene_id.
func (f *Filter) Match(rec ann.Record) bool {
	if f == nil {
		return true
	}
	if f.minRank > 0 && ann.ImpactRank(rec.Value(ann.Impact)) < f.minRank {
		return false
	}
	if len(f.genes) > 0 {
		_, byName := f.genes[rec.Value(ann.GeneName)]
		_, byID := f.genes[rec.Value(ann.GeneID)]
		if !byName && !byID {
			return false
		}
	}
	if len(f.effects) > 0 {
		if _, ok := f.effects[rec.Value(ann.Effect)]; !ok {
			return false
		}
	}
	return true
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
