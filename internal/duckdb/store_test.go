package duckdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-ann/internal/ann"
	"github.com/inodb/vibe-ann/internal/vcf"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func decodeRows(t *testing.T, chrom string, pos int64, raw string) []Row {
	t.Helper()
	recs, err := ann.Decode(raw)
	require.NoError(t, err)
	rows := make([]Row, len(recs))
	for i, rec := range recs {
		rows[i] = Row{Chrom: chrom, Pos: pos, Ref: "C", Alt: "A", Record: rec}
	}
	return rows
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
	assert.Equal(t, "", s.Path())
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "ann.duckdb")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteRecords(decodeRows(t, "1", 10, "A|missense_variant|MODERATE|KRAS")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestWriteAndSearchByVariant(t *testing.T) {
	s := openInMemory(t)

	rows := decodeRows(t, "12", 25245351,
		"A|missense_variant|MODERATE|KRAS|ENSG00000133703|transcript|ENST00000311936|protein_coding|2/5|c.34G>T|p.Gly12Cys|224/5430|34/570|12/189||")
	require.NoError(t, s.WriteRecords(rows))

	got, err := s.SearchByVariant("12", 25245351, "C", "A")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rows[0].Record, got[0].Record)
	assert.Equal(t, "34/570", got[0].Record.Value(ann.CDSPosition))

	got, err = s.SearchByVariant("12", 1, "C", "A")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAbsentFieldsRoundTripAsAbsent(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteRecords(decodeRows(t, "1", 100, "T|intron_variant||")))

	got, err := s.SearchByVariant("1", 100, "C", "A")
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0].Record
	assert.Len(t, rec, 4)
	v, ok := rec.Get(ann.Impact)
	assert.True(t, ok)
	assert.Equal(t, "", v)
	_, ok = rec.Get(ann.GeneID)
	assert.False(t, ok)
}

func TestSearchByGene(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteRecords(decodeRows(t, "12", 1, "A|missense_variant|MODERATE|KRAS|ENSG1")))
	require.NoError(t, s.WriteRecords(decodeRows(t, "17", 2, "A|stop_gained&splice_region_variant|HIGH|TP53|ENSG2")))
	require.NoError(t, s.WriteRecords(decodeRows(t, "17", 3, "A|intron_variant|MODIFIER||ENSG2")))

	got, err := s.SearchByGene("TP53")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.SearchByGene("ENSG2")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = s.SearchByGene("BRAF")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEffectCounts(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteRecords(decodeRows(t, "1", 1,
		"A|missense_variant|MODERATE|G1,A|missense_variant|MODERATE|G2,A|intron_variant&missense_variant|MODERATE|G3")))

	counts, err := s.EffectCounts()
	require.NoError(t, err)
	assert.Equal(t, []EffectCount{
		{Effect: "missense_variant", Impact: "MODERATE", Count: 3},
		{Effect: "intron_variant", Impact: "MODERATE", Count: 1},
	}, counts)
}

func TestClear(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteRecords(decodeRows(t, "1", 1, "A|x|LOW")))
	require.NoError(t, s.Clear())

	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWriteRecords_Empty(t *testing.T) {
	s := openInMemory(t)
	assert.NoError(t, s.WriteRecords(nil))
}

func TestWriter_Batches(t *testing.T) {
	s := openInMemory(t)
	w := NewWriter(s)
	w.batchSize = 3
	require.NoError(t, w.WriteHeader())

	v := &vcf.Variant{Chrom: "1", Pos: 5, Ref: "C", Alt: "A"}
	for range 7 {
		require.NoError(t, w.Write(v, ann.Record{ann.Allele: "A", ann.Effect: "x"}))
	}

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(6), n, "two full batches appended before Flush")

	require.NoError(t, w.Flush())
	n, err = s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
