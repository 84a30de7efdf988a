package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-ann/internal/duckdb"
)

const testVCF = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
12	25245351	.	C	A	.	PASS	ANN=A|missense_variant|MODERATE|KRAS|ENSG00000133703|transcript|ENST00000311936|protein_coding|2/5|c.34G>T|p.Gly12Cys|224/5430|34/570|12/189||
17	7675088	.	C	T	.	PASS	ANN=T|stop_gained&splice_region_variant|HIGH|TP53|ENSG00000141510, T|intron_variant|MODIFIER|TP53|ENSG00000141510
1	100	.	A	G	.	PASS	DP=4
`

// execute runs the root command with isolated config state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeVCF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.vcf")
	require.NoError(t, os.WriteFile(path, []byte(testVCF), 0o644))
	return path
}

func dataLines(out string) []string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return lines[1:]
}

func TestDecode_Tab(t *testing.T) {
	out, err := execute(t, "decode", "--workers", "2", writeVCF(t))
	require.NoError(t, err)

	lines := dataLines(out)
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "12\t25245351\tC\tA\tA\tmissense_variant\tMODERATE\tKRAS"))
	assert.Contains(t, lines[1], "\tstop_gained\tHIGH\tTP53")
	assert.Contains(t, lines[2], "\tsplice_region_variant\tHIGH\tTP53")
	assert.Contains(t, lines[3], "\tintron_variant\tMODIFIER\tTP53")
}

func TestDecode_MinImpactAndGene(t *testing.T) {
	out, err := execute(t, "decode", "--min-impact", "HIGH", writeVCF(t))
	require.NoError(t, err)
	assert.Len(t, dataLines(out), 2)

	out, err = execute(t, "decode", "--gene", "KRAS", writeVCF(t))
	require.NoError(t, err)
	assert.Len(t, dataLines(out), 1)
}

func TestDecode_JSONLToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.jsonl")
	_, err := execute(t, "decode", "-f", "jsonl", "-o", dest, writeVCF(t))
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"chrom":"12"`)
}

func TestDecode_DuckDB(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ann.duckdb")
	_, err := execute(t, "decode", "-f", "duckdb", "--db", db, writeVCF(t))
	require.NoError(t, err)

	s, err := duckdb.Open(db)
	require.NoError(t, err)
	defer s.Close()

	rows, err := s.SearchByGene("TP53")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestDecode_UsageErrors(t *testing.T) {
	_, err := execute(t, "decode")
	var ue usageError
	assert.ErrorAs(t, err, &ue)

	_, err = execute(t, "decode", "-f", "xml", writeVCF(t))
	assert.ErrorAs(t, err, &ue)

	_, err = execute(t, "decode", "-f", "duckdb", writeVCF(t))
	assert.ErrorAs(t, err, &ue)

	_, err = execute(t, "decode", "--min-impact", "SEVERE", writeVCF(t))
	assert.ErrorAs(t, err, &ue)
}

func TestDecode_MissingInput(t *testing.T) {
	_, err := execute(t, "decode", filepath.Join(t.TempDir(), "missing.vcf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check that the file path is correct")
}

func TestParse(t *testing.T) {
	out, err := execute(t, "parse", "ANN=A|intron_variant&nc_transcript_variant|MEDIUM|||transcript")
	require.NoError(t, err)

	lines := dataLines(out)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "\tintron_variant\tMEDIUM\t\t\ttranscript\t-")
	assert.Contains(t, lines[1], "\tnc_transcript_variant\t")
}

func TestParse_Malformed(t *testing.T) {
	_, err := execute(t, "parse", strings.Repeat("x|", 17))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argument 1")
}

func TestSummary(t *testing.T) {
	out, err := execute(t, "summary", writeVCF(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Records  4")
	assert.Contains(t, out, "stop_gained")
}

func TestConfigSetGet(t *testing.T) {
	home := t.TempDir()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", home)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "set", "filter.min_impact", "HIGH"})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, filepath.Join(home, ".vibe-ann.yaml"))

	viper.Reset()
	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "get", "filter.min_impact"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "HIGH\n", out.String())
}

func TestRun_ExitCodes(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	assert.Equal(t, ExitUsage, run([]string{"decode"}))
	assert.Equal(t, ExitError, run([]string{"decode", filepath.Join(t.TempDir(), "nope.vcf")}))
}
