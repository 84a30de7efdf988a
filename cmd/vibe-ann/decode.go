package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-ann/internal/ann"
	"github.com/inodb/vibe-ann/internal/duckdb"
	"github.com/inodb/vibe-ann/internal/output"
	"github.com/inodb/vibe-ann/internal/pipeline"
	"github.com/inodb/vibe-ann/internal/vcf"
)

func newDecodeCmd() *cobra.Command {
	var (
		outputFile string
		genes      []string
		effects    []string
	)

	cmd := &cobra.Command{
		Use:   "decode [options] <input-file>",
		Short: "Decode ANN annotations of a VCF file",
		Long: `Decode the ANN INFO field of every variant in a VCF file (plain or gzipped)
and write one row per annotation and effect term.`,
		Example: `  vibe-ann decode input.vcf
  vibe-ann decode -f jsonl --min-impact MODERATE input.vcf.gz
  vibe-ann decode -f duckdb --db ann.duckdb input.vcf
  cat input.vcf | vibe-ann decode --gene KRAS -`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args[0], outputFile, genes, effects)
		},
	}

	cmd.Flags().StringP("output-format", "f", "tab", "Output format: tab, jsonl, duckdb")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().String("min-impact", "", "Only keep records with at least this impact: HIGH, MODERATE, LOW, MODIFIER")
	cmd.Flags().StringSliceVar(&genes, "gene", nil, "Only keep records for these genes (name or ID, repeatable)")
	cmd.Flags().StringSliceVar(&effects, "effect", nil, "Only keep records with these effect terms (repeatable)")
	cmd.Flags().Int("workers", 0, "Decode workers (default: number of CPUs)")
	cmd.Flags().String("db", "", "DuckDB file for -f duckdb")

	viper.BindPFlag(keyFormat, cmd.Flags().Lookup("output-format"))
	viper.BindPFlag(keyMinImpact, cmd.Flags().Lookup("min-impact"))
	viper.BindPFlag(keyWorkers, cmd.Flags().Lookup("workers"))
	viper.BindPFlag(keyDBPath, cmd.Flags().Lookup("db"))

	return cmd
}

func runDecode(cmd *cobra.Command, inputPath, outputFile string, genes, effects []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	filter, err := pipeline.NewFilter(viper.GetString(keyMinImpact), genes, effects)
	if err != nil {
		return usageError{err}
	}

	parser, err := openInput(inputPath, logger)
	if err != nil {
		return err
	}
	defer parser.Close()

	out := cmd.OutOrStdout()
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	writer, closeWriter, err := newWriter(viper.GetString(keyFormat), out)
	if err != nil {
		return err
	}
	defer closeWriter()

	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	d := pipeline.NewDecoder()
	d.SetLogger(logger)
	d.SetFilter(filter)
	d.SetWorkers(viper.GetInt(keyWorkers))

	stats, err := d.DecodeAll(cmd.Context(), parser, writer)
	if err != nil {
		return err
	}

	logger.Info("decoded annotations",
		zap.Int("variants", stats.Variants),
		zap.Int("records", stats.Records),
		zap.Int("written", stats.Written),
		zap.Int("failed", stats.Failed),
		zap.Int("unannotated", stats.Unannotated))
	return nil
}

// openInput opens a VCF file and warns when its ANN header declares a
// field order other than the one records are decoded with.
func openInput(path string, logger *zap.Logger) (*vcf.Parser, error) {
	parser, err := vcf.NewParser(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w (check that the file path is correct)", err)
		}
		return nil, err
	}

	if h := parser.AnnHeader(); h != "" {
		names, err := ann.ParseHeaderFields(h)
		switch {
		case err != nil:
			logger.Warn("cannot read ANN header field list", zap.Error(err))
		case !ann.MatchesSchema(names):
			logger.Warn("ANN header declares a non-standard field order; decoding with the v1.0 order",
				zap.Strings("declared", names))
		}
	}
	return parser, nil
}

// newWriter creates the record writer for format. The returned close
// function releases resources held by the writer.
func newWriter(format string, out io.Writer) (pipeline.RecordWriter, func(), error) {
	nop := func() {}
	switch format {
	case "tab":
		return output.NewTabWriter(out), nop, nil
	case "jsonl":
		return output.NewJSONWriter(out), nop, nil
	case "duckdb":
		path := viper.GetString(keyDBPath)
		if path == "" {
			return nil, nop, usageError{errors.New("--db is required for -f duckdb")}
		}
		store, err := duckdb.Open(path)
		if err != nil {
			return nil, nop, err
		}
		return duckdb.NewWriter(store), func() { store.Close() }, nil
	default:
		return nil, nop, usageError{fmt.Errorf("unknown output format %q", format)}
	}
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
