package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-ann/internal/ann"
	"github.com/inodb/vibe-ann/internal/output"
	"github.com/inodb/vibe-ann/internal/vcf"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <ann-value>...",
		Short: "Decode raw ANN values given on the command line",
		Example: `  vibe-ann parse 'ANN=A|missense_variant|MODERATE|KRAS'
  vibe-ann parse 'T|intron_variant&nc_transcript_variant|MODIFIER|BTK'`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError{errors.New("at least one ANN value is required")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := output.NewTabWriter(cmd.OutOrStdout())
			if err := w.WriteHeader(); err != nil {
				return err
			}

			// Raw values carry no variant; its columns are placeholders.
			v := &vcf.Variant{Chrom: output.Missing, Ref: output.Missing, Alt: output.Missing}
			for i, raw := range args {
				recs, err := ann.Decode(raw)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				for _, rec := range recs {
					if err := w.Write(v, rec); err != nil {
						return err
					}
				}
			}
			return w.Flush()
		},
	}
}
