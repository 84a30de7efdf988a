package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-ann/internal/output"
	"github.com/inodb/vibe-ann/internal/pipeline"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "summary <input-file>",
		Short:   "Count decoded annotations by effect and impact",
		Example: `  vibe-ann summary input.vcf.gz`,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Sync()

			parser, err := openInput(args[0], logger)
			if err != nil {
				return err
			}
			defer parser.Close()

			d := pipeline.NewDecoder()
			d.SetLogger(logger)
			d.SetWorkers(viper.GetInt(keyWorkers))

			stats, err := d.DecodeAll(cmd.Context(), parser, output.NewSummaryWriter(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			logger.Debug("summary done", zap.Int("variants", stats.Variants), zap.Int("failed", stats.Failed))
			return nil
		},
	}
	return cmd
}
