package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var batchOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Rank catalog programs for every learner in the history table",
	Long: `batch scores all learners found in the history table and writes one
combined CSV with a leading learner column and a 1-based rank per
learner and policy. Learners that fail to score are logged and skipped;
the rest of the batch still completes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		svc, err := buildService(ctx, cfg)
		if err != nil {
			return err
		}

		blocks, err := svc.BatchAll(ctx)
		if err != nil {
			return errors.Wrap(err, "scoring batch")
		}

		out := batchOutput
		if out == "" {
			out = cfg.OutputPath
		}
		return writeResult(rendererFor(svc, cfg).Batch(blocks), out)
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Output CSV path (default from config), - for stdout")
	rootCmd.AddCommand(batchCmd)
}
