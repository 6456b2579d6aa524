package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var learnerID string

//nolint:gochecknoglobals // Cobra boilerplate
var recommendOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank catalog programs for one learner",
	Long: `recommend scores every catalog program against one learner's need
weights and prints the ranked top-K with per-competency contribution
columns. A learner absent from the history table gets the uniform-need
ranking rather than an error.`,
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

		recs, err := svc.Recommend(ctx, learnerID)
		if err != nil {
			return errors.Wrapf(err, "recommending for learner %s", learnerID)
		}

		return writeResult(rendererFor(svc, cfg).Single(recs), recommendOutput)
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	recommendCmd.Flags().StringVarP(&learnerID, "learner", "l", "", "Learner identifier (required)")
	recommendCmd.Flags().StringVarP(&recommendOutput, "output", "o", "-", "Output CSV path, - for stdout")
	_ = recommendCmd.MarkFlagRequired("learner")
	rootCmd.AddCommand(recommendCmd)
}
