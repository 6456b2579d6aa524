package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/okian/compas/internal/adapters/merge"
	"github.com/okian/compas/internal/adapters/tabular"
)

//nolint:gochecknoglobals // Cobra boilerplate
var mergeOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var mergeLearnerColumn string

//nolint:gochecknoglobals // Cobra boilerplate
var mergeRankColumn string

//nolint:gochecknoglobals // Cobra boilerplate
var mergeCmd = &cobra.Command{
	Use:   "merge <file.csv=label> [<file.csv=label> ...]",
	Short: "Combine recommendation CSVs from separate runs into one list",
	Long: `merge concatenates recommendation tables written by earlier runs,
tags every row with the label given after the = sign, and sorts by
learner, label, and rank so each learner reads as consecutive labeled
blocks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs := make([]merge.Input, 0, len(args))
		for _, arg := range args {
			path, label, found := strings.Cut(arg, "=")
			if !found || path == "" || label == "" {
				return errors.Errorf("argument %q must look like file.csv=label", arg)
			}
			t, err := tabular.Load(path)
			if err != nil {
				return errors.Wrapf(err, "loading %s", path)
			}
			inputs = append(inputs, merge.Input{Table: t, Label: label})
		}

		merged, err := merge.Tables(inputs, mergeLearnerColumn, mergeRankColumn)
		if err != nil {
			return errors.Wrap(err, "merging tables")
		}
		return writeResult(merged, mergeOutput)
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "-", "Output CSV path, - for stdout")
	mergeCmd.Flags().StringVar(&mergeLearnerColumn, "learner-col", tabular.DefaultLearnerColumn, "Learner column to sort by")
	mergeCmd.Flags().StringVar(&mergeRankColumn, "rank-col", "rank", "Rank column to sort by")
	rootCmd.AddCommand(mergeCmd)
}
