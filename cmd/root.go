// Package cmd implements the compas command line interface.
package cmd

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/okian/compas/internal/adapters/tabular"
	"github.com/okian/compas/internal/app"
	"github.com/okian/compas/internal/config"
	"github.com/okian/compas/internal/domain/model"
	"github.com/okian/compas/internal/domain/needs"
	"github.com/okian/compas/internal/domain/resolve"
	"github.com/okian/compas/pkg/logger"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "compas",
	Short: "Recommend catalog programs that fill a learner's competency gaps",
	Long: `compas builds a learner's competency profile from completion history,
derives need weights for the competencies the learner is weakest in, and
ranks catalog programs by how well they compensate.

Configuration comes from defaults, an optional YAML file named by
COMPAS_CONFIG, and COMPAS_* environment variables, in that order.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(); err != nil {
			return errors.Wrap(err, "initializing logger")
		}
		if verbose {
			_ = logger.SetLevelString("debug")
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// loadConfig loads configuration and applies the verbose flag on top.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}
	if !verbose {
		if err := logger.SetLevelString(cfg.LogLevel); err != nil {
			logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
			_ = logger.SetLevelString("info")
		}
	}
	return cfg, nil
}

// policiesFrom maps the policy selector to concrete policies in output order.
func policiesFrom(cfg *config.Config) []needs.Policy {
	switch cfg.Policy {
	case config.PolicyTarget:
		return []needs.Policy{needs.TargetRelative{Target: cfg.Target}}
	case config.PolicyBoth:
		return []needs.Policy{
			needs.MeanRelative{},
			needs.TargetRelative{Target: cfg.Target},
		}
	default:
		return []needs.Policy{needs.MeanRelative{}}
	}
}

// buildService loads both tables and sets up the engine.
func buildService(ctx context.Context, cfg *config.Config) (*app.Service, error) {
	catalog, err := tabular.Load(cfg.CatalogPath)
	if err != nil {
		return nil, errors.Wrapf(err, "loading catalog %s", cfg.CatalogPath)
	}
	history, err := tabular.Load(cfg.HistoryPath)
	if err != nil {
		return nil, errors.Wrapf(err, "loading history %s", cfg.HistoryPath)
	}

	specOpts := []resolve.Option{
		resolve.WithCompetencyPrefix(cfg.CompetencyPrefix),
	}
	if cfg.ItemIDColumn != "" {
		specOpts = append(specOpts, resolve.WithItemID(cfg.ItemIDColumn))
	}
	if cfg.LearnerIDColumn != "" {
		specOpts = append(specOpts, resolve.WithLearnerID(cfg.LearnerIDColumn))
	}
	if cfg.StatusColumn != "" {
		specOpts = append(specOpts, resolve.WithStatus(cfg.StatusColumn))
	}
	if len(cfg.CompetencyColumns) > 0 {
		specOpts = append(specOpts, resolve.WithCompetencies(cfg.CompetencyColumns))
	}

	svc := app.New(
		app.WithLogger(logger.Get()),
		app.WithResolveSpec(resolve.NewSpec(specOpts...)),
		app.WithPolicies(policiesFrom(cfg)...),
		app.WithTopK(cfg.TopK),
		app.WithCompletionMarker(cfg.CompletionMarker),
		app.WithWorkerCount(cfg.WorkerCount),
	)
	if err := svc.Setup(ctx, catalog, history); err != nil {
		return nil, errors.Wrap(err, "setting up engine")
	}
	return svc, nil
}

// rendererFor builds the output renderer matching the engine's resolved
// columns. The method column appears whenever more than one policy runs.
func rendererFor(svc *app.Service, cfg *config.Config) *tabular.Renderer {
	return tabular.NewRenderer(
		svc.Competencies(),
		tabular.WithItemColumn(svc.ItemColumn()),
		tabular.WithLearnerColumn(svc.LearnerColumn()),
		tabular.WithMethodColumn(cfg.Policy == config.PolicyBoth),
	)
}

// writeResult writes a rendered table to the output path, or stdout for "-".
func writeResult(t *model.Table, path string) error {
	if path == "-" {
		return errors.Wrap(tabular.WriteTo(os.Stdout, t), "writing to stdout")
	}
	return errors.Wrapf(tabular.Write(path, t), "writing %s", path)
}
