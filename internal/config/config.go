// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"

	"github.com/okian/compas/internal/domain/needs"
	"github.com/okian/compas/internal/domain/profile"
	"github.com/okian/compas/internal/domain/resolve"
)

// Policy selector values.
const (
	PolicyMean   = "mean"
	PolicyTarget = "target"
	PolicyBoth   = "both"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CatalogPath and HistoryPath locate the two input CSV files.
	CatalogPath string `koanf:"catalog_path"`
	HistoryPath string `koanf:"history_path"`

	// OutputPath locates the recommendation CSV written by batch runs.
	OutputPath string `koanf:"output_path"`

	// TopK caps the ranked output per learner per policy.
	TopK int `koanf:"top_k"`

	// Policy selects the need-weight strategy: mean, target, or both.
	Policy string `koanf:"policy"`

	// Target is the per-competency goal level for the target policy.
	Target float64 `koanf:"target"`

	// CompletionMarker classifies a history row as completed when the
	// status cell contains it.
	CompletionMarker string `koanf:"completion_marker"`

	// Column resolution overrides. Empty values mean auto-detect.
	CompetencyPrefix  string   `koanf:"competency_prefix"`
	ItemIDColumn      string   `koanf:"item_id_col"`
	LearnerIDColumn   string   `koanf:"learner_id_col"`
	StatusColumn      string   `koanf:"status_col"`
	CompetencyColumns []string `koanf:"competency_cols"`

	// WorkerCount sets the number of concurrent batch workers.
	WorkerCount int `koanf:"worker_count"`
}

// New creates a Config with defaults. Top-K and target mirror the
// defaults of the batch driver this engine replaces.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		CatalogPath:      "programs.csv",
		HistoryPath:      "history.csv",
		OutputPath:       "recommendations.csv",
		TopK:             15,
		Policy:           PolicyMean,
		Target:           needs.DefaultTarget,
		CompletionMarker: profile.DefaultCompletionMarker,
		CompetencyPrefix: resolve.DefaultCompetencyPrefix,
		WorkerCount:      runtime.NumCPU(),
	}
}
