// Package app wires the recommendation engine together: column
// resolution at setup, then per-learner profile building, need
// weighting, and ranking. It is the only layer that logs or records
// metrics; the domain packages underneath stay pure.
package app

import (
	"context"
	"fmt"

	"github.com/okian/compas/internal/domain/model"
	"github.com/okian/compas/internal/domain/needs"
	"github.com/okian/compas/internal/domain/profile"
	"github.com/okian/compas/internal/domain/resolve"
	"github.com/okian/compas/internal/domain/scoring"
	"github.com/okian/compas/pkg/logger"
	"github.com/okian/compas/pkg/metrics"
)

// Service scores catalog items for learners. Construct with New,
// call Setup once per table pair, then Recommend per learner or
// BatchAll for everyone. After Setup the service is read-only, so
// concurrent Recommend calls are safe.
type Service struct {
	spec        resolve.Spec
	builder     *profile.Builder
	ranker      *scoring.Ranker
	policies    []needs.Policy
	workerCount int

	catalog    *model.Table
	history    *model.Table
	catalogRes resolve.Resolved
	historyRes resolve.Resolved
	ready      bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets the logger for service operations.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithResolveSpec sets the column resolution spec used for both tables.
func WithResolveSpec(spec resolve.Spec) Option {
	return func(s *Service) { s.spec = spec }
}

// WithPolicies sets the need-weight policies to run, in output order.
func WithPolicies(policies ...needs.Policy) Option {
	return func(s *Service) {
		if len(policies) > 0 {
			s.policies = policies
		}
	}
}

// WithTopK sets the ranking cutoff per learner per policy.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.ranker = scoring.NewRanker(scoring.WithTopK(k))
		}
	}
}

// WithCompletionMarker sets the token that classifies history rows as
// completed.
func WithCompletionMarker(marker string) Option {
	return func(s *Service) {
		if marker != "" {
			s.builder = profile.NewBuilder(profile.WithCompletionMarker(marker))
		}
	}
}

// WithWorkerCount sets the number of concurrent batch workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// New creates a Service with configuration options.
func New(opts ...Option) *Service {
	s := &Service{
		spec:        resolve.NewSpec(),
		builder:     profile.NewBuilder(),
		ranker:      scoring.NewRanker(),
		policies:    []needs.Policy{needs.MeanRelative{}},
		workerCount: 1,
		logger:      logger.Get().Named("app"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Setup resolves column roles for both tables and computes the shared
// competency keyspace. An empty intersection fails here, before any
// per-learner work begins. Tables are held by reference and never
// mutated.
func (s *Service) Setup(ctx context.Context, catalog, history *model.Table) error {
	catalogRes, err := s.spec.Catalog(catalog.Columns)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	historyRes, err := s.spec.History(history.Columns)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	shared, err := resolve.Intersect(catalogRes.Competencies, historyRes.Competencies)
	if err != nil {
		return err
	}
	catalogRes.Competencies = shared
	historyRes.Competencies = shared

	s.catalog = catalog
	s.history = history
	s.catalogRes = catalogRes
	s.historyRes = historyRes
	s.ready = true

	metrics.UpdateCatalogItems(catalog.Len())
	metrics.UpdateHistoryRows(history.Len())

	s.logger.Info(ctx, "engine ready",
		logger.Int("catalog_items", catalog.Len()),
		logger.Int("history_rows", history.Len()),
		logger.Int("shared_competencies", len(shared)),
		logger.String("item_id_col", catalogRes.ItemID),
		logger.String("learner_id_col", historyRes.LearnerID),
	)
	return nil
}

// Competencies returns the shared competency keyspace in canonical
// (catalog) order. Valid after Setup.
func (s *Service) Competencies() []string {
	out := make([]string, len(s.catalogRes.Competencies))
	copy(out, s.catalogRes.Competencies)
	return out
}

// ItemColumn returns the resolved catalog item-identifier column.
// Valid after Setup.
func (s *Service) ItemColumn() string {
	return s.catalogRes.ItemID
}

// LearnerColumn returns the resolved history learner-identifier column.
// Valid after Setup.
func (s *Service) LearnerColumn() string {
	return s.historyRes.LearnerID
}

// Learners returns the unique learner identifiers from the history
// table in first-appearance order.
func (s *Service) Learners() []string {
	if !s.ready {
		return nil
	}
	return profile.Learners(s.history, s.historyRes.LearnerID)
}

// Recommend scores and ranks the catalog for one learner under every
// configured policy. A learner with no history still gets a valid,
// uniform-fallback recommendation list.
func (s *Service) Recommend(ctx context.Context, learnerID string) ([]model.Recommendation, error) {
	if !s.ready {
		return nil, ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("recommend canceled: %w", err)
	}

	levels := s.builder.Build(s.history, learnerID, s.historyRes)
	taken := s.builder.CompletedItems(s.history, learnerID, s.historyRes)

	recs := s.ranker.RunPolicies(s.catalog, s.catalogRes, levels, s.policies, taken)

	s.logger.Debug(ctx, "learner scored",
		logger.String("learner_id", learnerID),
		logger.Int("excluded_items", len(taken)),
		logger.Int("recommendations", len(recs)),
	)
	return recs, nil
}
