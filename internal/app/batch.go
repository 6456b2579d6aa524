package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/compas/internal/domain/model"
	"github.com/okian/compas/pkg/logger"
	"github.com/okian/compas/pkg/metrics"
)

// BatchAll scores every learner in the history table. Learners are
// distributed over a fixed pool of workers; each computation reads only
// the shared immutable tables, so no locking is needed. A failing
// learner is logged and skipped, never aborting siblings. The returned
// blocks follow the learners' first appearance in the history table
// regardless of which worker finished first.
func (s *Service) BatchAll(ctx context.Context) ([]model.LearnerBlock, error) {
	if !s.ready {
		return nil, ErrNotReady
	}

	ids := s.Learners()
	runID := uuid.NewString()
	log := s.logger.Named("batch")

	workers := s.workerCount
	if workers > len(ids) {
		workers = len(ids)
	}
	if workers < 1 {
		workers = 1
	}
	metrics.UpdateBatchWorkers(workers)

	log.Info(ctx, "batch started",
		logger.String("run_id", runID),
		logger.Int("learners", len(ids)),
		logger.Int("workers", workers),
	)

	results := make([][]model.Recommendation, len(ids))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.scoreOne(ctx, log, runID, ids[i])
			}
		}()
	}

dispatch:
	for i := range ids {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]model.LearnerBlock, 0, len(ids))
	var skipped int
	for i, id := range ids {
		if results[i] == nil {
			skipped++
			continue
		}
		out = append(out, model.LearnerBlock{LearnerID: id, Recommendations: results[i]})
	}

	log.Info(ctx, "batch finished",
		logger.String("run_id", runID),
		logger.Int("scored", len(out)),
		logger.Int("skipped", skipped),
	)
	return out, nil
}

// scoreOne runs one learner and absorbs the failure: batch semantics
// are log, count, skip.
func (s *Service) scoreOne(ctx context.Context, log logger.Logger, runID, learnerID string) []model.Recommendation {
	start := time.Now()
	recs, err := s.Recommend(ctx, learnerID)
	if err != nil {
		metrics.RecordLearnerFailure()
		log.Warn(ctx, "learner skipped",
			logger.String("run_id", runID),
			logger.String("learner_id", learnerID),
			logger.Error(err),
		)
		return nil
	}
	metrics.RecordLearnerScored()
	metrics.RecordRecommendations(len(recs))
	metrics.RecordScoringDuration(float64(time.Since(start).Milliseconds()))
	return recs
}
