// Package scoring computes per-item recommendation scores from catalog
// contributions and need weights, and produces the ranked top-K.
package scoring

import (
	"sort"

	"github.com/okian/compas/internal/domain/model"
	"github.com/okian/compas/internal/domain/needs"
	"github.com/okian/compas/internal/domain/resolve"
)

// DefaultTopK bounds the ranked output when the caller does not say.
const DefaultTopK = 20

// Ranker scores a catalog against one learner's need weights.
type Ranker struct {
	topK int
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithTopK sets the ranking cutoff. Non-positive values are ignored.
func WithTopK(k int) Option {
	return func(r *Ranker) {
		if k > 0 {
			r.topK = k
		}
	}
}

// NewRanker creates a ranker with configuration options.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{topK: DefaultTopK}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every catalog item as the weight-multiplied sum of its
// competency contributions, drops items in the exclusion set, sorts
// descending by score, and truncates to top-K. Order of operations is
// load-bearing: exclusion happens before ranking so excluded items never
// occupy a top-K slot, and truncation happens last. Ties keep catalog
// row order (stable sort). Fewer than K eligible items returns all of
// them.
func (rk *Ranker) Rank(catalog *model.Table, r resolve.Resolved, weights model.Vector, exclude map[string]struct{}) []model.Recommendation {
	comps := r.Competencies
	out := make([]model.Recommendation, 0, len(catalog.Rows))
	for i := range catalog.Rows {
		id := catalog.Rows[i][r.ItemID]
		if _, taken := exclude[id]; taken {
			continue
		}
		contrib := make(map[string]float64, len(comps))
		var score float64
		for _, c := range comps {
			v := model.ParseNumeric(catalog.Rows[i][c]) * weights[c]
			contrib[c] = v
			score += v
		}
		out = append(out, model.Recommendation{
			ItemID:        id,
			Score:         score,
			Contributions: contrib,
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})

	if len(out) > rk.topK {
		out = out[:rk.topK]
	}
	return out
}

// RunPolicies ranks the same catalog and exclusion set once per policy,
// tags each block with the policy name, assigns a 1-based rank within
// each block, and concatenates blocks in the order policies were
// requested.
func (rk *Ranker) RunPolicies(catalog *model.Table, r resolve.Resolved, levels model.Vector, policies []needs.Policy, exclude map[string]struct{}) []model.Recommendation {
	out := make([]model.Recommendation, 0)
	for _, p := range policies {
		weights := p.Weights(levels, r.Competencies)
		block := rk.Rank(catalog, r, weights, exclude)
		for i := range block {
			block[i].Method = p.Name()
			block[i].Rank = i + 1
		}
		out = append(out, block...)
	}
	return out
}
