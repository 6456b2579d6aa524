// Package needs converts a learner's competency profile into need
// weights: non-negative multipliers expressing how much the learner
// currently lacks each competency.
package needs

import (
	"github.com/okian/compas/internal/domain/model"
)

// Policy names used for tagging multi-policy output.
const (
	MeanRelativeName   = "mean_relative"
	TargetRelativeName = "target_relative"
)

// DefaultTarget is the per-competency goal level for the target-relative
// policy.
const DefaultTarget = 5.0

// Policy turns a competency vector into a need-weight vector. Policies
// are pure: no side effects, no catalog dependence. Output is
// element-wise non-negative over exactly the given keyspace.
type Policy interface {
	// Name identifies the policy in tagged multi-policy output.
	Name() string

	// Weights computes the need weight per competency. keys fixes the
	// keyspace; levels absent from it are ignored.
	Weights(levels model.Vector, keys []string) model.Vector
}

// uniformFallback replaces an all-zero weight vector with uniform 1.0
// across a non-empty keyspace. A flat profile carries no preference
// signal, so every competency is needed equally; this keeps the scorer
// from producing a degenerate all-zero ranking.
func uniformFallback(w model.Vector, keys []string) model.Vector {
	if len(keys) == 0 || w.Sum() != 0 {
		return w
	}
	for _, k := range keys {
		w[k] = 1.0
	}
	return w
}

// MeanRelative weighs each competency by its shortfall against the
// learner's own mean level: weight(c) = max(0, mean - level(c)).
// Competencies at or above the mean get zero weight.
type MeanRelative struct{}

// Name implements Policy.
func (MeanRelative) Name() string { return MeanRelativeName }

// Weights implements Policy.
func (MeanRelative) Weights(levels model.Vector, keys []string) model.Vector {
	w := make(model.Vector, len(keys))
	var mu float64
	if len(keys) > 0 {
		var sum float64
		for _, k := range keys {
			sum += levels[k]
		}
		mu = sum / float64(len(keys))
	}
	for _, k := range keys {
		if d := mu - levels[k]; d > 0 {
			w[k] = d
		} else {
			w[k] = 0
		}
	}
	return uniformFallback(w, keys)
}

// TargetRelative weighs each competency by its gap to a uniform goal
// level: weight(c) = max(0, target - level(c)).
type TargetRelative struct {
	Target float64
}

// Name implements Policy.
func (TargetRelative) Name() string { return TargetRelativeName }

// Weights implements Policy.
func (p TargetRelative) Weights(levels model.Vector, keys []string) model.Vector {
	w := make(model.Vector, len(keys))
	for _, k := range keys {
		if d := p.Target - levels[k]; d > 0 {
			w[k] = d
		} else {
			w[k] = 0
		}
	}
	return uniformFallback(w, keys)
}
