// Package profile derives a learner's competency profile from history
// records: a row-wise sum of competency values over the learner's
// qualifying interactions.
package profile

import (
	"strings"

	"github.com/okian/compas/internal/domain/model"
	"github.com/okian/compas/internal/domain/resolve"
)

// DefaultCompletionMarker is the token whose containment in the status
// cell classifies a history row as completed. The source datasets use
// the Korean completion token.
const DefaultCompletionMarker = "이수"

// Builder aggregates history rows into competency profiles.
type Builder struct {
	marker string
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithCompletionMarker changes the completion marker token.
func WithCompletionMarker(marker string) Option {
	return func(b *Builder) {
		if marker != "" {
			b.marker = marker
		}
	}
}

// NewBuilder creates a profile builder with configuration options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{marker: DefaultCompletionMarker}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// learnerRows returns the indices of history rows whose learner id
// matches the target exactly as strings: no trimming, no zero-stripping.
func learnerRows(history *model.Table, learnerID, learnerCol string) []int {
	out := make([]int, 0)
	for i := range history.Rows {
		if history.Rows[i][learnerCol] == learnerID {
			out = append(out, i)
		}
	}
	return out
}

// completedOf filters row indices to those whose status cell contains
// the completion marker. Returns the filtered set and whether any row
// qualified.
func (b *Builder) completedOf(history *model.Table, rows []int, statusCol string) ([]int, bool) {
	out := make([]int, 0, len(rows))
	for _, i := range rows {
		if strings.Contains(history.Rows[i][statusCol], b.marker) {
			out = append(out, i)
		}
	}
	return out, len(out) > 0
}

// Build returns the learner's accumulated competency levels: the sum of
// competency cells over completed rows. Two named fallbacks keep every
// learner scoreable:
//   - a learner with zero history rows gets an all-zero vector over the
//     full competency keyspace, never an error;
//   - when the completion filter would eliminate every row, it is
//     skipped and all of the learner's rows count.
func (b *Builder) Build(history *model.Table, learnerID string, r resolve.Resolved) model.Vector {
	levels := make(model.Vector, len(r.Competencies))
	for _, c := range r.Competencies {
		levels[c] = 0
	}

	rows := learnerRows(history, learnerID, r.LearnerID)
	if len(rows) == 0 {
		return levels
	}

	if r.Status != "" {
		if completed, any := b.completedOf(history, rows, r.Status); any {
			rows = completed
		}
	}

	for _, i := range rows {
		for _, c := range r.Competencies {
			levels[c] += model.ParseNumeric(history.Rows[i][c])
		}
	}
	return levels
}

// CompletedItems returns the item identifiers of the learner's completed
// rows, for exclusion from ranking. Unlike Build, no fallback applies
// here: only rows that genuinely carry the completion marker exclude an
// item. Without a resolved status or item column the set is empty.
func (b *Builder) CompletedItems(history *model.Table, learnerID string, r resolve.Resolved) map[string]struct{} {
	taken := make(map[string]struct{})
	if r.Status == "" || r.ItemID == "" {
		return taken
	}
	for _, i := range learnerRows(history, learnerID, r.LearnerID) {
		if strings.Contains(history.Rows[i][r.Status], b.marker) {
			taken[history.Rows[i][r.ItemID]] = struct{}{}
		}
	}
	return taken
}

// Learners returns the unique learner identifiers in first-appearance
// order. Batch drivers iterate this to score everyone.
func Learners(history *model.Table, learnerCol string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range history.Rows {
		id := history.Rows[i][learnerCol]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
