package tabular

import (
	"strconv"

	"github.com/okian/compas/internal/domain/model"
)

// ContributionPrefix names per-competency breakdown columns:
// "contribution::<competency>".
const ContributionPrefix = "contribution::"

// Default output column names. Item and learner columns usually carry
// the resolved source column names instead.
const (
	DefaultItemColumn    = "item_id"
	DefaultLearnerColumn = "learner_id"
	scoreColumn          = "score"
	methodColumn         = "method"
	rankColumn           = "rank"
)

// Renderer converts recommendations into an output table. Column order
// is fixed: learner id (batch only), item id, method (when several
// policies ran), score, one contribution column per competency in
// canonical order, rank. Row order is the ranked order; downstream
// consumers must not re-sort.
type Renderer struct {
	competencies  []string
	itemColumn    string
	learnerColumn string
	includeMethod bool
}

// RendererOption applies a configuration option to the Renderer.
type RendererOption func(*Renderer)

// WithItemColumn names the item-identifier output column.
func WithItemColumn(name string) RendererOption {
	return func(r *Renderer) {
		if name != "" {
			r.itemColumn = name
		}
	}
}

// WithLearnerColumn names the learner-identifier column in batch output.
func WithLearnerColumn(name string) RendererOption {
	return func(r *Renderer) {
		if name != "" {
			r.learnerColumn = name
		}
	}
}

// WithMethodColumn includes the policy tag column.
func WithMethodColumn(include bool) RendererOption {
	return func(r *Renderer) { r.includeMethod = include }
}

// NewRenderer creates a renderer over the canonical competency order.
func NewRenderer(competencies []string, opts ...RendererOption) *Renderer {
	r := &Renderer{
		competencies:  competencies,
		itemColumn:    DefaultItemColumn,
		learnerColumn: DefaultLearnerColumn,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) columns(withLearner bool) []string {
	cols := make([]string, 0, len(r.competencies)+5)
	if withLearner {
		cols = append(cols, r.learnerColumn)
	}
	cols = append(cols, r.itemColumn)
	if r.includeMethod {
		cols = append(cols, methodColumn)
	}
	cols = append(cols, scoreColumn)
	for _, c := range r.competencies {
		cols = append(cols, ContributionPrefix+c)
	}
	cols = append(cols, rankColumn)
	return cols
}

func (r *Renderer) row(learnerID string, withLearner bool, rec model.Recommendation) model.Row {
	row := make(model.Row, len(r.competencies)+5)
	if withLearner {
		row[r.learnerColumn] = learnerID
	}
	row[r.itemColumn] = rec.ItemID
	if r.includeMethod {
		row[methodColumn] = rec.Method
	}
	row[scoreColumn] = formatFloat(rec.Score)
	for _, c := range r.competencies {
		row[ContributionPrefix+c] = formatFloat(rec.Contributions[c])
	}
	row[rankColumn] = strconv.Itoa(rec.Rank)
	return row
}

// Single renders one learner's recommendations.
func (r *Renderer) Single(recs []model.Recommendation) *model.Table {
	t := model.NewTable(r.columns(false))
	for _, rec := range recs {
		t.Append(r.row("", false, rec))
	}
	return t
}

// Batch renders a multi-learner result with a leading learner column.
func (r *Renderer) Batch(blocks []model.LearnerBlock) *model.Table {
	t := model.NewTable(r.columns(true))
	for _, b := range blocks {
		for _, rec := range b.Recommendations {
			t.Append(r.row(b.LearnerID, true, rec))
		}
	}
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
