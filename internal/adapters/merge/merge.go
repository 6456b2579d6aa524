// Package merge combines recommendation tables produced by separate
// runs into one list per learner, tagging every row with the label of
// the run it came from.
package merge

import (
	"sort"
	"strconv"

	"github.com/okian/compas/internal/domain/model"
)

// LabelColumn tags each merged row with its source run.
const LabelColumn = "label"

// Input pairs one recommendation table with the label of the run that
// produced it, e.g. "major" or "personalized".
type Input struct {
	Table *model.Table
	Label string
}

// Tables concatenates the inputs, adds the label column, and sorts by
// (learner id, label, rank) ascending with a stable sort, so each
// learner reads as consecutive blocks of labeled, internally ranked
// lists. Columns form the union across inputs in first-seen order, with
// the label column appended last. Rank cells are compared numerically;
// unparsable ranks sort after parsable ones.
func Tables(inputs []Input, learnerColumn, rankColumn string) (*model.Table, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}

	columns := make([]string, 0)
	seen := make(map[string]struct{})
	for _, in := range inputs {
		for _, c := range in.Table.Columns {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			columns = append(columns, c)
		}
	}
	columns = append(columns, LabelColumn)

	out := model.NewTable(columns)
	for _, in := range inputs {
		for _, r := range in.Table.Rows {
			row := make(model.Row, len(r)+1)
			for k, v := range r {
				row[k] = v
			}
			row[LabelColumn] = in.Label
			out.Append(row)
		}
	}

	sort.SliceStable(out.Rows, func(a, b int) bool {
		ra, rb := out.Rows[a], out.Rows[b]
		if ra[learnerColumn] != rb[learnerColumn] {
			return ra[learnerColumn] < rb[learnerColumn]
		}
		if ra[LabelColumn] != rb[LabelColumn] {
			return ra[LabelColumn] < rb[LabelColumn]
		}
		na, oka := parseRank(ra[rankColumn])
		nb, okb := parseRank(rb[rankColumn])
		if oka != okb {
			return oka
		}
		return na < nb
	})
	return out, nil
}

func parseRank(cell string) (int, bool) {
	n, err := strconv.Atoi(cell)
	if err != nil {
		return 0, false
	}
	return n, true
}
