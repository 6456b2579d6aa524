// Package resolve maps raw table column names to semantic roles:
// item identifier, learner identifier, completion status, and the
// competency column set. Resolution reads headers only, never row data.
package resolve

import (
	"fmt"
	"strings"
)

// Default detection vocabulary. Candidate lists are ordered: the first
// candidate that appears in any column wins, scanning columns in table
// order. The source datasets mix English and Korean headers, so both
// are covered.
var (
	DefaultItemIDCandidates    = []string{"program", "프로그램", "item"}                       //nolint:gochecknoglobals // detection vocabulary
	DefaultLearnerIDCandidates = []string{"learner", "student", "학생ID", "학번", "이수자ID"}     //nolint:gochecknoglobals // detection vocabulary
	DefaultStatusCandidates    = []string{"이수여부", "completion", "status", "이수", "수료여부"} //nolint:gochecknoglobals // detection vocabulary
)

// DefaultCompetencyPrefix marks competency columns in both tables.
// The trailing underscore keeps prefix detection from swallowing
// columns like "completion_status".
const DefaultCompetencyPrefix = "comp_"

// Spec configures resolution for one table. Zero-value fields fall back
// to auto-detection; explicit overrides bypass detection entirely.
type Spec struct {
	// Explicit overrides. When set they are used verbatim.
	ItemID       string
	LearnerID    string
	Status       string
	Competencies []string

	// Detection knobs.
	CompetencyPrefix    string
	ItemIDCandidates    []string
	LearnerIDCandidates []string
	StatusCandidates    []string
}

// Resolved holds the concrete column names for one table. Roles the
// caller did not require resolve to the empty string.
type Resolved struct {
	ItemID       string
	LearnerID    string
	Status       string
	Competencies []string
}

// Option applies a configuration option to a Spec.
type Option func(*Spec)

// WithItemID overrides item-identifier detection.
func WithItemID(col string) Option {
	return func(s *Spec) { s.ItemID = col }
}

// WithLearnerID overrides learner-identifier detection.
func WithLearnerID(col string) Option {
	return func(s *Spec) { s.LearnerID = col }
}

// WithStatus overrides completion-status detection.
func WithStatus(col string) Option {
	return func(s *Spec) { s.Status = col }
}

// WithCompetencies overrides competency-column detection with a verbatim list.
func WithCompetencies(cols []string) Option {
	return func(s *Spec) { s.Competencies = cols }
}

// WithCompetencyPrefix changes the prefix that marks competency columns.
func WithCompetencyPrefix(prefix string) Option {
	return func(s *Spec) { s.CompetencyPrefix = prefix }
}

// NewSpec builds a Spec with default detection vocabulary and applies
// the given options.
func NewSpec(opts ...Option) Spec {
	s := Spec{
		CompetencyPrefix:    DefaultCompetencyPrefix,
		ItemIDCandidates:    DefaultItemIDCandidates,
		LearnerIDCandidates: DefaultLearnerIDCandidates,
		StatusCandidates:    DefaultStatusCandidates,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// findColumn returns the first column containing any candidate.
// Candidate-list order breaks ties between candidates; within one
// candidate, columns are scanned in table order and the first match
// wins. No fuzzy matching.
func findColumn(columns, candidates []string) string {
	for _, cand := range candidates {
		for _, col := range columns {
			if strings.Contains(col, cand) {
				return col
			}
		}
	}
	return ""
}

// competencyColumns returns every column whose name begins with the
// prefix, preserving table column order.
func competencyColumns(columns []string, prefix string) []string {
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		if strings.HasPrefix(col, prefix) {
			out = append(out, col)
		}
	}
	return out
}

// Catalog resolves the roles a catalog table must provide: item
// identifier and a non-empty competency set.
func (s Spec) Catalog(columns []string) (Resolved, error) {
	var r Resolved

	r.ItemID = s.ItemID
	if r.ItemID == "" {
		r.ItemID = findColumn(columns, s.ItemIDCandidates)
	}
	if r.ItemID == "" {
		return Resolved{}, fmt.Errorf("%w: item identifier column not found (candidates %v)", ErrResolution, s.ItemIDCandidates)
	}

	comps, err := s.competencies(columns)
	if err != nil {
		return Resolved{}, err
	}
	r.Competencies = comps
	return r, nil
}

// History resolves the roles a history table must provide: learner
// identifier, item identifier, optional completion status, and a
// non-empty competency set. A missing status column is not an error;
// the profile builder then treats every row as qualifying.
func (s Spec) History(columns []string) (Resolved, error) {
	var r Resolved

	r.LearnerID = s.LearnerID
	if r.LearnerID == "" {
		r.LearnerID = findColumn(columns, s.LearnerIDCandidates)
	}
	if r.LearnerID == "" {
		return Resolved{}, fmt.Errorf("%w: learner identifier column not found (candidates %v)", ErrResolution, s.LearnerIDCandidates)
	}

	r.ItemID = s.ItemID
	if r.ItemID == "" {
		r.ItemID = findColumn(columns, s.ItemIDCandidates)
	}

	r.Status = s.Status
	if r.Status == "" {
		r.Status = findColumn(columns, s.StatusCandidates)
	}

	comps, err := s.competencies(columns)
	if err != nil {
		return Resolved{}, err
	}
	r.Competencies = comps
	return r, nil
}

func (s Spec) competencies(columns []string) ([]string, error) {
	if len(s.Competencies) > 0 {
		out := make([]string, len(s.Competencies))
		copy(out, s.Competencies)
		return out, nil
	}
	comps := competencyColumns(columns, s.CompetencyPrefix)
	if len(comps) == 0 {
		return nil, fmt.Errorf("%w: no competency columns with prefix %q", ErrResolution, s.CompetencyPrefix)
	}
	return comps, nil
}

// Intersect returns the competency columns shared by catalog and
// history, in catalog order. The shared set is the engine's canonical
// competency keyspace; an empty intersection is fatal at setup time.
func Intersect(catalog, history []string) ([]string, error) {
	seen := make(map[string]struct{}, len(history))
	for _, c := range history {
		seen[c] = struct{}{}
	}
	shared := make([]string, 0, len(catalog))
	for _, c := range catalog {
		if _, ok := seen[c]; ok {
			shared = append(shared, c)
		}
	}
	if len(shared) == 0 {
		return nil, ErrEmptyIntersection
	}
	return shared, nil
}
