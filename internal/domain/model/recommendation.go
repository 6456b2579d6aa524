package model

// Recommendation is one ranked catalog item for one learner.
// Contributions keeps the per-competency share of the score
// (catalog value times need weight) for explainability.
type Recommendation struct {
	ItemID        string
	Score         float64
	Contributions map[string]float64
	// Method tags the need-weight policy that produced this row when
	// several policies run in one invocation.
	Method string
	// Rank is 1-based within a policy block.
	Rank int
}

// LearnerBlock groups one learner's recommendations within a batch
// result. Blocks keep history first-appearance order so batch output is
// deterministic.
type LearnerBlock struct {
	LearnerID       string
	Recommendations []Recommendation
}
