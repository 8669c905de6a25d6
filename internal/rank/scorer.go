package rank

import "gitscreen-engine/internal/domain"

// Result is what scoring produces for one candidate: the capped
// sub-scores, evidence bullets naming the fields behind each nonzero
// contribution, and one rationale line per rubric dimension.
type Result struct {
	Scores    domain.Scores
	Evidence  []string
	Rationale []string
}

type Scorer interface {
	Score(fs domain.FeatureSet) Result
}
