package domain

import (
	"fmt"
	"strings"
)

// Score field names, in the order they appear in scores.csv.
var ScoreFields = []string{
	"EngineeringScore",
	"ImpactScore",
	"ActivityScore",
	"AIProductivityScore",
	"TotalScore",
}

// Scores holds the four capped sub-scores plus their clamped total.
type Scores struct {
	Engineering    int `json:"EngineeringScore"`
	Impact         int `json:"ImpactScore"`
	Activity       int `json:"ActivityScore"`
	AIProductivity int `json:"AIProductivityScore"`
	Total          int `json:"TotalScore"`
}

// ScoreRecord is the final, write-once result for one candidate.
type ScoreRecord struct {
	CandidateID   string   `json:"candidate_id"`
	CandidateName string   `json:"candidate_name,omitempty"`
	SourceFile    string   `json:"source_file,omitempty"`
	Handle        string   `json:"handle"`
	BatchID       int      `json:"batch_id"`
	Provenance    string   `json:"provenance"`
	JobFit        []string `json:"job_fit"`
	Evidence      []string `json:"evidence"`
	Scores        Scores   `json:"scores"`
	Rationale     []string `json:"score_rationale"`
}

// Validate checks the record carries everything the output contract
// names. A failing record is a bug in the pipeline, not a data condition.
func (r ScoreRecord) Validate() error {
	var missing []string
	if r.CandidateID == "" {
		missing = append(missing, "candidate_id")
	}
	if r.Handle == "" {
		missing = append(missing, "handle")
	}
	if r.Evidence == nil {
		missing = append(missing, "evidence")
	}
	if r.Rationale == nil {
		missing = append(missing, "score_rationale")
	}
	if len(missing) > 0 {
		return fmt.Errorf("score record missing fields: %s", strings.Join(missing, ", "))
	}
	if r.Scores.Total < 0 || r.Scores.Total > 100 {
		return fmt.Errorf("total score %d outside [0,100]", r.Scores.Total)
	}
	return nil
}
