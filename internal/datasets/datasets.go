// Package datasets appends resume-derived bookkeeping rows for later
// labeling work. Append-only: screening runs never rewrite history.
package datasets

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitscreen-engine/internal/ingest"
)

type DerivedRow struct {
	CandidateID     string   `json:"candidate_id"`
	ResumeSummary   string   `json:"resume_summary,omitempty"`
	ExtractedSkills []string `json:"extracted_skills"`
	Labels          []string `json:"labels"`
	ReviewerNote    string   `json:"reviewer_note,omitempty"`
	ResumeFullText  string   `json:"resume_full_text,omitempty"`
}

type LabelRow struct {
	CandidateID  string
	Label        string
	ReviewerNote string
}

// BuildPayload derives the dataset rows for one candidate. Full resume
// text is only carried when explicitly enabled. The label row is nil
// when the candidate has no labels.
func BuildPayload(c ingest.Candidate, storeFullText bool) (DerivedRow, *LabelRow) {
	derived := DerivedRow{
		CandidateID:     c.CandidateID,
		ResumeSummary:   c.ResumeSummary,
		ExtractedSkills: splitList(c.ExtractedSkills),
		Labels:          splitList(c.Labels),
		ReviewerNote:    c.ReviewerNote,
	}
	if storeFullText {
		derived.ResumeFullText = c.ResumeFullText
	}

	var label *LabelRow
	if c.Labels != "" {
		label = &LabelRow{
			CandidateID:  c.CandidateID,
			Label:        c.Labels,
			ReviewerNote: c.ReviewerNote,
		}
	}
	return derived, label
}

func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("dataset dir: %w", err)
	}
	return dir, nil
}

func AppendLabels(dir string, rows []LabelRow) (string, error) {
	path := filepath.Join(dir, "labels.csv")
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write([]string{"candidate_id", "label", "reviewer_note"}); err != nil {
			return "", err
		}
	}
	for _, row := range rows {
		if err := w.Write([]string{row.CandidateID, row.Label, row.ReviewerNote}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}

func AppendDerived(dir string, rows []DerivedRow) (string, error) {
	path := filepath.Join(dir, "derived_features.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return "", err
		}
	}
	return path, nil
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	var out []string
	for _, item := range strings.Split(value, "|") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
