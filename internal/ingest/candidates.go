// Package ingest parses the two run inputs: the candidate list CSV and
// the free-text job description. The pipeline itself only ever sees the
// parsed structures.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Candidate is one row of the candidate list, resume-derived columns
// included.
type Candidate struct {
	CandidateID     string
	Handle          string
	CandidateName   string
	SourceFile      string
	ResumeSummary   string
	ExtractedSkills string
	Labels          string
	ReviewerNote    string
	ResumeFullText  string
}

// DisplayID picks the identifier shown in reports: name beats source
// file stem beats handle beats the synthetic row id.
func (c Candidate) DisplayID() string {
	if c.CandidateName != "" {
		return c.CandidateName
	}
	if c.SourceFile != "" {
		base := filepath.Base(c.SourceFile)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	if c.Handle != "" {
		return c.Handle
	}
	return c.CandidateID
}

// handle column aliases, checked in order
var handleColumns = []string{"handle", "github", "github_handle", "github_username"}

// LoadCandidates reads the candidate CSV. Rows keep their file order;
// rows without any handle column value are kept (the pipeline skips
// them with a log line) so row counts stay diffable against the input.
func LoadCandidates(path string) ([]Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidates: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read candidates header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []Candidate
	for idx := 1; ; idx++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read candidates row %d: %w", idx, err)
		}

		handle := ""
		for _, name := range handleColumns {
			if v := field(row, name); v != "" {
				handle = v
				break
			}
		}

		id := field(row, "candidate_id")
		if id == "" {
			id = fmt.Sprintf("c%03d", idx)
		}
		name := field(row, "candidate_name")
		if name == "" {
			name = field(row, "name")
		}

		out = append(out, Candidate{
			CandidateID:     id,
			Handle:          strings.TrimPrefix(handle, "@"),
			CandidateName:   name,
			SourceFile:      field(row, "source_file"),
			ResumeSummary:   field(row, "resume_summary"),
			ExtractedSkills: field(row, "extracted_skills"),
			Labels:          field(row, "labels"),
			ReviewerNote:    field(row, "reviewer_note"),
			ResumeFullText:  field(row, "resume_full_text"),
		})
	}
	return out, nil
}
