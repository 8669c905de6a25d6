package datasets

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitscreen-engine/internal/ingest"
)

func sampleCandidate() ingest.Candidate {
	return ingest.Candidate{
		CandidateID:     "c001",
		Handle:          "alice",
		ResumeSummary:   "seasoned gopher",
		ExtractedSkills: "go|kubernetes| terraform ",
		Labels:          "strong_yes",
		ReviewerNote:    "great systems background",
		ResumeFullText:  "full text here",
	}
}

func TestBuildPayload(t *testing.T) {
	derived, label := BuildPayload(sampleCandidate(), false)

	assert.Equal(t, "c001", derived.CandidateID)
	assert.Equal(t, []string{"go", "kubernetes", "terraform"}, derived.ExtractedSkills)
	assert.Equal(t, []string{"strong_yes"}, derived.Labels)
	assert.Empty(t, derived.ResumeFullText, "full text only with explicit opt-in")

	require.NotNil(t, label)
	assert.Equal(t, "strong_yes", label.Label)
	assert.Equal(t, "great systems background", label.ReviewerNote)
}

func TestBuildPayloadFullText(t *testing.T) {
	derived, _ := BuildPayload(sampleCandidate(), true)
	assert.Equal(t, "full text here", derived.ResumeFullText)
}

func TestBuildPayloadNoLabels(t *testing.T) {
	c := sampleCandidate()
	c.Labels = ""
	derived, label := BuildPayload(c, false)
	assert.Nil(t, label)
	assert.Equal(t, []string{}, derived.Labels)
}

func TestAppendLabelsWritesHeaderOnce(t *testing.T) {
	dir, err := EnsureDir(t.TempDir() + "/samples")
	require.NoError(t, err)

	_, label := BuildPayload(sampleCandidate(), false)
	path, err := AppendLabels(dir, []LabelRow{*label})
	require.NoError(t, err)
	_, err = AppendLabels(dir, []LabelRow{*label})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3, "one header plus two appended rows")
	assert.Equal(t, []string{"candidate_id", "label", "reviewer_note"}, rows[0])
	assert.Equal(t, rows[1], rows[2])
}

func TestAppendDerived(t *testing.T) {
	dir, err := EnsureDir(t.TempDir() + "/samples")
	require.NoError(t, err)

	derived, _ := BuildPayload(sampleCandidate(), false)
	path, err := AppendDerived(dir, []DerivedRow{derived})
	require.NoError(t, err)
	_, err = AppendDerived(dir, []DerivedRow{derived})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2, "append-only, never rewritten")

	var row DerivedRow
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &row))
	assert.Equal(t, "c001", row.CandidateID)
}
