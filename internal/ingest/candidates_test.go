package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidates.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCandidates(t *testing.T) {
	path := writeCSV(t, "candidate_id,candidate_name,handle\nc1,Alice Adams,@alice\nc2,Bob Brown,bob\n")

	got, err := LoadCandidates(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "c1", got[0].CandidateID)
	assert.Equal(t, "alice", got[0].Handle, "@ prefix is stripped")
	assert.Equal(t, "Alice Adams", got[0].CandidateName)
	assert.Equal(t, "bob", got[1].Handle)
}

func TestLoadCandidatesHandleAliases(t *testing.T) {
	for _, column := range []string{"handle", "github", "github_handle", "github_username"} {
		path := writeCSV(t, column+"\ncarol\n")
		got, err := LoadCandidates(path)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "carol", got[0].Handle, "column %q", column)
	}
}

func TestLoadCandidatesSyntheticIDs(t *testing.T) {
	path := writeCSV(t, "handle\nalice\nbob\n")
	got, err := LoadCandidates(path)
	require.NoError(t, err)
	assert.Equal(t, "c001", got[0].CandidateID)
	assert.Equal(t, "c002", got[1].CandidateID)
}

func TestLoadCandidatesKeepsHandlelessRows(t *testing.T) {
	path := writeCSV(t, "candidate_id,handle\nc1,alice\nc2,\nc3,carol\n")
	got, err := LoadCandidates(path)
	require.NoError(t, err)
	require.Len(t, got, 3, "rows without handles stay in the list")
	assert.Empty(t, got[1].Handle)
}

func TestLoadCandidatesResumeColumns(t *testing.T) {
	path := writeCSV(t, "handle,source_file,resume_summary,extracted_skills,labels\nalice,cv/alice.pdf,seasoned gopher,go|k8s,strong_yes\n")
	got, err := LoadCandidates(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "cv/alice.pdf", got[0].SourceFile)
	assert.Equal(t, "go|k8s", got[0].ExtractedSkills)
	assert.Equal(t, "strong_yes", got[0].Labels)
}

func TestLoadCandidatesMissingFile(t *testing.T) {
	_, err := LoadCandidates(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestDisplayID(t *testing.T) {
	assert.Equal(t, "Alice", Candidate{CandidateID: "c1", Handle: "alice", CandidateName: "Alice"}.DisplayID())
	assert.Equal(t, "alice_cv", Candidate{CandidateID: "c1", Handle: "alice", SourceFile: "in/alice_cv.pdf"}.DisplayID())
	assert.Equal(t, "alice", Candidate{CandidateID: "c1", Handle: "alice"}.DisplayID())
	assert.Equal(t, "c1", Candidate{CandidateID: "c1"}.DisplayID())
}
