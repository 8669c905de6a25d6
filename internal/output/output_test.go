package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitscreen-engine/internal/domain"
)

func dump(id, handle string, total int) ProfileDump {
	return ProfileDump{
		ScoreRecord: domain.ScoreRecord{
			CandidateID: id,
			Handle:      handle,
			Provenance:  "api",
			Evidence:    []string{"CI config present (infra)"},
			Rationale:   []string{"Engineering: CI config present (infra)"},
			Scores:      domain.Scores{Total: total, Engineering: total},
		},
		Features: domain.FeatureSet{Status: domain.StatusOK},
	}
}

func TestWriteScoresCSVColumnOrder(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteScoresCSV(dir, []ProfileDump{dump("c1", "alice", 42)})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"candidate_id", "candidate_name", "source_file", "handle",
		"EngineeringScore", "ImpactScore", "ActivityScore", "AIProductivityScore", "TotalScore",
	}, rows[0])
	assert.Equal(t, "c1", rows[1][0])
	assert.Equal(t, "42", rows[1][8])
}

func TestWriteProfilesJSONL(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteProfilesJSONL(dir, []ProfileDump{dump("c1", "alice", 10), dump("c2", "bob", 20)})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "c1", first["candidate_id"])
	assert.Contains(t, first, "features")
	assert.Contains(t, first, "scores")
}

func TestWriteTopReportOrderAndTruncation(t *testing.T) {
	dir := t.TempDir()
	profiles := []ProfileDump{
		dump("c1", "alice", 30),
		dump("c2", "bob", 90),
		dump("c3", "carol", 60),
	}
	path, err := WriteTopReport(dir, profiles, 2)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(b)

	assert.Contains(t, report, "## 1. c2 (bob)")
	assert.Contains(t, report, "## 2. c3 (carol)")
	assert.NotContains(t, report, "alice", "top-2 truncates the rest")
	assert.Contains(t, report, "- Evidence: CI config present (infra)")
}

func TestWriteTopReportStableTies(t *testing.T) {
	dir := t.TempDir()
	profiles := []ProfileDump{
		dump("c1", "alice", 50),
		dump("c2", "bob", 50),
	}
	path, err := WriteTopReport(dir, profiles, 10)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(b)
	assert.Less(t, strings.Index(report, "alice"), strings.Index(report, "bob"),
		"ties keep input order")
}

func TestWriteBatchSummary(t *testing.T) {
	dir := t.TempDir()
	summaries := []domain.BatchSummary{
		{BatchID: 1, Count: 2, AvgTotal: 50},
		{BatchID: 2, Count: 1, AvgTotal: 10, DeviationFlag: false},
	}
	path, err := WriteBatchSummary(dir, summaries)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)

	var s domain.BatchSummary
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &s))
	assert.Equal(t, 1, s.BatchID)
	assert.Equal(t, 50.0, s.AvgTotal)
}

func TestCreateRunDir(t *testing.T) {
	base := t.TempDir()
	dir, err := CreateRunDir(base)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, strings.HasPrefix(dir, base))
}
