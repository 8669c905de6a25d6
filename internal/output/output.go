// Package output persists a run's artifacts. Field and column order is
// fixed so repeated runs over identical input diff cleanly.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gitscreen-engine/internal/domain"
)

// ProfileDump is one profiles.jsonl line: the score record plus the
// feature vector it came from.
type ProfileDump struct {
	domain.ScoreRecord
	Features domain.FeatureSet `json:"features"`
}

// CreateRunDir makes runs/<UTC timestamp> under base.
func CreateRunDir(base string) (string, error) {
	dir := filepath.Join(base, time.Now().UTC().Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}
	return dir, nil
}

func WriteProfilesJSONL(runDir string, profiles []ProfileDump) (string, error) {
	path := filepath.Join(runDir, "profiles.jsonl")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, p := range profiles {
		if err := enc.Encode(p); err != nil {
			return "", fmt.Errorf("write profiles.jsonl: %w", err)
		}
	}
	return path, nil
}

// scores.csv column order; append-only if it ever grows. The identity
// columns come first, then the score columns in their canonical order.
var scoreColumns = append([]string{
	"candidate_id",
	"candidate_name",
	"source_file",
	"handle",
}, domain.ScoreFields...)

func WriteScoresCSV(runDir string, profiles []ProfileDump) (string, error) {
	path := filepath.Join(runDir, "scores.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(scoreColumns); err != nil {
		return "", err
	}
	for _, p := range profiles {
		row := []string{
			p.CandidateID,
			p.CandidateName,
			p.SourceFile,
			p.Handle,
			strconv.Itoa(p.Scores.Engineering),
			strconv.Itoa(p.Scores.Impact),
			strconv.Itoa(p.Scores.Activity),
			strconv.Itoa(p.Scores.AIProductivity),
			strconv.Itoa(p.Scores.Total),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}

// WriteTopReport renders the top-N records by total score. The sort is
// stable: ties keep input order, so reruns stay diffable.
func WriteTopReport(runDir string, profiles []ProfileDump, topN int) (string, error) {
	path := filepath.Join(runDir, "top_report.md")

	ranked := make([]ProfileDump, len(profiles))
	copy(ranked, profiles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Scores.Total > ranked[j].Scores.Total
	})
	if topN < 0 {
		topN = 0
	}
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fmt.Fprintln(f, "# Top Candidates")
	fmt.Fprintln(f)
	fmt.Fprintf(f, "Generated: %s\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintln(f)

	for i, p := range ranked {
		fmt.Fprintf(f, "## %d. %s (%s)\n", i+1, p.CandidateID, p.Handle)
		fmt.Fprintf(f, "- TotalScore: %d\n", p.Scores.Total)
		fmt.Fprintf(f, "- Subscores: Engineering %d, Impact %d, Activity %d, AIProductivity %d\n",
			p.Scores.Engineering, p.Scores.Impact, p.Scores.Activity, p.Scores.AIProductivity)
		fmt.Fprintf(f, "- Source: %s (%s)\n", p.Provenance, p.Features.Status)
		if len(p.Evidence) == 0 {
			fmt.Fprintln(f, "- Evidence: none")
		} else {
			for _, bullet := range p.Evidence {
				fmt.Fprintf(f, "- Evidence: %s\n", bullet)
			}
		}
		fmt.Fprintln(f)
	}
	return path, nil
}

func WriteBatchSummary(runDir string, summaries []domain.BatchSummary) (string, error) {
	path := filepath.Join(runDir, "batch_summary.jsonl")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, s := range summaries {
		if err := enc.Encode(s); err != nil {
			return "", fmt.Errorf("write batch_summary.jsonl: %w", err)
		}
	}
	return path, nil
}
