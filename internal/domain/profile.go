package domain

import (
	"bytes"
	"time"
)

// Provenance tags which source produced a RawProfile.
type Provenance string

const (
	ProvenanceAPI    Provenance = "api"
	ProvenanceScrape Provenance = "scrape"
	ProvenanceCache  Provenance = "cache"
)

// FetchStatus tags how complete a fetch attempt was. The three-way split
// matters downstream: rationale text for "unknown" differs from "ok with
// zero activity", so this must never collapse into a bool.
type FetchStatus string

const (
	StatusOK      FetchStatus = "ok"
	StatusPartial FetchStatus = "partial"
	StatusUnknown FetchStatus = "unknown"
)

// Tri is a three-valued boolean for evidence the scraper cannot see.
// JSON: null = unknown, so "known false" never silently becomes "absent".
type Tri int8

const (
	TriUnknown Tri = iota
	TriFalse
	TriTrue
)

func TriOf(b bool) Tri {
	if b {
		return TriTrue
	}
	return TriFalse
}

func (t Tri) True() bool { return t == TriTrue }

// Or merges per-repo flags into an aggregate: any true wins, a known
// false beats unknown.
func (t Tri) Or(o Tri) Tri {
	switch {
	case t == TriTrue || o == TriTrue:
		return TriTrue
	case t == TriFalse || o == TriFalse:
		return TriFalse
	default:
		return TriUnknown
	}
}

var jsonNull = []byte("null")

func (t Tri) MarshalJSON() ([]byte, error) {
	switch t {
	case TriTrue:
		return []byte("true"), nil
	case TriFalse:
		return []byte("false"), nil
	default:
		return jsonNull, nil
	}
}

func (t *Tri) UnmarshalJSON(b []byte) error {
	switch {
	case bytes.Equal(b, []byte("true")):
		*t = TriTrue
	case bytes.Equal(b, []byte("false")):
		*t = TriFalse
	default:
		*t = TriUnknown
	}
	return nil
}

// RepoSummary is one repository as seen by the evidence provider. The
// API path fills the Tri flags from concrete file markers; the scrape
// path leaves them unknown.
type RepoSummary struct {
	Name             string     `json:"name"`
	Stars            int        `json:"stars"`
	Forks            int        `json:"forks"`
	Language         string     `json:"language,omitempty"`
	Topics           []string   `json:"topics,omitempty"`
	PushedAt         *time.Time `json:"pushed_at,omitempty"`
	HasReadme        Tri        `json:"has_readme"`
	ReadmeHasInstall Tri        `json:"readme_has_install"`
	ReadmeHasRun     Tri        `json:"readme_has_run"`
	ReadmeHasTest    Tri        `json:"readme_has_test"`
	HasTests         Tri        `json:"has_tests"`
	HasCI            Tri        `json:"has_ci"`
	HasScripts       Tri        `json:"has_scripts"`
	HasAIArtifacts   Tri        `json:"has_ai_artifacts"`
}

// Activity is the event window summary. Known is false when the source
// could not see events at all (scrape path), which is different from a
// window with zero events.
type Activity struct {
	Known            bool  `json:"known"`
	RecentCommits    int   `json:"recent_commits"`
	RecentPRs        int   `json:"recent_prs"`
	RecentIssues     int   `json:"recent_issues"`
	SmallPRRatioMil  int   `json:"small_pr_ratio_mil"` // thousandths, keeps math integral
	WeeklyEvents     []int `json:"weekly_events"`      // bucket 0 = most recent week
	WindowDays       int   `json:"window_days"`
}

// UserInfo is the public account header.
type UserInfo struct {
	Name        string `json:"name,omitempty"`
	Company     string `json:"company,omitempty"`
	Bio         string `json:"bio,omitempty"`
	PublicRepos *int   `json:"public_repos,omitempty"`
	Followers   *int   `json:"followers,omitempty"`
}

// RawProfile is the unprocessed snapshot for one handle: one fetch
// attempt, one provenance tag. No merging across sources.
type RawProfile struct {
	Handle     string        `json:"handle"`
	FetchedAt  time.Time     `json:"fetched_at"`
	Provenance Provenance    `json:"provenance"`
	Status     FetchStatus   `json:"status"`
	User       UserInfo      `json:"user"`
	Repos      []RepoSummary `json:"repos"`
	Activity   Activity      `json:"activity"`
}

// UnknownProfile is what a failed fetch degrades to. The pipeline keeps
// going; scoring turns this into an explicit "insufficient evidence".
func UnknownProfile(handle string, prov Provenance) RawProfile {
	return RawProfile{
		Handle:     handle,
		FetchedAt:  time.Now().UTC(),
		Provenance: prov,
		Status:     StatusUnknown,
	}
}
