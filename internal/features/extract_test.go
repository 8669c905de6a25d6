package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitscreen-engine/internal/domain"
)

var fetchedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func okProfile(repos ...domain.RepoSummary) domain.RawProfile {
	return domain.RawProfile{
		Handle:     "octocat",
		FetchedAt:  fetchedAt,
		Provenance: domain.ProvenanceAPI,
		Status:     domain.StatusOK,
		Repos:      repos,
		Activity:   domain.Activity{Known: true, WindowDays: 90},
	}
}

func ts(daysAgo int) *time.Time {
	t := fetchedAt.AddDate(0, 0, -daysAgo)
	return &t
}

func TestExtractUnknownProfile(t *testing.T) {
	fs := Extract(domain.UnknownProfile("ghost", domain.ProvenanceScrape), domain.JobRequirement{})
	assert.Equal(t, domain.StatusUnknown, fs.Status)
	assert.Equal(t, domain.TriUnknown, fs.HasCI)
	assert.Equal(t, domain.TriUnknown, fs.HasTests)
	assert.Empty(t, fs.TopRepos)
	assert.NotNil(t, fs.TopRepos, "slices stay non-nil for stable JSON")
	assert.NotNil(t, fs.JobFitTerms)
}

func TestExtractOrderIndependent(t *testing.T) {
	a := domain.RepoSummary{Name: "alpha", Stars: 3, Language: "Go", HasCI: domain.TriTrue}
	b := domain.RepoSummary{Name: "beta", Stars: 7, Language: "Rust", HasTests: domain.TriTrue}
	c := domain.RepoSummary{Name: "gamma", Stars: 1, Language: "Go"}

	fs1 := Extract(okProfile(a, b, c), domain.JobRequirement{})
	fs2 := Extract(okProfile(c, b, a), domain.JobRequirement{})
	assert.Equal(t, fs1, fs2, "feature extraction must not depend on provider ordering")

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, fs1.TopRepos)
	assert.Equal(t, 11, fs1.TotalStars)
	assert.Equal(t, "beta", fs1.TopStarRepo)
}

func TestExtractTriAggregation(t *testing.T) {
	fs := Extract(okProfile(
		domain.RepoSummary{Name: "a", HasCI: domain.TriFalse, HasTests: domain.TriUnknown},
		domain.RepoSummary{Name: "b", HasCI: domain.TriUnknown, HasTests: domain.TriUnknown},
	), domain.JobRequirement{})

	assert.Equal(t, domain.TriFalse, fs.HasCI, "known false beats unknown")
	assert.Equal(t, domain.TriUnknown, fs.HasTests, "all-unknown stays unknown")
}

func TestExtractCitationAnchors(t *testing.T) {
	fs := Extract(okProfile(
		domain.RepoSummary{Name: "zeta", HasCI: domain.TriTrue, HasTests: domain.TriTrue},
		domain.RepoSummary{Name: "acme", HasCI: domain.TriTrue},
	), domain.JobRequirement{})

	assert.Equal(t, "acme", fs.CIRepo, "lexicographically first evidencing repo wins")
	assert.Equal(t, "zeta", fs.TestsRepo)
	assert.Equal(t, 2, fs.AutomationSignals)
}

func TestExtractLanguageWindow(t *testing.T) {
	fs := Extract(okProfile(
		domain.RepoSummary{Name: "fresh", Language: "Go", PushedAt: ts(10)},
		domain.RepoSummary{Name: "stale", Language: "Rust", PushedAt: ts(200)},
		domain.RepoSummary{Name: "undated", Language: "Python"},
	), domain.JobRequirement{})

	// stale is outside the 90d window; undated counts (unknown is never
	// a penalty)
	assert.ElementsMatch(t, []string{"Go", "Python"}, fs.Languages)
}

func TestExtractInstallNarrowing(t *testing.T) {
	withInstall := Extract(okProfile(
		domain.RepoSummary{Name: "a", HasReadme: domain.TriTrue, ReadmeHasInstall: domain.TriTrue},
	), domain.JobRequirement{})
	assert.Equal(t, domain.TriTrue, withInstall.ReadmeWithInstall)
	assert.Equal(t, "a", withInstall.InstallRepo)

	noReadme := Extract(okProfile(
		domain.RepoSummary{Name: "a", HasReadme: domain.TriFalse},
	), domain.JobRequirement{})
	assert.Equal(t, domain.TriFalse, noReadme.ReadmeWithInstall, "no README is a known false")
}

func TestExtractActivity(t *testing.T) {
	p := okProfile(domain.RepoSummary{Name: "a"})
	p.Activity = domain.Activity{
		Known:           true,
		RecentCommits:   12,
		RecentPRs:       4,
		RecentIssues:    2,
		SmallPRRatioMil: 500,
		WeeklyEvents:    []int{3, 0, 2, 0, 1},
		WindowDays:      90,
	}

	fs := Extract(p, domain.JobRequirement{})
	require.True(t, fs.ActivityKnown)
	assert.Equal(t, 18, fs.TotalEvents())
	assert.Equal(t, 3, fs.ActiveWeeks)
	assert.Equal(t, 500, fs.SmallPRRatioMil)
	assert.Equal(t, 13, fs.WeeksInWindow)
}

func TestExtractJobFit(t *testing.T) {
	job := domain.NewJobRequirement([]string{"go", "kubernetes", "terraform"})
	fs := Extract(okProfile(
		domain.RepoSummary{Name: "infra", Language: "Go", Topics: []string{"Kubernetes", "helm"}},
	), job)

	// sorted keyword order, exact matches only
	assert.Equal(t, []string{"go", "kubernetes"}, fs.JobFitTerms)
	assert.Equal(t, 2, fs.JobFitCount())
}
