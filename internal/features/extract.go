// Package features reduces a RawProfile to the fixed-schema FeatureSet
// the scoring rubric runs on. Everything here is pure: no I/O, no clock.
package features

import (
	"sort"
	"strings"
	"time"

	"gitscreen-engine/internal/domain"
)

const maxTopRepos = 8

// Extract computes one FeatureSet from one RawProfile. Repos are sorted
// by name before any aggregation so the result is independent of the
// provider's ordering. An unknown-status profile yields an unknown
// FeatureSet; nothing is inferred from absence.
func Extract(profile domain.RawProfile, job domain.JobRequirement) domain.FeatureSet {
	windowDays := profile.Activity.WindowDays
	weeksInWindow := 0
	if windowDays > 0 {
		weeksInWindow = windowDays/7 + 1
	}

	if profile.Status == domain.StatusUnknown {
		return domain.FeatureSet{
			Status:            domain.StatusUnknown,
			TopRepos:          []string{},
			Languages:         []string{},
			HasCI:             domain.TriUnknown,
			HasTests:          domain.TriUnknown,
			HasReadme:         domain.TriUnknown,
			ReadmeWithInstall: domain.TriUnknown,
			JobFitTerms:       []string{},
			WindowDays:        windowDays,
			WeeksInWindow:     weeksInWindow,
		}
	}

	repos := make([]domain.RepoSummary, len(profile.Repos))
	copy(repos, profile.Repos)
	sort.Slice(repos, func(i, j int) bool { return repos[i].Name < repos[j].Name })

	fs := domain.FeatureSet{
		Status:            profile.Status,
		TopRepos:          []string{},
		Languages:         []string{},
		HasCI:             domain.TriUnknown,
		HasTests:          domain.TriUnknown,
		HasReadme:         domain.TriUnknown,
		ReadmeWithInstall: domain.TriUnknown,
		JobFitTerms:       []string{},
		WindowDays:        windowDays,
		WeeksInWindow:     weeksInWindow,
	}

	seenLang := map[string]bool{}
	cutoff := cutoffFor(profile, windowDays)
	topStars := 0

	for _, repo := range repos {
		if repo.Name == "" {
			continue
		}
		if len(fs.TopRepos) < maxTopRepos {
			fs.TopRepos = append(fs.TopRepos, repo.Name)
		}

		// Language breadth counts repos with activity inside the window.
		// Unknown push timestamps are included: unknown is never a penalty.
		if repo.Language != "" && activeInWindow(repo, cutoff) && !seenLang[repo.Language] {
			seenLang[repo.Language] = true
			fs.Languages = append(fs.Languages, repo.Language)
		}

		fs.TotalStars += repo.Stars
		fs.TotalForks += repo.Forks

		fs.HasCI = fs.HasCI.Or(repo.HasCI)
		fs.HasTests = fs.HasTests.Or(repo.HasTests)
		fs.HasReadme = fs.HasReadme.Or(repo.HasReadme)
		fs.ReadmeWithInstall = fs.ReadmeWithInstall.Or(installTri(repo))

		if repo.HasCI.True() {
			fs.AutomationSignals++
			if fs.CIRepo == "" {
				fs.CIRepo = repo.Name
			}
		}
		if repo.HasTests.True() && fs.TestsRepo == "" {
			fs.TestsRepo = repo.Name
		}
		if installTri(repo).True() && fs.InstallRepo == "" {
			fs.InstallRepo = repo.Name
		}
		if repo.HasScripts.True() {
			fs.AutomationSignals++
		}
		if repo.HasAIArtifacts.True() {
			fs.AIArtifactBonus = true
			if fs.AIArtifactRepo == "" {
				fs.AIArtifactRepo = repo.Name
			}
		}
		// first repo in name order wins star ties
		if fs.TopStarRepo == "" || repo.Stars > topStars {
			topStars = repo.Stars
			fs.TopStarRepo = repo.Name
		}
	}

	if profile.Activity.Known {
		fs.ActivityKnown = true
		fs.RecentCommits = profile.Activity.RecentCommits
		fs.RecentPRs = profile.Activity.RecentPRs
		fs.RecentIssues = profile.Activity.RecentIssues
		fs.SmallPRRatioMil = profile.Activity.SmallPRRatioMil
		for _, n := range profile.Activity.WeeklyEvents {
			if n > 0 {
				fs.ActiveWeeks++
			}
		}
	}

	fs.JobFitTerms = jobFit(job, fs.Languages, repos)
	return fs
}

// installTri narrows "README documents install/run" per repo: a repo
// without a README is a known false, an unscraped README stays unknown.
func installTri(repo domain.RepoSummary) domain.Tri {
	if repo.HasReadme == domain.TriTrue {
		return repo.ReadmeHasInstall
	}
	return repo.HasReadme
}

func cutoffFor(profile domain.RawProfile, windowDays int) time.Time {
	if windowDays <= 0 {
		return time.Time{}
	}
	return profile.FetchedAt.AddDate(0, 0, -windowDays)
}

func activeInWindow(repo domain.RepoSummary, cutoff time.Time) bool {
	if repo.PushedAt == nil || cutoff.IsZero() {
		return true
	}
	return !repo.PushedAt.Before(cutoff)
}

// jobFit matches job keywords against languages and repo topics only.
// Case-insensitive exact matching; no fuzzy anything.
func jobFit(job domain.JobRequirement, languages []string, repos []domain.RepoSummary) []string {
	matched := []string{}
	if job.Empty() {
		return matched
	}
	seen := map[string]bool{}
	match := func(term string) {
		term = strings.ToLower(term)
		if job.Contains(term) && !seen[term] {
			seen[term] = true
			matched = append(matched, term)
		}
	}
	for _, lang := range languages {
		match(lang)
	}
	for _, repo := range repos {
		for _, topic := range repo.Topics {
			match(topic)
		}
	}
	sort.Strings(matched) // keyword order is stable regardless of repo order
	return matched
}
