package domain

// FeatureSet is the fixed-schema signal vector derived from one
// RawProfile. Built once per candidate, read-only afterwards.
type FeatureSet struct {
	Status FetchStatus `json:"status"`

	// Engineering-readiness signals
	TopRepos          []string `json:"top_repos"`
	Languages         []string `json:"languages"`
	HasCI             Tri      `json:"has_ci"`
	HasTests          Tri      `json:"has_tests"`
	HasReadme         Tri      `json:"has_readme"`
	ReadmeWithInstall Tri      `json:"readme_with_install"`

	// Impact signals
	TotalStars int `json:"total_stars"`
	TotalForks int `json:"total_forks"`

	// Activity signals
	ActivityKnown   bool `json:"activity_known"`
	RecentCommits   int  `json:"recent_commits"`
	RecentPRs       int  `json:"recent_prs"`
	RecentIssues    int  `json:"recent_issues"`
	SmallPRRatioMil int  `json:"small_pr_ratio_mil"`
	ActiveWeeks     int  `json:"active_weeks"`
	WeeksInWindow   int  `json:"weeks_in_window"`
	WindowDays      int  `json:"activity_window_days"`

	// AI/automation signals
	AutomationSignals int  `json:"automation_signals"`
	AIArtifactBonus   bool `json:"ai_artifact_bonus"`

	// Job alignment
	JobFitTerms []string `json:"job_fit_terms"`

	// Citation anchors: lexicographically first repo evidencing each
	// signal, so rationale bullets can name a concrete source.
	CIRepo         string `json:"ci_repo,omitempty"`
	TestsRepo      string `json:"tests_repo,omitempty"`
	InstallRepo    string `json:"install_repo,omitempty"`
	AIArtifactRepo string `json:"ai_artifact_repo,omitempty"`
	TopStarRepo    string `json:"top_star_repo,omitempty"`
}

// JobFitCount is the number of job keywords matched by languages or
// repo topics.
func (f FeatureSet) JobFitCount() int { return len(f.JobFitTerms) }

// TotalEvents is the event count inside the activity window.
func (f FeatureSet) TotalEvents() int {
	return f.RecentCommits + f.RecentPRs + f.RecentIssues
}
