package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func (v Validation) Error() string {
	return "invalid config: " + strings.Join(v.Errors, "; ")
}

// NormalizeAndValidate returns a normalized copy plus everything wrong
// with it. Config errors are the one failure class that halts a run:
// they skew every candidate's totals the same silent way.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	// ---- Normalization ----

	out.GitHub.TokenEnv = strings.TrimSpace(out.GitHub.TokenEnv)
	if out.GitHub.TokenEnv == "" {
		out.GitHub.TokenEnv = "GITHUB_TOKEN"
	}
	if out.Output.RunsDir == "" {
		out.Output.RunsDir = "runs"
	}
	if out.ResumeSamples.DatasetDir == "" {
		out.ResumeSamples.DatasetDir = "datasets/resume_samples"
	}
	if out.GitHub.Burst <= 0 {
		out.GitHub.Burst = 1
	}

	// ---- Validation rules ----

	w := out.Scoring.Weights
	if w.Engineering < 0 || w.Impact < 0 || w.Activity < 0 || w.AIProductivity < 0 {
		res.addErr("scoring.weights must all be >= 0 (got %+v)", w)
	}
	if w.Sum() == 0 {
		res.addErr("scoring.weights sum to 0; every candidate would score 0")
	}
	if w.Sum() > 100 {
		res.addErr("scoring.weights sum to %d; totals are capped at 100", w.Sum())
	} else if w.Sum() > 0 && w.Sum() < 100 {
		res.addWarn("scoring.weights sum to %d (< 100); totals will never reach 100", w.Sum())
	}

	if out.Activity.WindowDays <= 0 {
		res.addErr("activity.window_days must be > 0")
	} else if out.Activity.WindowDays < 14 {
		res.addWarn("activity.window_days is very short (%d); weekly consistency means little", out.Activity.WindowDays)
	}

	if out.GitHub.CacheTTLHours < 0 {
		res.addErr("github.cache_ttl_hours must be >= 0")
	}
	if out.GitHub.RequestTimeoutSec <= 0 {
		res.addErr("github.request_timeout_sec must be > 0")
	}
	if out.GitHub.PerHandleMaxRepos <= 0 {
		res.addErr("github.per_handle_max_repos must be > 0")
	}
	if out.GitHub.RequestsPerSec <= 0 {
		res.addErr("github.requests_per_sec must be > 0")
	}

	if out.Output.TopN <= 0 {
		res.addWarn("output.top_n <= 0; top report will list nothing")
	}
	if out.Processing.BatchDeviationThreshold < 0 {
		res.addErr("processing.batch_deviation_threshold must be >= 0")
	}

	return out, res
}
