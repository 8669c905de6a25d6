package rank

import (
	"fmt"
	"strings"

	"gitscreen-engine/internal/config"
	"gitscreen-engine/internal/domain"
)

// WeightScorer applies the fixed four-dimension rubric. All arithmetic
// is integer and every input slice is consumed in a fixed order, so
// identical FeatureSets produce bit-identical Results. Each sub-score
// is clamped to its configured weight; the total is clamped to [0,100]
// as a final check.
type WeightScorer struct {
	Weights config.Weights
}

func (s WeightScorer) Score(fs domain.FeatureSet) Result {
	if fs.Status == domain.StatusUnknown {
		return Result{
			Scores:   domain.Scores{},
			Evidence: []string{},
			Rationale: []string{
				"Engineering: insufficient evidence",
				"Impact: insufficient evidence",
				"Activity: insufficient evidence",
				"AIProductivity: insufficient evidence",
			},
		}
	}

	var res Result
	res.Evidence = []string{}

	eng, engBits := s.scoreEngineering(fs)
	impact, impactBits := s.scoreImpact(fs)
	activity, activityLine, activityBits := s.scoreActivity(fs)
	aiProd, aiBits := s.scoreAIProductivity(fs)

	res.Scores = domain.Scores{
		Engineering:    eng,
		Impact:         impact,
		Activity:       activity,
		AIProductivity: aiProd,
	}
	res.Scores.Total = clamp(eng+impact+activity+aiProd, 0, 100)

	res.Rationale = append(res.Rationale, dimensionLine("Engineering", eng, engBits))
	res.Rationale = append(res.Rationale, dimensionLine("Impact", impact, impactBits))
	res.Rationale = append(res.Rationale, activityLine)
	res.Rationale = append(res.Rationale, dimensionLine("AIProductivity", aiProd, aiBits))

	res.Evidence = append(res.Evidence, engBits...)
	res.Evidence = append(res.Evidence, impactBits...)
	res.Evidence = append(res.Evidence, activityBits...)
	res.Evidence = append(res.Evidence, aiBits...)
	return res
}

func (s WeightScorer) scoreEngineering(fs domain.FeatureSet) (int, []string) {
	score := 0
	var bits []string

	if fs.HasCI.True() {
		score += 10
		bits = append(bits, "CI config present ("+fs.CIRepo+")")
	}
	if fs.HasTests.True() {
		score += 10
		bits = append(bits, "tests present ("+fs.TestsRepo+")")
	}
	if n := len(fs.Languages); n > 0 {
		score += capInt(n*4, 10)
		bits = append(bits, fmt.Sprintf("%d active languages (%s)", n, strings.Join(fs.Languages, ", ")))
	}
	if fs.ReadmeWithInstall.True() {
		score += 6
		bits = append(bits, "README documents install/run ("+fs.InstallRepo+")")
	}
	if pts := capInt((fs.RecentCommits+fs.RecentPRs)/5, 6); pts > 0 {
		score += pts
		bits = append(bits, fmt.Sprintf("%d commits and %d PRs in window", fs.RecentCommits, fs.RecentPRs))
	}
	if pts := capInt(fs.JobFitCount()*2, 6); pts > 0 {
		score += pts
		bits = append(bits, "job keywords matched: "+strings.Join(fs.JobFitTerms, ", "))
	}
	return capInt(score, s.Weights.Engineering), bits
}

// scoreImpact is monotonic and saturating: more stars/forks never lower
// it, and every term caps out so one outlier repo cannot dominate.
func (s WeightScorer) scoreImpact(fs domain.FeatureSet) (int, []string) {
	score := 0
	var bits []string

	if pts := capInt(fs.TotalStars/5, 12); pts > 0 {
		score += pts
		bits = append(bits, fmt.Sprintf("%d stars across repos (top: %s)", fs.TotalStars, fs.TopStarRepo))
	}
	if pts := capInt(fs.TotalForks/3, 6); pts > 0 {
		score += pts
		bits = append(bits, fmt.Sprintf("%d forks across repos", fs.TotalForks))
	}
	if fs.RecentPRs > 3 {
		score += 6
		bits = append(bits, fmt.Sprintf("%d PRs in window", fs.RecentPRs))
	}
	return capInt(score, s.Weights.Impact), bits
}

// scoreActivity returns its own rationale line because zero has two
// meanings here: "no activity in window" (evidence seen, nothing there)
// versus "insufficient evidence" (events not visible at all).
func (s WeightScorer) scoreActivity(fs domain.FeatureSet) (int, string, []string) {
	if !fs.ActivityKnown {
		return 0, "Activity: insufficient evidence (events not visible from this source)", nil
	}

	score := 0
	var bits []string
	if pts := capInt(fs.TotalEvents()/3, 10); pts > 0 {
		score += pts
		bits = append(bits, fmt.Sprintf("%d events in last %dd (%d commits, %d PRs, %d issues)",
			fs.TotalEvents(), fs.WindowDays, fs.RecentCommits, fs.RecentPRs, fs.RecentIssues))
	}
	if pts := capInt(fs.ActiveWeeks/2, 5); pts > 0 {
		score += pts
		bits = append(bits, fmt.Sprintf("active in %d of %d weeks", fs.ActiveWeeks, fs.WeeksInWindow))
	}
	score = capInt(score, s.Weights.Activity)

	if fs.TotalEvents() == 0 {
		return 0, "Activity: no activity in window", nil
	}
	if score == 0 {
		return 0, fmt.Sprintf("Activity: minimal (%d events in last %dd)", fs.TotalEvents(), fs.WindowDays), nil
	}
	return score, dimensionLine("Activity", score, bits), bits
}

// scoreAIProductivity is additive-only: no automation evidence means 0,
// never a deduction from anything else.
func (s WeightScorer) scoreAIProductivity(fs domain.FeatureSet) (int, []string) {
	score := 0
	var bits []string

	if pts := capInt(fs.AutomationSignals*3, 7); pts > 0 {
		score += pts
		bits = append(bits, fmt.Sprintf("%d automation artifacts (CI/scripts)", fs.AutomationSignals))
	}
	if pts := capInt(fs.SmallPRRatioMil*4/1000, 4); pts > 0 {
		score += pts
		bits = append(bits, fmt.Sprintf("small-PR ratio %d/1000", fs.SmallPRRatioMil))
	}
	if fs.ReadmeWithInstall.True() {
		score += 3
		bits = append(bits, "doc clarity: README install/run ("+fs.InstallRepo+")")
	}
	if fs.AIArtifactBonus {
		score++
		bits = append(bits, "AI workflow artifacts ("+fs.AIArtifactRepo+")")
	}
	return capInt(score, s.Weights.AIProductivity), bits
}

func dimensionLine(name string, score int, bits []string) string {
	if score <= 0 {
		return name + ": insufficient evidence"
	}
	return name + ": " + strings.Join(bits, "; ")
}

func capInt(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
