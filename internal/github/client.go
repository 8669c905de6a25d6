// Package github is the evidence provider: it turns a handle into a
// RawProfile via the REST API when a token is available, or a
// best-effort HTML scrape otherwise. A cache sits in front of both.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitscreen-engine/internal/domain"
	"gitscreen-engine/internal/features"
)

const apiBase = "https://api.github.com"

// hydrateConcurrency bounds per-repo detail requests. Results land in
// fixed slots so the output order never depends on goroutine timing.
const hydrateConcurrency = 4

type Client struct {
	token      string
	hc         *http.Client
	limiter    *HostLimiter
	maxRepos   int
	windowDays int
	log        *zap.Logger
}

func NewClient(token string, timeout time.Duration, limiter *HostLimiter, maxRepos, windowDays int, log *zap.Logger) *Client {
	return &Client{
		token:      token,
		hc:         &http.Client{Timeout: timeout},
		limiter:    limiter,
		maxRepos:   maxRepos,
		windowDays: windowDays,
		log:        log,
	}
}

func (c *Client) Name() string { return "api" }

func (c *Client) Fetch(ctx context.Context, handle string) (domain.RawProfile, error) {
	return c.FetchProfile(ctx, handle, c.windowDays)
}

type apiUser struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

type apiRepo struct {
	Name      string   `json:"name"`
	Stars     int      `json:"stargazers_count"`
	Forks     int      `json:"forks_count"`
	Language  string   `json:"language"`
	Topics    []string `json:"topics"`
	PushedAt  string   `json:"pushed_at"`
	UpdatedAt string   `json:"updated_at"`
	Owner     struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type apiReadme struct {
	Content string `json:"content"`
}

type apiContentsEntry struct {
	Path string `json:"path"`
}

type apiWorkflows struct {
	Workflows []struct {
		Path string `json:"path"`
	} `json:"workflows"`
}

type apiEvent struct {
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	Payload   struct {
		Commits     []json.RawMessage `json:"commits"`
		PullRequest *struct {
			Additions *int `json:"additions"`
			Deletions *int `json:"deletions"`
		} `json:"pull_request"`
	} `json:"payload"`
}

// FetchProfile collects repos, per-repo evidence markers and the public
// event window for one handle. Partial hydration failures degrade the
// status to "partial" instead of failing the candidate.
func (c *Client) FetchProfile(ctx context.Context, handle string, windowDays int) (domain.RawProfile, error) {
	now := time.Now().UTC()

	var user apiUser
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s", apiBase, handle), &user); err != nil {
		return domain.RawProfile{}, fmt.Errorf("github user %s: %w", handle, err)
	}

	var rawRepos []apiRepo
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated", apiBase, handle), &rawRepos); err != nil {
		return domain.RawProfile{}, fmt.Errorf("github repos %s: %w", handle, err)
	}
	sort.SliceStable(rawRepos, func(i, j int) bool { return rawRepos[i].UpdatedAt > rawRepos[j].UpdatedAt })
	if len(rawRepos) > c.maxRepos {
		rawRepos = rawRepos[:c.maxRepos]
	}

	var partial atomic.Bool
	repos := make([]domain.RepoSummary, len(rawRepos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(hydrateConcurrency)
	for i, r := range rawRepos {
		if r.Name == "" {
			continue
		}
		i, r := i, r
		g.Go(func() error {
			repos[i] = c.hydrateRepo(gctx, handle, r, &partial)
			return nil // best-effort: hydration never cancels siblings
		})
	}
	_ = g.Wait()

	// drop slots left empty by nameless entries
	out := repos[:0]
	for _, r := range repos {
		if r.Name != "" {
			out = append(out, r)
		}
	}

	activity, actErr := c.collectActivity(ctx, handle, windowDays, now)
	if actErr != nil {
		c.log.Warn("events unavailable", zap.String("handle", handle), zap.Error(actErr))
		partial.Store(true)
	}

	status := domain.StatusOK
	if partial.Load() {
		status = domain.StatusPartial
	}

	publicRepos, followers := user.PublicRepos, user.Followers
	return domain.RawProfile{
		Handle:     handle,
		FetchedAt:  now,
		Provenance: domain.ProvenanceAPI,
		Status:     status,
		User: domain.UserInfo{
			Name:        user.Name,
			Company:     user.Company,
			Bio:         user.Bio,
			PublicRepos: &publicRepos,
			Followers:   &followers,
		},
		Repos:    out,
		Activity: activity,
	}, nil
}

func (c *Client) hydrateRepo(ctx context.Context, handle string, r apiRepo, partial *atomic.Bool) domain.RepoSummary {
	owner := r.Owner.Login
	if owner == "" {
		owner = handle
	}

	summary := domain.RepoSummary{
		Name:     r.Name,
		Stars:    r.Stars,
		Forks:    r.Forks,
		Language: r.Language,
		Topics:   r.Topics,
	}
	if t, err := time.Parse(time.RFC3339, r.PushedAt); err == nil {
		summary.PushedAt = &t
	}

	readmeText := ""
	var readme apiReadme
	switch err := c.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s/readme", apiBase, owner, r.Name), &readme); {
	case err == nil && readme.Content != "":
		if b, decErr := base64.StdEncoding.DecodeString(readme.Content); decErr == nil {
			readmeText = string(b)
		}
	case isNotFound(err):
		// no README is a known fact, not a failure
	case err != nil:
		partial.Store(true)
	}
	flags := features.AnalyzeReadme(readmeText)
	summary.HasReadme = domain.TriOf(flags.HasReadme)
	summary.ReadmeHasInstall = domain.TriOf(flags.HasInstall)
	summary.ReadmeHasRun = domain.TriOf(flags.HasRun)
	summary.ReadmeHasTest = domain.TriOf(flags.HasTest)

	var paths []string
	var contents []apiContentsEntry
	if err := c.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s/contents/", apiBase, owner, r.Name), &contents); err != nil {
		if !isNotFound(err) {
			partial.Store(true)
		}
	} else {
		for _, e := range contents {
			if e.Path != "" {
				paths = append(paths, e.Path)
			}
		}
	}

	var wf apiWorkflows
	if err := c.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s/actions/workflows", apiBase, owner, r.Name), &wf); err != nil {
		if !isNotFound(err) {
			partial.Store(true)
		}
	} else {
		for _, w := range wf.Workflows {
			if w.Path != "" {
				paths = append(paths, w.Path)
			}
		}
	}

	summary.HasTests = domain.TriOf(features.DetectTests(paths))
	summary.HasCI = domain.TriOf(features.DetectCI(paths))
	summary.HasScripts = domain.TriOf(features.DetectScripts(paths))
	summary.HasAIArtifacts = domain.TriOf(features.DetectAIArtifacts(paths, readmeText))
	return summary
}

func (c *Client) collectActivity(ctx context.Context, handle string, windowDays int, now time.Time) (domain.Activity, error) {
	var events []apiEvent
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s/events/public?per_page=100", apiBase, handle), &events); err != nil {
		return domain.Activity{WindowDays: windowDays}, err
	}

	act := domain.Activity{
		Known:        true,
		WindowDays:   windowDays,
		WeeklyEvents: make([]int, windowDays/7+1),
	}
	window := time.Duration(windowDays) * 24 * time.Hour
	smallPRs := 0

	for _, ev := range events {
		created, err := time.Parse(time.RFC3339, ev.CreatedAt)
		if err != nil {
			continue
		}
		age := now.Sub(created)
		if age < 0 || age > window {
			continue
		}
		week := int(age / (7 * 24 * time.Hour))
		if week >= 0 && week < len(act.WeeklyEvents) {
			act.WeeklyEvents[week]++
		}

		switch ev.Type {
		case "PushEvent":
			act.RecentCommits += len(ev.Payload.Commits)
		case "PullRequestEvent":
			act.RecentPRs++
			if pr := ev.Payload.PullRequest; pr != nil && pr.Additions != nil && pr.Deletions != nil {
				if *pr.Additions+*pr.Deletions <= 200 {
					smallPRs++
				}
			}
		case "IssuesEvent":
			act.RecentIssues++
		}
	}

	if act.RecentPRs > 0 {
		act.SmallPRRatioMil = smallPRs * 1000 / act.RecentPRs
	}
	return act, nil
}

type httpStatusError struct {
	status int
	url    string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d from %s", e.status, e.url)
}

func isNotFound(err error) bool {
	se, ok := err.(*httpStatusError)
	return ok && se.status == http.StatusNotFound
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	if err := c.limiter.WaitURL(ctx, url); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return &httpStatusError{status: res.StatusCode, url: url}
	}
	return json.NewDecoder(res.Body).Decode(v)
}
