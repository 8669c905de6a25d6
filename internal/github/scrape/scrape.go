// Package scrape is the tokenless fallback evidence source: public
// github.com profile pages parsed with goquery. It sees repo cards but
// not file trees or events, so everything it cannot see stays unknown
// and the resulting profile is at best "partial".
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"gitscreen-engine/internal/domain"
)

type Scraper struct {
	hc       *http.Client
	maxRepos int
	log      *zap.Logger
}

func New(timeout time.Duration, maxRepos int, log *zap.Logger) *Scraper {
	return &Scraper{
		hc:       &http.Client{Timeout: timeout},
		maxRepos: maxRepos,
		log:      log,
	}
}

func (s *Scraper) Name() string { return "scrape" }

func (s *Scraper) Fetch(ctx context.Context, handle string) (domain.RawProfile, error) {
	return s.FetchProfile(ctx, handle)
}

// FetchProfile scrapes the profile header and the repositories tab.
// Status is always "partial": the scrape can never prove CI, tests or
// activity, only repo names and counters.
func (s *Scraper) FetchProfile(ctx context.Context, handle string) (domain.RawProfile, error) {
	profileDoc, err := s.fetch(ctx, "https://github.com/"+handle)
	if err != nil {
		return domain.RawProfile{}, fmt.Errorf("scrape profile %s: %w", handle, err)
	}

	p := domain.RawProfile{
		Handle:     handle,
		FetchedAt:  time.Now().UTC(),
		Provenance: domain.ProvenanceScrape,
		Status:     domain.StatusPartial,
		User: domain.UserInfo{
			Name: cleanText(profileDoc.Find(".p-name.vcard-fullname").First().Text()),
			Bio:  cleanText(profileDoc.Find(".p-note").First().Text()),
		},
		Activity: domain.Activity{Known: false},
	}

	reposDoc, err := s.fetch(ctx, "https://github.com/"+handle+"?tab=repositories")
	if err != nil {
		// header worked, repo tab didn't; keep what we have
		s.log.Warn("repo tab unavailable", zap.String("handle", handle), zap.Error(err))
		return p, nil
	}
	p.Repos = s.parseRepoCards(reposDoc)
	return p, nil
}

var starredRe = regexp.MustCompile(`^(\d+) users? starred this repository$`)
var forkedRe = regexp.MustCompile(`^(\d+) users? forked this repository$`)

func (s *Scraper) parseRepoCards(doc *goquery.Document) []domain.RepoSummary {
	var repos []domain.RepoSummary

	doc.Find("li[itemprop='owns']").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		name := cleanText(card.Find("a[itemprop='name codeRepository']").First().Text())
		if name == "" {
			return true
		}

		repo := domain.RepoSummary{
			Name:     name,
			Language: cleanText(card.Find("span[itemprop='programmingLanguage']").First().Text()),
			// file-tree evidence is invisible to the scraper
			HasReadme:        domain.TriUnknown,
			ReadmeHasInstall: domain.TriUnknown,
			ReadmeHasRun:     domain.TriUnknown,
			ReadmeHasTest:    domain.TriUnknown,
			HasTests:         domain.TriUnknown,
			HasCI:            domain.TriUnknown,
			HasScripts:       domain.TriUnknown,
			HasAIArtifacts:   domain.TriUnknown,
		}

		card.Find("[aria-label]").Each(func(_ int, el *goquery.Selection) {
			label, _ := el.Attr("aria-label")
			if m := starredRe.FindStringSubmatch(label); m != nil {
				repo.Stars, _ = strconv.Atoi(m[1])
			}
			if m := forkedRe.FindStringSubmatch(label); m != nil {
				repo.Forks, _ = strconv.Atoi(m[1])
			}
		})

		if dt, ok := card.Find("relative-time").First().Attr("datetime"); ok {
			if t, err := time.Parse(time.RFC3339, dt); err == nil {
				repo.PushedAt = &t
			}
		}

		repos = append(repos, repo)
		return len(repos) < s.maxRepos
	})

	return repos
}

func (s *Scraper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}
	return goquery.NewDocumentFromReader(res.Body)
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}
