package github

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gitscreen-engine/internal/domain"
)

type fakeFetcher struct {
	name  string
	prof  domain.RawProfile
	err   error
	calls int
}

func (f *fakeFetcher) Name() string { return f.name }

func (f *fakeFetcher) Fetch(_ context.Context, handle string) (domain.RawProfile, error) {
	f.calls++
	if f.err != nil {
		return domain.RawProfile{}, f.err
	}
	p := f.prof
	p.Handle = handle
	return p, nil
}

type fakeCache struct {
	hit  *domain.RawProfile
	puts []domain.RawProfile
}

func (c *fakeCache) Get(_ context.Context, _ string, _ time.Duration) (domain.RawProfile, bool, error) {
	if c.hit == nil {
		return domain.RawProfile{}, false, nil
	}
	return *c.hit, true, nil
}

func (c *fakeCache) Put(_ context.Context, profile domain.RawProfile) error {
	c.puts = append(c.puts, profile)
	return nil
}

func apiProfile(status domain.FetchStatus) domain.RawProfile {
	return domain.RawProfile{
		Provenance: domain.ProvenanceAPI,
		Status:     status,
		FetchedAt:  time.Now().UTC(),
	}
}

func TestProviderCacheHitRetagsProvenance(t *testing.T) {
	cached := apiProfile(domain.StatusOK)
	cached.Handle = "alice"
	cache := &fakeCache{hit: &cached}
	src := &fakeFetcher{name: "api", prof: apiProfile(domain.StatusOK)}

	p := NewProvider([]Fetcher{src}, cache, time.Hour, zap.NewNop())
	got := p.Fetch(context.Background(), "alice")

	assert.Equal(t, domain.ProvenanceCache, got.Provenance)
	assert.Equal(t, domain.StatusOK, got.Status, "cache hit keeps the snapshot's status")
	assert.Zero(t, src.calls, "cache hit short-circuits the sources")
}

func TestProviderFallsThroughToNextSource(t *testing.T) {
	api := &fakeFetcher{name: "api", err: errors.New("rate limited")}
	scraped := apiProfile(domain.StatusPartial)
	scraped.Provenance = domain.ProvenanceScrape
	scrape := &fakeFetcher{name: "scrape", prof: scraped}
	cache := &fakeCache{}

	p := NewProvider([]Fetcher{api, scrape}, cache, time.Hour, zap.NewNop())
	got := p.Fetch(context.Background(), "alice")

	assert.Equal(t, 1, api.calls)
	assert.Equal(t, 1, scrape.calls)
	assert.Equal(t, domain.ProvenanceScrape, got.Provenance)
	assert.Equal(t, domain.StatusPartial, got.Status)
	require.Len(t, cache.puts, 1, "successful fetch is cached")
}

func TestProviderDegradesToUnknown(t *testing.T) {
	api := &fakeFetcher{name: "api", err: errors.New("boom")}
	scrape := &fakeFetcher{name: "scrape", err: errors.New("blocked")}
	cache := &fakeCache{}

	p := NewProvider([]Fetcher{api, scrape}, cache, time.Hour, zap.NewNop())
	got := p.Fetch(context.Background(), "ghost")

	assert.Equal(t, "ghost", got.Handle)
	assert.Equal(t, domain.StatusUnknown, got.Status)
	assert.Equal(t, domain.ProvenanceScrape, got.Provenance, "tagged with the last source tried")
	assert.Empty(t, cache.puts, "unknown results are never cached")
}

func TestProviderNoCache(t *testing.T) {
	src := &fakeFetcher{name: "api", prof: apiProfile(domain.StatusOK)}
	p := NewProvider([]Fetcher{src}, nil, 0, zap.NewNop())

	got := p.Fetch(context.Background(), "alice")
	assert.Equal(t, domain.StatusOK, got.Status)
	assert.Equal(t, 1, src.calls)
}
