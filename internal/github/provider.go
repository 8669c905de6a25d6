package github

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gitscreen-engine/internal/domain"
)

// Fetcher is one evidence source (REST client or scraper).
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, handle string) (domain.RawProfile, error)
}

// Cache memoizes provider results per handle. Implemented by the store;
// the provider treats it as a pass-through that may short-circuit.
type Cache interface {
	Get(ctx context.Context, handle string, ttl time.Duration) (domain.RawProfile, bool, error)
	Put(ctx context.Context, profile domain.RawProfile) error
}

// Provider chains cache -> sources. One fetch attempt per candidate per
// run; every failure degrades to an unknown-status profile instead of
// erroring, so a dead handle never aborts a run. A cache hit keeps the
// snapshot's status but is re-tagged with provenance "cache".
type Provider struct {
	sources []Fetcher
	cache   Cache
	ttl     time.Duration
	log     *zap.Logger
}

func NewProvider(sources []Fetcher, cache Cache, ttl time.Duration, log *zap.Logger) *Provider {
	return &Provider{sources: sources, cache: cache, ttl: ttl, log: log}
}

func (p *Provider) Fetch(ctx context.Context, handle string) domain.RawProfile {
	if p.cache != nil {
		cached, ok, err := p.cache.Get(ctx, handle, p.ttl)
		if err != nil {
			p.log.Warn("cache read failed", zap.String("handle", handle), zap.Error(err))
		} else if ok {
			cached.Provenance = domain.ProvenanceCache
			return cached
		}
	}

	// Sources in preference order; last successful fetch wins, no
	// merging of partial data across provenances.
	for _, src := range p.sources {
		profile, err := src.Fetch(ctx, handle)
		if err != nil {
			p.log.Warn("fetch failed",
				zap.String("source", src.Name()),
				zap.String("handle", handle),
				zap.Error(err))
			continue
		}
		if p.cache != nil && profile.Status != domain.StatusUnknown {
			if err := p.cache.Put(ctx, profile); err != nil {
				p.log.Warn("cache write failed", zap.String("handle", handle), zap.Error(err))
			}
		}
		return profile
	}

	return domain.UnknownProfile(handle, lastProvenance(p.sources))
}

func lastProvenance(sources []Fetcher) domain.Provenance {
	if len(sources) == 0 {
		return domain.ProvenanceAPI
	}
	switch sources[len(sources)-1].Name() {
	case "scrape":
		return domain.ProvenanceScrape
	default:
		return domain.ProvenanceAPI
	}
}
