package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gitscreen-engine/internal/domain"
)

// ProfileCache memoizes evidence-provider snapshots per handle with a
// TTL. It satisfies the provider's Cache interface.
type ProfileCache struct {
	DB *sql.DB
}

// Get returns the cached snapshot for handle when one exists and is
// younger than ttl. Expired or unreadable rows behave like a miss.
func (c ProfileCache) Get(ctx context.Context, handle string, ttl time.Duration) (domain.RawProfile, bool, error) {
	var payload, fetchedAt string
	err := c.DB.QueryRowContext(ctx, `
SELECT payload, fetched_at FROM profile_cache WHERE handle = ?;`, handle).
		Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RawProfile{}, false, nil
	}
	if err != nil {
		return domain.RawProfile{}, false, fmt.Errorf("cache get %s: %w", handle, err)
	}

	ts, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil || time.Since(ts) > ttl {
		return domain.RawProfile{}, false, nil
	}

	var profile domain.RawProfile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		// stale schema; treat as a miss rather than poisoning the run
		return domain.RawProfile{}, false, nil
	}
	return profile, true, nil
}

func (c ProfileCache) Put(ctx context.Context, profile domain.RawProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", profile.Handle, err)
	}
	_, err = c.DB.ExecContext(ctx, `
INSERT OR REPLACE INTO profile_cache(handle, payload, provenance, status, fetched_at)
VALUES(?,?,?,?,?);`,
		profile.Handle,
		string(payload),
		string(profile.Provenance),
		string(profile.Status),
		profile.FetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("cache put %s: %w", profile.Handle, err)
	}
	return nil
}

// CleanupExpired drops rows older than ttl. Run periodically in serve
// mode; a run-once CLI never needs it.
func CleanupExpired(ctx context.Context, db *sql.DB, ttl time.Duration) (deleted int64, err error) {
	cutoff := time.Now().UTC().Add(-ttl).Format(time.RFC3339)
	res, err := db.ExecContext(ctx, `DELETE FROM profile_cache WHERE fetched_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cache cleanup: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
