package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitscreen-engine/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db.Pool))
}

func snapshot(handle string, fetchedAt time.Time) domain.RawProfile {
	return domain.RawProfile{
		Handle:     handle,
		FetchedAt:  fetchedAt,
		Provenance: domain.ProvenanceAPI,
		Status:     domain.StatusOK,
		Repos: []domain.RepoSummary{
			{Name: "widget", Stars: 5, HasCI: domain.TriTrue, HasTests: domain.TriUnknown},
		},
		Activity: domain.Activity{Known: true, RecentCommits: 3, WindowDays: 90},
	}
}

func TestProfileCacheRoundtrip(t *testing.T) {
	db := openTestDB(t)
	cache := ProfileCache{DB: db.Pool}
	ctx := context.Background()

	put := snapshot("alice", time.Now().UTC())
	require.NoError(t, cache.Put(ctx, put))

	got, ok, err := cache.Get(ctx, "alice", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, put.Handle, got.Handle)
	assert.Equal(t, put.Status, got.Status)
	require.Len(t, got.Repos, 1)
	// Tri flags survive the JSON trip through the cache
	assert.Equal(t, domain.TriTrue, got.Repos[0].HasCI)
	assert.Equal(t, domain.TriUnknown, got.Repos[0].HasTests)
}

func TestProfileCacheMiss(t *testing.T) {
	db := openTestDB(t)
	cache := ProfileCache{DB: db.Pool}

	_, ok, err := cache.Get(context.Background(), "nobody", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfileCacheExpiry(t *testing.T) {
	db := openTestDB(t)
	cache := ProfileCache{DB: db.Pool}
	ctx := context.Background()

	stale := snapshot("alice", time.Now().UTC().Add(-48*time.Hour))
	require.NoError(t, cache.Put(ctx, stale))

	_, ok, err := cache.Get(ctx, "alice", 24*time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "expired snapshot behaves like a miss")

	deleted, err := CleanupExpired(ctx, db.Pool, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestProfileCachePutOverwrites(t *testing.T) {
	db := openTestDB(t)
	cache := ProfileCache{DB: db.Pool}
	ctx := context.Background()

	first := snapshot("alice", time.Now().UTC())
	require.NoError(t, cache.Put(ctx, first))

	second := first
	second.Repos = nil
	second.Status = domain.StatusPartial
	require.NoError(t, cache.Put(ctx, second))

	got, ok, err := cache.Get(ctx, "alice", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.StatusPartial, got.Status)
	assert.Empty(t, got.Repos)
}

func TestRunsBookkeeping(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := BeginRun(ctx, db.Pool)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, FinishRun(ctx, db.Pool, id, 5, "runs/20260301_120000", "runs/20260301_120000/scores.csv", ""))

	run, err := GetRun(ctx, db.Pool, id)
	require.NoError(t, err)
	assert.Equal(t, 5, run.Candidates)
	assert.Equal(t, "runs/20260301_120000/scores.csv", run.ScoresPath)
	assert.Empty(t, run.Error)
	assert.NotEmpty(t, run.FinishedAt)

	runs, err := ListRuns(ctx, db.Pool, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
}
