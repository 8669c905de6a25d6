package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"gitscreen-engine/internal/config"
	"gitscreen-engine/internal/github"
	"gitscreen-engine/internal/github/scrape"
	"gitscreen-engine/internal/httpapi"
	"gitscreen-engine/internal/ingest"
	"gitscreen-engine/internal/pipeline"
	"gitscreen-engine/internal/rank"
	"gitscreen-engine/internal/secrets"
	"gitscreen-engine/internal/store"
)

// engineEnv is everything a command needs after bootstrap.
type engineEnv struct {
	dataDir     string
	userCfgPath string
	cfg         config.Config
	db          *store.DB
	log         *zap.Logger
}

func openEngine(log *zap.Logger) (*engineEnv, error) {
	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = os.Getenv("GITSCREEN_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	userCfgPath, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
	if err != nil {
		return nil, fmt.Errorf("config bootstrap: %w", err)
	}

	loaded, err := config.Load(userCfgPath)
	if err != nil {
		return nil, fmt.Errorf("config load (%s): %w", userCfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(loaded)
	if !vr.OK() {
		return nil, errors.New(vr.Error())
	}
	for _, warn := range vr.Warnings {
		log.Warn("config", zap.String("warning", warn))
	}

	db, err := store.Open(filepath.Join(dataDir, "gitscreen.db"))
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(db.Pool); err != nil {
		db.Close()
		return nil, err
	}

	return &engineEnv{
		dataDir:     dataDir,
		userCfgPath: userCfgPath,
		cfg:         cfg,
		db:          db,
		log:         log,
	}, nil
}

// newProvider builds the evidence source chain: REST API when a token
// is available, HTML scrape as the tokenless fallback, SQLite cache in
// front of both.
func newProvider(cfg config.Config, env *engineEnv) *github.Provider {
	timeout := time.Duration(cfg.GitHub.RequestTimeoutSec) * time.Second
	limiter := github.NewHostLimiter(cfg.GitHub.RequestsPerSec, cfg.GitHub.Burst)

	var sources []github.Fetcher
	if token := secrets.GitHubToken(cfg.GitHub.TokenEnv); token != "" {
		sources = append(sources, github.NewClient(token, timeout, limiter,
			cfg.GitHub.PerHandleMaxRepos, cfg.Activity.WindowDays, env.log))
	} else {
		env.log.Warn("no GitHub token; running on HTML scraping only",
			zap.String("hint", "set "+cfg.GitHub.TokenEnv+" or run '"+app+" token set'"))
	}
	sources = append(sources, scrape.New(timeout, cfg.GitHub.PerHandleMaxRepos, env.log))

	var cache github.Cache
	if cfg.GitHub.CacheTTLHours > 0 {
		cache = store.ProfileCache{DB: env.db.Pool}
	}
	ttl := time.Duration(cfg.GitHub.CacheTTLHours) * time.Hour
	return github.NewProvider(sources, cache, ttl, env.log)
}

// screenOnce runs one full screening under the data-dir lock and
// records it in the runs table. Used by both the run command and the
// serve-mode POST /screen/run.
func screenOnce(ctx context.Context, env *engineEnv, cfg config.Config, candidatesPath, jobPath string,
	progress func(done, total int, handle string)) (httpapi.ScreenResult, error) {

	lock := flock.New(filepath.Join(env.dataDir, "engine.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return httpapi.ScreenResult{}, fmt.Errorf("run lock: %w", err)
	}
	if !ok {
		return httpapi.ScreenResult{}, errors.New("another screening run holds the data-dir lock")
	}
	defer lock.Unlock()

	candidates, err := ingest.LoadCandidates(candidatesPath)
	if err != nil {
		return httpapi.ScreenResult{}, err
	}
	job, err := ingest.LoadJobRequirement(jobPath)
	if err != nil {
		return httpapi.ScreenResult{}, err
	}

	runID, err := store.BeginRun(ctx, env.db.Pool)
	if err != nil {
		return httpapi.ScreenResult{}, err
	}

	res, runErr := pipeline.Run(ctx, candidates, pipeline.Options{
		Config:   cfg,
		Provider: newProvider(cfg, env),
		Scorer:   rank.WeightScorer{Weights: cfg.Scoring.Weights},
		Job:      job,
		Log:      env.log,
		Progress: progress,
	})

	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
	}
	if ferr := store.FinishRun(ctx, env.db.Pool, runID, len(res.Profiles), res.RunDir, res.ScoresPath, errMsg); ferr != nil {
		env.log.Warn("run bookkeeping failed", zap.String("run_id", runID), zap.Error(ferr))
	}

	return httpapi.ScreenResult{
		RunID:      runID,
		Scored:     len(res.Profiles),
		RunDir:     res.RunDir,
		ScoresPath: res.ScoresPath,
	}, runErr
}
