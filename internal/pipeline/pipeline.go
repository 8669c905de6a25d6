// Package pipeline runs the screening flow: handle -> RawProfile ->
// FeatureSet -> ScoreRecord -> output row. Strictly sequential per
// candidate; the only blocking stage is the evidence fetch, and a
// failed fetch degrades that candidate instead of aborting the run.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gitscreen-engine/internal/config"
	"gitscreen-engine/internal/datasets"
	"gitscreen-engine/internal/domain"
	"gitscreen-engine/internal/features"
	"gitscreen-engine/internal/ingest"
	"gitscreen-engine/internal/output"
	"gitscreen-engine/internal/rank"
)

// candidateTimeout bounds one full fetch (repo hydration included).
const candidateTimeout = 2 * time.Minute

// Provider is the evidence source chain; see github.Provider.
type Provider interface {
	Fetch(ctx context.Context, handle string) domain.RawProfile
}

type Options struct {
	Config   config.Config
	Provider Provider
	Scorer   rank.Scorer
	Job      domain.JobRequirement
	Log      *zap.Logger

	// Progress is called after each candidate finishes; nil is fine.
	Progress func(done, total int, handle string)
}

type Result struct {
	Profiles  []output.ProfileDump
	Summaries []domain.BatchSummary

	RunDir       string
	ProfilesPath string
	ScoresPath   string
	ReportPath   string
	BatchPath    string
}

// Run screens candidates in input order and writes all run artifacts.
// The returned error is only ever an output/config problem; per-
// candidate data conditions are folded into the records themselves.
func Run(ctx context.Context, candidates []ingest.Candidate, opts Options) (Result, error) {
	cfg := opts.Config
	log := opts.Log

	batchSize := cfg.Processing.BatchSize
	if batchSize <= 0 {
		batchSize = len(candidates)
		if batchSize == 0 {
			batchSize = 1
		}
	}

	var res Result
	var derivedRows []datasets.DerivedRow
	var labelRows []datasets.LabelRow
	done := 0

	for batchStart, batchID := 0, 1; batchStart < len(candidates); batchStart, batchID = batchStart+batchSize, batchID+1 {
		batch := candidates[batchStart:min(batchStart+batchSize, len(candidates))]
		var batchRecords []domain.ScoreRecord

		for _, cand := range batch {
			done++
			if cand.Handle == "" {
				log.Warn("candidate without handle skipped", zap.String("candidate_id", cand.CandidateID))
				continue
			}

			fctx, cancel := context.WithTimeout(ctx, candidateTimeout)
			profile := opts.Provider.Fetch(fctx, cand.Handle)
			cancel()

			fs := features.Extract(profile, opts.Job)
			scored := opts.Scorer.Score(fs)

			record := domain.ScoreRecord{
				CandidateID:   cand.DisplayID(),
				CandidateName: cand.CandidateName,
				SourceFile:    cand.SourceFile,
				Handle:        cand.Handle,
				BatchID:       batchID,
				Provenance:    string(profile.Provenance),
				JobFit:        fs.JobFitTerms,
				Evidence:      scored.Evidence,
				Scores:        scored.Scores,
				Rationale:     scored.Rationale,
			}
			if err := record.Validate(); err != nil {
				log.Error("dropping invalid record", zap.String("handle", cand.Handle), zap.Error(err))
				continue
			}

			log.Info("scored",
				zap.String("handle", cand.Handle),
				zap.Int("total", record.Scores.Total),
				zap.String("provenance", record.Provenance),
				zap.String("status", string(fs.Status)))

			res.Profiles = append(res.Profiles, output.ProfileDump{ScoreRecord: record, Features: fs})
			batchRecords = append(batchRecords, record)

			if cfg.ResumeSamples.EnableStorage {
				derived, label := datasets.BuildPayload(cand, cfg.ResumeSamples.StoreFullText)
				derivedRows = append(derivedRows, derived)
				if label != nil {
					labelRows = append(labelRows, *label)
				}
			}

			if opts.Progress != nil {
				opts.Progress(done, len(candidates), cand.Handle)
			}
		}

		res.Summaries = append(res.Summaries,
			domain.SummarizeBatch(batchRecords, batchID, cfg.Processing.BatchDeviationThreshold))
	}

	var err error
	if res.RunDir, err = output.CreateRunDir(cfg.Output.RunsDir); err != nil {
		return res, err
	}
	if res.ProfilesPath, err = output.WriteProfilesJSONL(res.RunDir, res.Profiles); err != nil {
		return res, err
	}
	if res.ScoresPath, err = output.WriteScoresCSV(res.RunDir, res.Profiles); err != nil {
		return res, err
	}
	if res.ReportPath, err = output.WriteTopReport(res.RunDir, res.Profiles, cfg.Output.TopN); err != nil {
		return res, err
	}
	if res.BatchPath, err = output.WriteBatchSummary(res.RunDir, res.Summaries); err != nil {
		return res, err
	}

	if cfg.ResumeSamples.EnableStorage && (len(derivedRows) > 0 || len(labelRows) > 0) {
		dir, derr := datasets.EnsureDir(cfg.ResumeSamples.DatasetDir)
		if derr != nil {
			return res, derr
		}
		if len(labelRows) > 0 {
			if _, derr := datasets.AppendLabels(dir, labelRows); derr != nil {
				return res, derr
			}
		}
		if len(derivedRows) > 0 {
			if _, derr := datasets.AppendDerived(dir, derivedRows); derr != nil {
				return res, derr
			}
		}
	}

	return res, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
