package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Screen the candidate list once and write the run artifacts",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("candidates", "c", "candidates.csv", "candidate CSV to screen")
	runCmd.Flags().String("job", "job_description.txt", "job description used for fit keywords")
	runCmd.Flags().Bool("store-full-resume", false, "keep full resume text in the sample dataset")
}

func run(cmd *cobra.Command) {
	log := newLogger()
	defer log.Sync()

	env, err := openEngine(log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer env.db.Close()

	cfg := env.cfg
	if full, _ := cmd.Flags().GetBool("store-full-resume"); full {
		cfg.ResumeSamples.StoreFullText = true
	}

	candidatesPath, _ := cmd.Flags().GetString("candidates")
	jobPath, _ := cmd.Flags().GetString("job")

	log.Info("starting screening",
		zap.String("version", version),
		zap.String("candidates", candidatesPath),
		zap.String("config", env.userCfgPath))

	res, err := screenOnce(context.Background(), env, cfg, candidatesPath, jobPath, nil)
	if err != nil {
		log.Fatal("screening failed", zap.Error(err))
	}

	log.Info("screening finished",
		zap.String("run_id", res.RunID),
		zap.Int("scored", res.Scored),
		zap.String("run_dir", res.RunDir),
		zap.String("scores", res.ScoresPath))
}
