package main

import (
	stdlog "log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitscreen-engine/internal/logger"
)

const app = "gitscreen"

var (
	// Used for flags.
	flagDataDir string
	flagDebug   bool
	flagJSON    bool

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "gitscreen screens and ranks candidates from their public GitHub evidence",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "engine data directory (default $GITSCREEN_DATA_DIR or .)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	cobra.OnInitialize(func() {
		flagDebug, _ = rootCmd.PersistentFlags().GetBool("debug")
		flagJSON, _ = rootCmd.PersistentFlags().GetBool("json")
	})
}

func newLogger() *zap.Logger {
	l, err := logger.New(flagJSON, flagDebug)
	if err != nil {
		stdlog.Fatalf("creating a logger: %s", err)
	}
	return l
}
