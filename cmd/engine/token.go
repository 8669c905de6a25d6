package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitscreen-engine/internal/secrets"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the GitHub token in the OS keyring",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set <token>",
	Short: "Store a GitHub token in the OS keyring",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		log := newLogger()
		defer log.Sync()
		if err := secrets.SetGitHubToken(args[0]); err != nil {
			log.Fatal("storing token", zap.Error(err))
		}
		log.Info("token stored", zap.String("service", secrets.KeyringService))
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the GitHub token from the OS keyring",
	Run: func(_ *cobra.Command, _ []string) {
		log := newLogger()
		defer log.Sync()
		if err := secrets.DeleteGitHubToken(); err != nil {
			log.Fatal("removing token", zap.Error(err))
		}
		log.Info("token removed")
	},
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd, tokenClearCmd)
	rootCmd.AddCommand(tokenCmd)
}
