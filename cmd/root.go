package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rkwm713/makeready-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "makeready-cli",
	Short: "Utility pole attachment reconciliation",
	Long:  "Reconciles field-survey and engineering-model pole data into canonical per-pole records and a make-ready compliance report.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
