package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/investor-match/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "investor-match",
	Short: "Investor matching pipeline for startup pitches",
	Long:  "Builds canonical investor profiles from heterogeneous spreadsheet exports, resolves contacts across sources, and ranks investors against a pitch by keyword or via Claude.",
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
