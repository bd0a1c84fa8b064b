package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/investor-match/internal/store"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build investor profiles and persist them to the local index",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		profiles, err := buildFromData()
		if err != nil {
			return err
		}

		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}
		if err := st.SaveProfiles(ctx, profiles); err != nil {
			return err
		}

		zap.L().Info("index built",
			zap.Int("profiles", len(profiles)),
			zap.String("path", cfg.Store.Path),
		)
		fmt.Printf("Indexed %d investor profiles to %s\n", len(profiles), cfg.Store.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
