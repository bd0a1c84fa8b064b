package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/investor-match/internal/rank"
	"github.com/sells-group/investor-match/internal/recommend"
	"github.com/sells-group/investor-match/internal/results"
	"github.com/sells-group/investor-match/pkg/anthropic"
)

var (
	recommendDeckFile string
	recommendNoSave   bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <query>",
	Short: "Generate an LLM investor recommendation for a pitch",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic key is required (set INVESTOR_ANTHROPIC_KEY)")
		}

		var deckText, deckName string
		if recommendDeckFile != "" {
			data, err := os.ReadFile(recommendDeckFile)
			if err != nil {
				return eris.Wrapf(err, "read pitch deck %s", recommendDeckFile)
			}
			deckText = string(data)
			deckName = filepath.Base(recommendDeckFile)
		}

		profiles, err := loadOrBuild(cmd.Context())
		if err != nil {
			return err
		}

		// Rank against the query plus deck content so deck-only
		// signals still pull relevant investors into context.
		rankQuery := query
		if deckText != "" {
			rankQuery = query + " " + deckText
		}
		top := rank.ByKeyword(profiles, rankQuery, cfg.Search.MaxResults)

		client := anthropic.NewClient(cfg.Anthropic.Key, anthropic.WithRateLimit(cfg.Anthropic.RateLimit))
		rec := recommend.New(client, cfg.Anthropic.Model)

		response, err := rec.Recommend(cmd.Context(), query, deckText, top)
		if err != nil {
			return err
		}

		fmt.Println(response)

		if !recommendNoSave {
			saver := results.NewSaver(cfg.Results.JSONPath, cfg.Results.MarkdownDir)
			mdPath, err := saver.Save(query, response, deckName)
			if err != nil {
				zap.L().Warn("failed to save query result", zap.Error(err))
			} else {
				fmt.Fprintf(os.Stderr, "\nSaved to %s\n", mdPath)
			}
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recommendDeckFile, "deck", "", "path to extracted pitch deck text")
	recommendCmd.Flags().BoolVar(&recommendNoSave, "no-save", false, "skip writing the result transcript")
	rootCmd.AddCommand(recommendCmd)
}
