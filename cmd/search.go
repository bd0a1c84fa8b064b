package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/investor-match/internal/profile"
	"github.com/sells-group/investor-match/internal/rank"
	"github.com/sells-group/investor-match/internal/store"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Keyword-rank investors against a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		profiles, err := loadOrBuild(cmd.Context())
		if err != nil {
			return err
		}

		limit := searchLimit
		if limit == 0 {
			limit = cfg.Search.MaxResults
		}

		var searcher store.Searcher = rank.KeywordSearcher{Profiles: profiles}
		ranked, err := searcher.Search(cmd.Context(), query, limit)
		if err != nil {
			return err
		}

		for i, p := range ranked {
			fmt.Printf("%d. %s\n", i+1, describeProfile(p))
		}
		return nil
	},
}

// describeProfile renders a one-line result: the firm name plus its
// concise summary, falling back to the first text line for tables
// without a recognizable firm column.
func describeProfile(p profile.Profile) string {
	if s := p.Summary(); s != "" {
		return s
	}
	if i := strings.IndexByte(p.Text, '\n'); i > 0 {
		return p.Text[:i]
	}
	return p.Text
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "max results (default from config)")
	rootCmd.AddCommand(searchCmd)
}
