package recommend

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/investor-match/internal/profile"
	"github.com/sells-group/investor-match/pkg/anthropic"
)

const defaultMaxTokens = 2000

// Recommender narrates a matched investor list for the founder.
type Recommender struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// New creates a Recommender using the given client and model id.
func New(client anthropic.Client, model string) *Recommender {
	return &Recommender{
		client:    client,
		model:     model,
		maxTokens: defaultMaxTokens,
	}
}

// Recommend sends the query, optional pitch deck text, and concise
// investor context to Claude and returns the prose recommendation.
// An empty investor list short-circuits without an API call.
func (r *Recommender) Recommend(ctx context.Context, query, deckText string, investors []profile.Profile) (string, error) {
	if len(investors) == 0 {
		return "No relevant investors found in the database for your query. Please try different keywords or criteria.", nil
	}

	zap.L().Info("recommend: generating recommendation",
		zap.String("query", query),
		zap.Int("investors", len(investors)),
		zap.Bool("has_deck", deckText != ""),
	)

	resp, err := r.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     r.model,
		MaxTokens: r.maxTokens,
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: userPrompt(query, deckText, ConciseContext(investors))},
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "recommend: create message")
	}
	resp.Usage.LogUsage(r.model, "recommend")

	return resp.Text, nil
}
