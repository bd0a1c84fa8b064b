package recommend

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/investor-match/internal/contact"
	"github.com/sells-group/investor-match/internal/profile"
	"github.com/sells-group/investor-match/internal/table"
	"github.com/sells-group/investor-match/pkg/anthropic"
)

type fakeClient struct {
	request  anthropic.MessageRequest
	response *anthropic.MessageResponse
	err      error
}

func (f *fakeClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.request = req
	return f.response, f.err
}

func investorProfile(firm, focus string, contacts []contact.Contact) profile.Profile {
	meta := profile.NewMetadata()
	meta.SetScalar(profile.KeyFirmName, table.String(firm))
	if focus != "" {
		meta.SetScalar(profile.KeyFocusArea, table.String(focus))
	}
	if contacts != nil {
		meta.SetContacts(contacts)
	}
	return profile.Profile{Meta: meta}
}

func TestConciseContext_Empty(t *testing.T) {
	assert.Equal(t, "No relevant investors found.", ConciseContext(nil))
}

func TestConciseContext_RendersCriteriaAndContacts(t *testing.T) {
	investors := []profile.Profile{
		investorProfile("Acme Ventures", "Healthcare IT", []contact.Contact{
			{Name: "Jane Doe", Email: "jane@acme.vc", Background: "Partner"},
		}),
		investorProfile("Beta Capital", "", nil),
	}

	ctx := ConciseContext(investors)
	assert.Contains(t, ctx, "Investor 1:")
	assert.Contains(t, ctx, "  Firm: Acme Ventures")
	assert.Contains(t, ctx, "  Focus: Healthcare IT")
	assert.Contains(t, ctx, "  CONTACT INFORMATION (from Contact Files):")
	assert.Contains(t, ctx, "    - Name: Jane Doe | Email: jane@acme.vc | Role: Partner")
	assert.Contains(t, ctx, "Investor 2:")
	assert.Contains(t, ctx, "  Firm: Beta Capital")
}

func TestConciseContext_ContactCap(t *testing.T) {
	contacts := []contact.Contact{
		{Name: "A", Email: "a@x.vc"},
		{Name: "B", Email: "b@x.vc"},
		{Name: "C", Email: "c@x.vc"},
		{Name: "D", Email: "d@x.vc"},
	}
	ctx := ConciseContext([]profile.Profile{investorProfile("Acme", "", contacts)})

	assert.Contains(t, ctx, "a@x.vc")
	assert.Contains(t, ctx, "c@x.vc")
	assert.NotContains(t, ctx, "d@x.vc")
}

func TestConciseContext_LongExtrasTruncated(t *testing.T) {
	meta := profile.NewMetadata()
	meta.SetScalar(profile.KeyFirmName, table.String("Acme"))
	meta.SetScalar(profile.KeyThesis, table.String(strings.Repeat("y", 200)))

	ctx := ConciseContext([]profile.Profile{{Meta: meta}})
	assert.Contains(t, ctx, strings.Repeat("y", 150)+"...")
	assert.NotContains(t, ctx, strings.Repeat("y", 151))
}

func TestRecommend_EmptyInvestorsShortCircuits(t *testing.T) {
	client := &fakeClient{}
	r := New(client, "claude-sonnet-4-5-20250929")

	text, err := r.Recommend(context.Background(), "fintech", "", nil)
	require.NoError(t, err)
	assert.Contains(t, text, "No relevant investors found")
	assert.Empty(t, client.request.Model, "no API call expected")
}

func TestRecommend_SendsPromptAndReturnsText(t *testing.T) {
	client := &fakeClient{response: &anthropic.MessageResponse{Text: "1. Acme Ventures"}}
	r := New(client, "claude-sonnet-4-5-20250929")

	investors := []profile.Profile{
		investorProfile("Acme Ventures", "Healthcare IT", nil),
	}
	text, err := r.Recommend(context.Background(), "healthcare investors", "our deck text", investors)
	require.NoError(t, err)
	assert.Equal(t, "1. Acme Ventures", text)

	req := client.request
	assert.Equal(t, "claude-sonnet-4-5-20250929", req.Model)
	assert.EqualValues(t, 2000, req.MaxTokens)
	assert.NotEmpty(t, req.System)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "User Query: healthcare investors")
	assert.Contains(t, req.Messages[0].Content, "Pitch Deck Content:\nour deck text")
	assert.Contains(t, req.Messages[0].Content, "Firm: Acme Ventures")
}

func TestRecommend_PropagatesClientError(t *testing.T) {
	client := &fakeClient{err: assert.AnError}
	r := New(client, "claude-sonnet-4-5-20250929")

	_, err := r.Recommend(context.Background(), "q", "", []profile.Profile{
		investorProfile("Acme", "", nil),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create message")
}
