// Package recommend turns a ranked investor list into a prose
// recommendation via Claude. Context construction is deliberately
// concise: the full profile text is never sent, only the criteria and
// contacts the model needs to explain a match.
package recommend

import (
	"fmt"
	"strings"

	"github.com/sells-group/investor-match/internal/profile"
)

const systemPrompt = `You are a helpful assistant that recommends investors based on user queries and pitch deck analysis.
Analyze the provided pitch deck (if available) and investor information to provide clear, concise recommendations.
When a pitch deck is provided, carefully analyze the business, industry, stage, funding needs, and other relevant details.
Match investors based on their focus areas, investment criteria, check sizes, and portfolio alignment with the pitch deck.
Focus on explaining why each investor is a good match based on both the pitch deck content and the user's requirements.

Rank investors by relevance and explain the reasoning. Only recommend investors that are truly good matches - quality over quantity.

CRITICAL: For each recommended investor, you MUST include the contact information from the "CONTACT INFORMATION (from Contact Files)" section:
- Contact person's Name
- Email address
- Background/Role information
Always display this contact information prominently for each recommended investor. If contact information is not available for an investor, state that clearly.`

// contextFields are the criteria lines rendered per investor, in order.
var contextFields = []struct {
	key   string
	label string
}{
	{profile.KeyFirmName, "Firm"},
	{profile.KeyFocusArea, "Focus"},
	{profile.KeyInvestorType, "Type"},
	{profile.KeyFundType, "Fund Type"},
	{profile.KeyCheckSize, "Check Size"},
	{profile.KeyStage, "Stage"},
	{profile.KeyGeography, "Geographic Focus"},
	{profile.KeyIndustry, "Industry Focus"},
}

// contextExtraKeys are appended with their key as label, truncated.
var contextExtraKeys = []string{
	profile.KeyThesis,
	profile.KeyPortfolio,
	profile.KeyMinInvestment,
	profile.KeyMaxInvestment,
}

const (
	maxContactsPerInvestor = 3
	extraValueLimit        = 150
)

// ConciseContext renders the per-investor context block sent to the
// model: key criteria, up to three contacts, and trimmed long fields.
func ConciseContext(investors []profile.Profile) string {
	if len(investors) == 0 {
		return "No relevant investors found."
	}

	blocks := make([]string, 0, len(investors))
	for i, inv := range investors {
		var lines []string
		lines = append(lines, fmt.Sprintf("Investor %d:", i+1))

		for _, f := range contextFields {
			if v := inv.Meta.Text(f.key); v != "" {
				lines = append(lines, fmt.Sprintf("  %s: %s", f.label, v))
			}
		}

		contacts := inv.Meta.Contacts()
		if len(contacts) > 0 {
			lines = append(lines, "  CONTACT INFORMATION (from Contact Files):")
			for j, c := range contacts {
				if j == maxContactsPerInvestor {
					break
				}
				var parts []string
				if c.Name != "" {
					parts = append(parts, "Name: "+c.Name)
				}
				if c.Email != "" {
					parts = append(parts, "Email: "+c.Email)
				}
				if c.Background != "" {
					parts = append(parts, "Role: "+c.Background)
				}
				if len(parts) > 0 {
					lines = append(lines, "    - "+strings.Join(parts, " | "))
				}
			}
		}

		for _, key := range contextExtraKeys {
			if v := inv.Meta.Text(key); v != "" {
				if len(v) > extraValueLimit {
					v = v[:extraValueLimit] + "..."
				}
				lines = append(lines, fmt.Sprintf("  %s: %s", key, v))
			}
		}

		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	return strings.Join(blocks, "\n")
}

// userPrompt assembles the user message from the query, the optional
// pitch deck text, and the investor context.
func userPrompt(query, deckText, context string) string {
	var parts []string
	parts = append(parts, "Based on the following query, recommend the most relevant investors from the provided list.")

	if deckText != "" {
		parts = append(parts, "\nPitch Deck Content:\n"+deckText+"\n")
	}

	parts = append(parts, "\nUser Query: "+query)
	parts = append(parts, "\nRelevant Investors:\n"+context)
	parts = append(parts, `
Please provide:
1. A brief analysis of the pitch deck (if provided) and user's requirements
2. Recommended investors ranked by relevance
3. Explanation of why each investor is a good match based on the pitch deck and requirements
4. Key details about each recommended investor
5. For EACH recommended investor, the contact information from the "CONTACT INFORMATION (from Contact Files)" section: name, email, and background/role, formatted clearly and prominently. If contact information is not available for an investor, state that clearly.`)

	return strings.Join(parts, "\n")
}
