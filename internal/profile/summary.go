package profile

import "strings"

// summaryFields maps metadata keys to the short labels used in the
// embedding summary, in render order.
var summaryFields = []struct {
	key   string
	label string
}{
	{KeyFirmName, "Firm"},
	{KeyFocusArea, "Focus"},
	{KeyInvestorType, "Type"},
	{KeyFundType, "Fund Type"},
	{KeyCheckSize, "Check Size"},
	{KeyStage, "Stage"},
}

// summaryExtraKeys are appended with their own key as label, truncated.
var summaryExtraKeys = []string{
	KeyGeography,
	KeyIndustry,
	KeyThesis,
	KeyPortfolio,
	KeyMinInvestment,
	KeyMaxInvestment,
}

const summaryValueLimit = 200

// Summary builds the concise one-line document handed to the external
// embedding index. It is intentionally shorter than Profile.Text: key
// investment criteria plus up to two contact names, pipe-separated.
func (p Profile) Summary() string {
	var parts []string

	for _, f := range summaryFields {
		if v := p.Meta.Text(f.key); v != "" {
			parts = append(parts, f.label+": "+v)
		}
	}
	for _, key := range summaryExtraKeys {
		if v := p.Meta.Text(key); v != "" {
			parts = append(parts, key+": "+truncate(v, summaryValueLimit))
		}
	}

	var names []string
	for i, c := range p.Meta.Contacts() {
		if i == 2 {
			break
		}
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	if len(names) > 0 {
		parts = append(parts, "Contacts: "+strings.Join(names, ", "))
	}

	return strings.Join(parts, " | ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
