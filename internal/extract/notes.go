// Package extract mines contact mentions out of free-text investor notes.
// The heuristics are an ordered list of pattern rules; the first rule
// that matches wins. Recall is best-effort: anything without an email
// address is invisible to this package.
package extract

import (
	"regexp"
	"strings"
)

// Mention is one contact occurrence found in notes text. Name and
// Background may be empty; Email never is.
type Mention struct {
	Name       string
	Email      string
	Background string
}

const (
	// nameWindow is how far back from the email the fallback name scan looks.
	nameWindow = 50
	// maxFallbackWords rejects fallback name candidates longer than a name.
	maxFallbackWords = 4
	// backgroundWindow caps how much trailing context becomes the background.
	backgroundWindow = 200
)

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

var emailExactRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidEmail reports whether s is a well-formed local@domain.tld address.
func ValidEmail(s string) bool {
	return emailExactRe.MatchString(strings.TrimSpace(s))
}

// namePatterns capture two or more consecutive capitalized words followed
// by a separator ("at", comma, dash, paren, or @). Ordered; first match wins.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\s*(?:(?i:at)\s|[,\-(@])`),
	regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)\s*(?:(?i:at)\s|[,\-(@])`),
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\s*@`),
}

// fallbackPrefixRe strips a leading connective before a trailing name
// candidate ("at Jane Doe", "reach out to Jane Doe").
var fallbackPrefixRe = regexp.MustCompile(`(?i)^(at|from|contact|reach out to|email)\s+`)

// roleTokenRe finds a bare role title when the email has no trailing context.
var roleTokenRe = regexp.MustCompile(`(?i)(Vice President|Principal|Partner|Director|Manager|Associate|Analyst|VP|CEO|CTO|CFO)`)

// Contacts extracts one Mention per email occurrence in the notes text,
// in left-to-right order. Text with no email yields nil. Duplicate
// emails yield duplicate mentions; deduplication is the aggregator's job.
func Contacts(notes string) []Mention {
	if strings.TrimSpace(notes) == "" {
		return nil
	}

	emails := emailRe.FindAllString(notes, -1)
	if len(emails) == 0 {
		return nil
	}

	mentions := make([]Mention, 0, len(emails))
	for _, email := range emails {
		pos := strings.Index(notes, email)
		before := strings.TrimSpace(notes[:pos])
		after := strings.TrimSpace(notes[pos+len(email):])

		mentions = append(mentions, Mention{
			Email:      email,
			Name:       extractName(before),
			Background: extractBackground(before, after),
		})
	}
	return mentions
}

// extractName tries the ordered name patterns against the text preceding
// the email, then falls back to the trailing window when none match.
func extractName(before string) string {
	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(before); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	candidate := strings.TrimSpace(lastRunes(before, nameWindow))
	candidate = fallbackPrefixRe.ReplaceAllString(candidate, "")
	candidate = strings.TrimSpace(candidate)
	if candidate != "" && len(strings.Fields(candidate)) <= maxFallbackWords {
		return candidate
	}
	return ""
}

// extractBackground takes the first 200 characters after the email with
// whitespace runs collapsed. When the email ends the text, it falls back
// to the first role title mentioned before it.
func extractBackground(before, after string) string {
	if after != "" {
		return strings.Join(strings.Fields(firstRunes(after, backgroundWindow)), " ")
	}
	if m := roleTokenRe.FindString(before); m != "" {
		return m
	}
	return ""
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
