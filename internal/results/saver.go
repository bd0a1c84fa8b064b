// Package results writes recommendation transcripts to disk: a rolling
// JSON log plus one markdown file per query.
package results

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Entry is one saved query result.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	PitchDeck string    `json:"pitch_deck,omitempty"`
}

// Saver writes results to a JSON log file and a markdown directory.
type Saver struct {
	JSONPath    string
	MarkdownDir string
}

// NewSaver returns a Saver writing to the given locations.
func NewSaver(jsonPath, markdownDir string) *Saver {
	return &Saver{JSONPath: jsonPath, MarkdownDir: markdownDir}
}

// Save appends the result to the JSON log and writes a markdown file.
// Returns the markdown file path.
func (s *Saver) Save(query, response, pitchDeckName string) (string, error) {
	now := time.Now()
	entry := Entry{
		Timestamp: now,
		Query:     query,
		Response:  response,
		PitchDeck: pitchDeckName,
	}

	if err := s.appendJSON(entry); err != nil {
		return "", err
	}

	mdPath := s.markdownPath(query, now)
	if err := os.MkdirAll(filepath.Dir(mdPath), 0o755); err != nil {
		return "", eris.Wrap(err, "results: create markdown dir")
	}
	if err := os.WriteFile(mdPath, []byte(formatMarkdown(entry)), 0o644); err != nil {
		return "", eris.Wrapf(err, "results: write markdown %s", mdPath)
	}
	return mdPath, nil
}

// appendJSON loads the existing log, appends the entry, and rewrites the
// file. A corrupted or missing log starts fresh rather than failing.
func (s *Saver) appendJSON(entry Entry) error {
	if dir := filepath.Dir(s.JSONPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrap(err, "results: create results dir")
		}
	}

	var entries []Entry
	if data, err := os.ReadFile(s.JSONPath); err == nil {
		_ = json.Unmarshal(data, &entries)
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return eris.Wrap(err, "results: marshal entries")
	}
	return eris.Wrapf(os.WriteFile(s.JSONPath, data, 0o644), "results: write %s", s.JSONPath)
}

// Load returns all saved entries, or an empty list when none exist.
func (s *Saver) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.JSONPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "results: read %s", s.JSONPath)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, eris.Wrapf(err, "results: parse %s", s.JSONPath)
	}
	return entries, nil
}

func (s *Saver) markdownPath(query string, ts time.Time) string {
	name := ts.Format("2006-01-02_15-04-05") + "_" + sanitizeFilename(query, 40) + ".md"
	return filepath.Join(s.MarkdownDir, name)
}

func formatMarkdown(e Entry) string {
	parts := []string{
		"# Investor Recommendation Query",
		"",
		"**Date:** " + e.Timestamp.Format("2006-01-02 15:04:05"),
		"",
	}
	if e.PitchDeck != "" {
		parts = append(parts, "**Pitch Deck:** "+e.PitchDeck, "")
	}
	parts = append(parts,
		"## Query",
		"",
		e.Query,
		"",
		"---",
		"",
		"## Response",
		"",
		e.Response,
	)
	return strings.Join(parts, "\n")
}

var (
	unsafeCharRe = regexp.MustCompile(`[^\w\s-]`)
	dashRunRe    = regexp.MustCompile(`[-\s]+`)
)

// sanitizeFilename reduces free text to a filesystem-safe slug.
func sanitizeFilename(text string, maxLen int) string {
	s := unsafeCharRe.ReplaceAllString(text, "")
	s = dashRunRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	if s == "" {
		return "query"
	}
	return s
}
