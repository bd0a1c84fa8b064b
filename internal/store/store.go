// Package store persists serialized investor profiles so search and
// serve runs can reload the index instead of reparsing spreadsheets.
package store

import (
	"context"

	"github.com/sells-group/investor-match/internal/profile"
)

// Store defines the persistence interface for built profiles.
type Store interface {
	SaveProfiles(ctx context.Context, profiles []profile.Profile) error
	LoadProfiles(ctx context.Context) ([]profile.Profile, error)
	Count(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Searcher is the retrieval port the external embedding index satisfies:
// given free text, return the most relevant profiles. The keyword ranker
// provides the fallback implementation.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]profile.Profile, error)
}
