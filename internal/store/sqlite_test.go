package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/investor-match/internal/contact"
	"github.com/sells-group/investor-match/internal/profile"
	"github.com/sells-group/investor-match/internal/table"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testProfiles() []profile.Profile {
	first := profile.NewMetadata()
	first.SetScalar(profile.KeyFirmName, table.String("Acme Ventures"))
	first.SetScalar(profile.KeyCheckSize, table.String("$1M-$5M"))
	first.SetContacts([]contact.Contact{{
		Name:   "Jane Doe",
		Email:  "jane@acme.vc",
		Source: contact.SourceContactFile,
	}})
	first.SetContactCount(1)

	second := profile.NewMetadata()
	second.SetScalar(profile.KeyFirmName, table.String("Beta Capital"))

	return []profile.Profile{
		{ID: "0", Text: "Account Name: Acme Ventures", Meta: first},
		{ID: "1", Text: "Account Name: Beta Capital", Meta: second},
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveProfiles(ctx, testProfiles()))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded, err := s.LoadProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	p := loaded[0]
	assert.Equal(t, "0", p.ID)
	assert.Equal(t, "Account Name: Acme Ventures", p.Text)
	assert.Equal(t, "Acme Ventures", p.Meta.Text(profile.KeyFirmName))
	assert.Equal(t, 1, p.Meta.ContactCount())
	require.Len(t, p.Meta.Contacts(), 1)
	assert.Equal(t, "jane@acme.vc", p.Meta.Contacts()[0].Email)

	assert.Equal(t, "1", loaded[1].ID)
}

func TestSQLiteStore_SaveReplacesIndex(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveProfiles(ctx, testProfiles()))
	require.NoError(t, s.SaveProfiles(ctx, testProfiles()[:1]))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLiteStore_LoadOrdersNumerically(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	profiles := make([]profile.Profile, 0, 11)
	for _, id := range []string{"10", "2", "0", "9", "1", "3", "4", "5", "6", "7", "8"} {
		profiles = append(profiles, profile.Profile{ID: id, Text: "t", Meta: profile.NewMetadata()})
	}
	require.NoError(t, s.SaveProfiles(ctx, profiles))

	loaded, err := s.LoadProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 11)
	assert.Equal(t, "0", loaded[0].ID)
	assert.Equal(t, "9", loaded[9].ID)
	assert.Equal(t, "10", loaded[10].ID)
}

func TestSQLiteStore_EmptyDatabase(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	loaded, err := s.LoadProfiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
