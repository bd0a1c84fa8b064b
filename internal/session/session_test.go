package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndGet(t *testing.T) {
	s := NewStore()

	deck := s.Create("deck.pdf", "we build healthcare software")
	assert.NotEmpty(t, deck.ID)
	assert.False(t, deck.UploadedAt.IsZero())

	got, ok := s.Get(deck.ID)
	require.True(t, ok)
	assert.Equal(t, "deck.pdf", got.Name)
	assert.Equal(t, "we build healthcare software", got.Text)
}

func TestStore_GetUnknown(t *testing.T) {
	_, ok := NewStore().Get("nope")
	assert.False(t, ok)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	deck := s.Create("deck.pdf", "text")
	require.Equal(t, 1, s.Len())

	s.Clear(deck.ID)
	assert.Zero(t, s.Len())
	_, ok := s.Get(deck.ID)
	assert.False(t, ok)

	// clearing an unknown id is a no-op
	s.Clear("nope")
}

func TestStore_IDsUnique(t *testing.T) {
	s := NewStore()
	a := s.Create("a", "")
	b := s.Create("b", "")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, s.Len())
}
