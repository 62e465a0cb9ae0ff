package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nim-relay/internal/room"
)

var _ room.Store = (*MemoryStore)(nil)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	s.SaveRoom(&room.Room{Code: "AB12", Host: "h"})

	r, ok := s.GetRoom("AB12")
	assert.True(t, ok)
	assert.Equal(t, "h", r.Host)
	assert.Len(t, s.Rooms(), 1)

	s.DeleteRoom("AB12")
	s.DeleteRoom("AB12")
	_, ok = s.GetRoom("AB12")
	assert.False(t, ok)
	assert.Empty(t, s.Rooms())
}

func TestMemoryStoreSharesSavedRoom(t *testing.T) {
	s := NewMemoryStore()
	saved := &room.Room{Code: "QQ77", Host: "h"}
	s.SaveRoom(saved)

	saved.Opponent = "o"
	got, ok := s.GetRoom("QQ77")
	assert.True(t, ok)
	assert.Same(t, saved, got)
	assert.Equal(t, "o", got.Opponent)
}
