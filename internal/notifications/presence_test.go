package notifications

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceRegistry_JoinOrderAndReplace(t *testing.T) {
	t.Parallel()

	p := NewPresenceRegistry()
	p.Put("s1", PresenceEntry{UserID: 1, Username: "alice"})
	p.Put("s2", PresenceEntry{UserID: 2, Username: "bob"})
	p.Put("s3", PresenceEntry{UserID: 1, Username: "alice"})

	// Replacing keeps the original position.
	p.Put("s1", PresenceEntry{UserID: 1, Username: "alice", Avatar: "a.png"})

	snap := p.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "a.png", snap[0].Avatar)
	assert.Equal(t, "bob", snap[1].Username)
	assert.Equal(t, 3, p.Len())

	entry, ok := p.Remove("s2")
	require.True(t, ok)
	assert.Equal(t, "bob", entry.Username)

	_, ok = p.Remove("s2")
	assert.False(t, ok)

	snap = p.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, uint(1), snap[1].UserID)

	p.Reset()
	assert.Zero(t, p.Len())
	assert.Empty(t, p.Snapshot())
}

func TestPresenceRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	p := NewPresenceRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%26))
			p.Put(id+"-"+string(rune('0'+i%10)), PresenceEntry{UserID: uint(i)})
			_ = p.Snapshot()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, len(p.Snapshot()), p.Len())
}
