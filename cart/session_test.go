package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetReturnsSameStorePerSession(t *testing.T) {
	m := NewManager(nil)

	a := m.Get("sess-a")
	b := m.Get("sess-b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, m.Get("sess-a"))
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager(nil)

	m.Get("sess-a").Add(snap("x", "5.00"))

	assert.Equal(t, 1, m.Get("sess-a").Len())
	assert.Equal(t, 0, m.Get("sess-b").Len())
}

func TestManager_DropRehydratesFromStorage(t *testing.T) {
	backends := map[string]*MemoryStorage{}
	m := NewManager(func(sessionID string) Storage {
		if _, ok := backends[sessionID]; !ok {
			backends[sessionID] = NewMemoryStorage()
		}
		return backends[sessionID]
	})

	m.Get("sess-a").Add(snap("x", "5.00"))
	m.Drop("sess-a")

	reloaded := m.Get("sess-a")
	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "x", items[0].ID)
}

func TestManager_NewSessionIDsAreUnique(t *testing.T) {
	m := NewManager(nil)
	assert.NotEqual(t, m.NewSessionID(), m.NewSessionID())
}
