package cart

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct {
	loadErr error
	saveErr error
	data    []byte
}

func (f *failingStorage) Load() ([]byte, error) {
	return f.data, f.loadErr
}

func (f *failingStorage) Save(data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data = data
	return nil
}

func TestStore_PersistsEveryMutation(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)

	store.Add(snap("a", "5.00"))
	store.Increment("a")
	store.Add(snap("b", "3.00"))
	store.Decrement("a")
	store.Remove("b")

	// Rehydrate from the same storage and compare element-wise.
	reloaded := NewStore(storage)
	want, got := store.Items(), reloaded.Items()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.True(t, want[i].Price.Equal(got[i].Price))
	}
}

func TestStore_RoundTripPreservesFields(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)

	s := snap("a", "12.50")
	s.Image = "https://cdn.example.com/a.webp"
	store.Add(s)
	store.Add(s)
	store.Add(snap("b", "8.00"))

	reloaded := NewStore(storage)
	items := reloaded.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Item a", items[0].Name)
	assert.Equal(t, "https://cdn.example.com/a.webp", items[0].Image)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestStore_AbsentStateStartsEmpty(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	assert.Equal(t, 0, store.Len())
}

func TestStore_CorruptStateStartsEmpty(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save([]byte("{not json")))

	store := NewStore(storage)
	assert.Equal(t, 0, store.Len())

	// The store keeps working and overwrites the garbage.
	store.Add(snap("a", "5.00"))
	reloaded := NewStore(storage)
	assert.Equal(t, 1, reloaded.Len())
}

func TestStore_LoadErrorStartsEmpty(t *testing.T) {
	storage := &failingStorage{loadErr: errors.New("medium unavailable")}

	store := NewStore(storage)
	assert.Equal(t, 0, store.Len())
}

func TestStore_RehydrationRepairsInvariants(t *testing.T) {
	storage := NewMemoryStorage()
	// Quantity 0, a duplicate ID and a missing ID must all be dropped.
	require.NoError(t, storage.Save([]byte(`[
		{"id":"a","name":"A","price":"5.00","quantity":2},
		{"id":"a","name":"A dup","price":"5.00","quantity":1},
		{"id":"b","name":"B","price":"3.00","quantity":0},
		{"name":"no id","price":"1.00","quantity":1}
	]`)))

	store := NewStore(storage)
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_WriteFailureKeepsInMemoryState(t *testing.T) {
	storage := &failingStorage{saveErr: errors.New("quota exceeded")}
	store := NewStore(storage)

	store.Add(snap("a", "5.00"))
	store.Increment("a")

	it, ok := store.find("a")
	require.True(t, ok)
	assert.Equal(t, 2, it.Quantity)
}

func TestStore_NilStorageIsMemoryOnly(t *testing.T) {
	store := NewStore(nil)
	store.Add(snap("a", "5.00"))
	assert.Equal(t, 1, store.Len())
}

func TestStore_Totals(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	store.Add(snap("a", "10.00"))
	store.Increment("a")
	store.Add(snap("b", "5.00"))

	sub, tax, total := store.Totals(decimal.RequireFromString("0.08"))
	assert.True(t, sub.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, tax.Equal(decimal.RequireFromString("2.00")))
	assert.True(t, total.Equal(decimal.RequireFromString("27.00")))
}

func TestStore_ClearPersistsEmptyCart(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)
	store.Add(snap("a", "5.00"))

	store.Clear()

	reloaded := NewStore(storage)
	assert.Equal(t, 0, reloaded.Len())
}

func TestFileStorage_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(dir, "sess-1")

	store := NewStore(storage)
	store.Add(snap("a", "12.50"))
	store.Add(snap("a", "12.50"))

	reloaded := NewStore(NewFileStorage(dir, "sess-1"))
	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	// Sessions do not share state.
	other := NewStore(NewFileStorage(dir, "sess-2"))
	assert.Equal(t, 0, other.Len())
}

func TestFileStorage_MissingFileIsEmpty(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "nested"), "sess")
	data, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, data)
}

// find is a test helper on Store mirroring Cart.Find under the lock.
func (s *Store) find(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Find(id)
}
