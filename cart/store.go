package cart

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/shopspring/decimal"
)

// Store holds the live cart for one session and mirrors every mutation to its
// Storage before the call returns. Mutations never fail: if the medium is
// broken the in-memory change still applies and the write error is logged.
type Store struct {
	mu      sync.Mutex
	cart    Cart
	storage Storage
}

// NewStore rehydrates the cart from storage. Absent or corrupt state means an
// empty cart, never an error.
func NewStore(storage Storage) *Store {
	s := &Store{storage: storage}
	if storage == nil {
		return s
	}

	data, err := storage.Load()
	if err != nil {
		log.Printf("cart: load failed, starting empty: %v", err)
		return s
	}
	if len(data) == 0 {
		return s
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("cart: discarding corrupt state: %v", err)
		return s
	}

	// Re-establish the invariants on whatever was persisted: drop lines
	// without a usable quantity and duplicate IDs past the first.
	seen := map[string]bool{}
	for _, it := range items {
		if it.ID == "" || it.Quantity < 1 || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		s.cart.items = append(s.cart.items, it)
	}
	return s
}

func (s *Store) Add(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(snap)
	s.persist()
}

func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(id)
	s.persist()
}

func (s *Store) Increment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Increment(id)
	s.persist()
}

func (s *Store) Decrement(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Decrement(id)
	s.persist()
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.persist()
}

// Items returns an immutable snapshot of the cart contents, the form handed
// to checkout.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Len()
}

// Totals returns subtotal, tax and total for the given rate.
func (s *Store) Totals(rate decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal = s.cart.Subtotal()
	tax = s.cart.Tax(rate)
	return subtotal, tax, subtotal.Add(tax)
}

// persist writes the current items to storage. Durability is best effort:
// failures are logged and the mutation stands. Caller holds s.mu.
func (s *Store) persist() {
	if s.storage == nil {
		return
	}
	data, err := json.Marshal(s.cart.items)
	if err != nil {
		log.Printf("cart: marshal failed: %v", err)
		return
	}
	if err := s.storage.Save(data); err != nil {
		log.Printf("cart: persist failed: %v", err)
	}
}
