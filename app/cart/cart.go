// Package cart implements the durable shopping cart.
//
// A Store holds the lines for one cart and writes the full snapshot to its
// backing key-value store on every mutation, so the cart survives session
// restarts. Loading validates the stored shape and silently resets to an
// empty cart when the snapshot is missing or corrupt.
package cart

import (
	"encoding/json"
	"strconv"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/services"
	"github.com/epicurean/epicurean/pkg/kvstore"
	"github.com/epicurean/epicurean/pkg/logger"
)

// Key returns the snapshot key for an authenticated customer's cart.
func Key(userID uint) string {
	return "cart:" + strconv.FormatUint(uint64(userID), 10)
}

// GuestKey returns the snapshot key for a guest session's cart.
func GuestKey(sessionID string) string {
	return "cart:guest:" + sessionID
}

// Store is one customer's cart. It is the single writer for its key.
type Store struct {
	kv    kvstore.Store
	key   string
	lines []models.CartLine
}

// Open loads the cart stored under key. A missing, unreadable, or
// malformed snapshot yields an empty cart, never an error.
func Open(kv kvstore.Store, key string) *Store {
	s := &Store{kv: kv, key: key}
	s.load()
	return s
}

func (s *Store) load() {
	raw, found, err := s.kv.Get(s.key)
	if err != nil || !found {
		s.lines = nil
		return
	}

	lines, err := decodeSnapshot(raw)
	if err != nil {
		// Corrupt snapshot: recover by starting fresh.
		logger.Warn("cart: resetting malformed snapshot",
			"key", s.key, "error", &services.MalformedStateError{Key: s.key, Err: err})
		s.lines = nil
		return
	}
	s.lines = lines
}

// decodeSnapshot parses and shape-checks a stored cart snapshot.
func decodeSnapshot(raw string) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if l.ItemID == "" || l.Quantity < 1 || l.UnitPrice < 0 || seen[l.ItemID] {
			return nil, services.Validationf("invalid cart line %q", l.ItemID)
		}
		seen[l.ItemID] = true
	}
	return lines, nil
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.lines)
	if err != nil {
		return services.Persistence("encode cart", err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return services.Persistence("save cart", err)
	}
	return nil
}

// AddItem adds one unit of item to the cart. It reports added=true when a
// new line was appended, false when an existing line's quantity was
// incremented. The snapshot is persisted before returning.
func (s *Store) AddItem(item models.MenuItem) (added bool, err error) {
	for i := range s.lines {
		if s.lines[i].ItemID == item.ID {
			s.lines[i].Quantity++
			return false, s.persist()
		}
	}
	s.lines = append(s.lines, models.CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  1,
	})
	return true, s.persist()
}

// RemoveItem deletes the line with itemID. Removing an absent item is a
// no-op, not an error.
func (s *Store) RemoveItem(itemID string) error {
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// SetQuantity replaces the quantity of the line with itemID. Zero removes
// the line; a negative quantity is rejected. Setting a quantity for an
// absent item is a no-op.
func (s *Store) SetQuantity(itemID string, quantity int) error {
	if quantity < 0 {
		return services.Validationf("quantity must not be negative")
	}
	if quantity == 0 {
		return s.RemoveItem(itemID)
	}
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines[i].Quantity = quantity
			return s.persist()
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear() error {
	s.lines = nil
	return s.persist()
}

// Total sums unitPrice times quantity over all lines.
func (s *Store) Total() float64 {
	var total float64
	for _, l := range s.lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// ItemCount sums the quantities over all lines.
func (s *Store) ItemCount() int {
	var n int
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy of the current cart lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}
