package cart

import (
	"dikra-store/internal/catalog"

	"github.com/shopspring/decimal"
)

// Store is a session's cart. It keeps insertion order and at most one line
// per Identity. Store has no lock: the owning session serialises access.
// Line quantities stay within [MinQuantity, MaxQuantity].
type Store struct {
	items []LineItem
}

func NewStore() *Store {
	return &Store{}
}

// Add merges into the line with the same product and color, or appends a new
// line. On merge the quantity is summed, saturating at MaxQuantity, and the
// view becomes the given view.
func (s *Store) Add(productID, name string, unitPrice decimal.Decimal, color catalog.Color, view, quantity int) {
	id := Identity{ProductID: productID, Color: color}
	quantity = clampQuantity(quantity)

	if i := s.indexOf(id); i >= 0 {
		s.items[i].Quantity = saturatingAdd(s.items[i].Quantity, quantity)
		s.items[i].View = view
		return
	}

	s.items = append(s.items, LineItem{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Color:     color,
		View:      view,
		Quantity:  quantity,
	})
}

// Remove drops the matching line. Removing an absent line is a no-op.
func (s *Store) Remove(productID string, color catalog.Color) {
	i := s.indexOf(Identity{ProductID: productID, Color: color})
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
}

func (s *Store) TotalQuantity() int {
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

func (s *Store) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Snapshot returns a copy of the lines; changing it does not touch the store.
func (s *Store) Snapshot() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Clear empties the cart. Only a confirmed order submission should call it.
func (s *Store) Clear() {
	s.items = nil
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Store) indexOf(id Identity) int {
	for i, it := range s.items {
		if it.Identity() == id {
			return i
		}
	}
	return -1
}
