// Package cart holds a session's shopping cart: an ordered list of line
// items keyed by product id with a derived total, persisted per session so
// a returning visitor keeps their selection.
package cart

// Item is one cart line; Quantity is always >= 1, a line dropped to zero
// is removed instead of kept.
type Item struct {
	ProductID int64  `json:"id,string"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

// State is the full cart for one session. Total is always recomputed from
// Items, never set directly. SideCartOpen is a UI visibility flag and has
// no effect on the items.
type State struct {
	Items        []Item `json:"items"`
	Total        int    `json:"total"`
	SideCartOpen bool   `json:"is_side_cart_open"`
}

func (s *State) recalc() {
	total := 0
	for _, it := range s.Items {
		total += it.Price * it.Quantity
	}
	s.Total = total
}

func (s *State) find(productID int64) int {
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts a product in the cart. An id already present has its quantity
// incremented; a new id is appended with quantity 1.
func (s *State) Add(it Item) {
	if i := s.find(it.ProductID); i >= 0 {
		s.Items[i].Quantity++
	} else {
		it.Quantity = 1
		s.Items = append(s.Items, it)
	}
	s.recalc()
}

// UpdateQuantity sets the quantity for a line. qty <= 0 removes the line.
// An unknown id is a no-op.
func (s *State) UpdateQuantity(productID int64, qty int) {
	i := s.find(productID)
	if i < 0 {
		return
	}
	if qty <= 0 {
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
	} else {
		s.Items[i].Quantity = qty
	}
	s.recalc()
}

// Remove drops a line. An unknown id is a no-op.
func (s *State) Remove(productID int64) {
	i := s.find(productID)
	if i < 0 {
		return
	}
	s.Items = append(s.Items[:i], s.Items[i+1:]...)
	s.recalc()
}

// Clear empties the cart, leaving the side-cart flag alone
func (s *State) Clear() {
	s.Items = nil
	s.recalc()
}

func (s *State) Empty() bool {
	return len(s.Items) == 0
}
