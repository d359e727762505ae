package cart

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/shopspring/decimal"
)

// State is the cart state held by a host between transitions.
//
// Extra carries any top-level document fields other than "cart". They are
// not interpreted, only carried through every transition and written back by
// MarshalJSON.
type State struct {
	Cart  []Item
	Extra map[string]json.RawMessage
}

// NewState returns the empty session-start state.
func NewState() State {
	return State{Cart: []Item{}}
}

// NewStateWith returns a state holding a copy of items.
func NewStateWith(items ...Item) State {
	cart := make([]Item, len(items))
	copy(cart, items)
	return State{Cart: cart}
}

// Clone returns a copy sharing no slice or map storage with s.
func (s State) Clone() State {
	cart := make([]Item, len(s.Cart))
	copy(cart, s.Cart)
	return State{
		Cart:  cart,
		Extra: maps.Clone(s.Extra),
	}
}

// withCart returns a copy of s whose cart is replaced by items.
// Every field other than Cart is carried over.
func (s State) withCart(items []Item) State {
	next := s
	next.Cart = items
	next.Extra = maps.Clone(s.Extra)
	return next
}

// Len returns the number of lines in the cart.
func (s State) Len() int {
	return len(s.Cart)
}

// Find returns the line for sku.
func (s State) Find(sku string) (Item, bool) {
	for _, it := range s.Cart {
		if it.SKU == sku {
			return it, true
		}
	}
	return Item{}, false
}

// SKUs returns the SKUs in cart order.
func (s State) SKUs() []string {
	skus := make([]string, len(s.Cart))
	for i, it := range s.Cart {
		skus[i] = it.SKU
	}
	return skus
}

// TotalItems returns the sum of all line quantities.
func (s State) TotalItems() int64 {
	var n int64
	for _, it := range s.Cart {
		n += it.Qty
	}
	return n
}

// Validate checks the invariants a decoded document can break: every line
// has a SKU, no SKU appears twice and every quantity is at least 1. States
// produced by Reduce from a valid state always pass.
func (s State) Validate() error {
	seen := make(map[string]bool, len(s.Cart))
	for i, it := range s.Cart {
		switch {
		case it.SKU == "":
			return fmt.Errorf("cart[%d]: sku is required", i)
		case seen[it.SKU]:
			return fmt.Errorf("cart[%d]: duplicate sku %q", i, it.SKU)
		case it.Qty < 1:
			return fmt.Errorf("cart[%d]: sku %q: qty must be at least 1, got %d", i, it.SKU, it.Qty)
		}
		seen[it.SKU] = true
	}
	return nil
}

// Subtotal returns the sum of all line totals. Display only; no taxes,
// discounts or rounding are applied.
func (s State) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Cart {
		total = total.Add(it.LineTotal())
	}
	return total
}

// MarshalJSON writes {"cart": [...]} merged with Extra.
// A nil cart is written as an empty array.
func (s State) MarshalJSON() ([]byte, error) {
	cart := s.Cart
	if cart == nil {
		cart = []Item{}
	}
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return nil, err
	}

	doc := make(map[string]json.RawMessage, len(s.Extra)+1)
	for k, v := range s.Extra {
		doc[k] = v
	}
	doc["cart"] = cartJSON
	return json.Marshal(doc)
}

// UnmarshalJSON reads a state document. A missing "cart" field yields an
// empty cart; other fields land in Extra.
func (s *State) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("state document must be an object")
	}

	cart := []Item{}
	if raw, ok := doc["cart"]; ok {
		if err := json.Unmarshal(raw, &cart); err != nil {
			return fmt.Errorf("cart: %w", err)
		}
		if cart == nil {
			cart = []Item{}
		}
		delete(doc, "cart")
	}

	s.Cart = cart
	s.Extra = nil
	if len(doc) > 0 {
		s.Extra = doc
	}
	return nil
}
