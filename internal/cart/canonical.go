package cart

import "github.com/roach88/cart/internal/canon"

// Fingerprint domains. The version suffix allows the encoding to change
// without colliding with old fingerprints.
const (
	DomainState  = "cart/state/v1"
	DomainAction = "cart/action/v1"
)

// Value returns the canonical form of the line. Price is written as its
// shortest decimal string, so 9.9 and 9.90 encode identically. The SKU is
// written byte for byte because the reducer matches SKUs exactly; the name
// is NFC normalized.
func (i Item) Value() canon.Object {
	return canon.Object{
		"sku":   canon.Exact(i.SKU),
		"name":  canon.String(i.Name),
		"price": canon.String(i.Price.String()),
		"qty":   canon.Int(i.Qty),
	}
}

// Value returns the canonical form of the cart contents in order.
// Extra is not part of the canonical form.
func (s State) Value() canon.Object {
	lines := make(canon.Array, len(s.Cart))
	for i, it := range s.Cart {
		lines[i] = it.Value()
	}
	return canon.Object{"cart": lines}
}

// Fingerprint identifies the cart contents. Two states with the same lines
// in the same order have the same fingerprint.
func (s State) Fingerprint() string {
	// A state value never contains null, so this cannot fail.
	return canon.MustFingerprint(DomainState, s.Value())
}

// ActionValue returns the canonical form of an action: its type plus only
// the fields that variant carries.
func ActionValue(a Action) canon.Object {
	switch act := a.(type) {
	case Add:
		return canon.Object{
			"type":  canon.String(TypeAdd),
			"sku":   canon.Exact(act.SKU),
			"name":  canon.String(act.Name),
			"price": canon.String(act.Price.String()),
		}
	case Remove:
		return canon.Object{"type": canon.String(TypeRemove), "sku": canon.Exact(act.SKU)}
	case Quantity:
		return canon.Object{"type": canon.String(TypeQuantity), "sku": canon.Exact(act.SKU), "qty": canon.Int(act.Qty)}
	case Submit:
		return canon.Object{"type": canon.String(TypeSubmit)}
	default:
		return canon.Object{"type": canon.String("")}
	}
}

// ActionFingerprint identifies an action by content.
func ActionFingerprint(a Action) string {
	return canon.MustFingerprint(DomainAction, ActionValue(a))
}
