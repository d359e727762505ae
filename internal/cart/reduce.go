package cart

// Reduce applies action to state and returns the resulting state.
//
// On error the returned State is the zero value and must be ignored; the
// caller keeps state. state itself is never modified.
func Reduce(state State, action Action) (State, error) {
	switch a := action.(type) {
	case Add:
		return reduceAdd(state, a), nil
	case Remove:
		return state.withCart(without(state.Cart, a.SKU)), nil
	case Quantity:
		return reduceQuantity(state, a)
	case Submit:
		return state.withCart([]Item{}), nil
	case nil:
		return State{}, newUnknownActionType("")
	default:
		return State{}, newUnknownActionType(action.Type())
	}
}

// Dispatch decodes env and reduces it against state.
func Dispatch(state State, env Envelope) (State, error) {
	action, err := env.Decode()
	if err != nil {
		return State{}, err
	}
	return Reduce(state, action)
}

// reduceAdd upserts a.SKU. The quantity on an incoming line is never read:
// an existing line gains one unit, a new line starts at one.
func reduceAdd(state State, a Add) State {
	qty := int64(1)
	if existing, ok := state.Find(a.SKU); ok {
		qty = existing.Qty + 1
	}

	items := without(state.Cart, a.SKU)
	items = append(items, Item{SKU: a.SKU, Name: a.Name, Price: a.Price, Qty: qty})
	return state.withCart(items)
}

func reduceQuantity(state State, a Quantity) (State, error) {
	existing, ok := state.Find(a.SKU)
	if !ok {
		return State{}, newItemNotFound(a.SKU)
	}
	if a.Qty < 1 {
		return State{}, newInvalidQuantity(a.SKU, a.Qty)
	}

	existing.Qty = a.Qty
	items := without(state.Cart, a.SKU)
	items = append(items, existing)
	return state.withCart(items), nil
}

// without returns a new slice holding every item whose SKU is not sku.
// The result never aliases items.
func without(items []Item, sku string) []Item {
	out := make([]Item, 0, len(items)+1)
	for _, it := range items {
		if it.SKU != sku {
			out = append(out, it)
		}
	}
	return out
}
