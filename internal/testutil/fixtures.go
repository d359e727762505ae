package testutil

import (
	"github.com/shopspring/decimal"

	"github.com/roach88/cart/internal/cart"
)

// Price parses s as a decimal and panics on malformed input.
func Price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Line builds a cart line.
func Line(sku, name, price string, qty int64) cart.Item {
	return cart.Item{SKU: sku, Name: name, Price: Price(price), Qty: qty}
}

// AddEnvelope builds an ADD envelope.
func AddEnvelope(sku, name, price string) cart.Envelope {
	return cart.Envelope{Type: cart.TypeAdd, Payload: &cart.Item{SKU: sku, Name: name, Price: Price(price)}}
}

// RemoveEnvelope builds a REMOVE envelope.
func RemoveEnvelope(sku string) cart.Envelope {
	return cart.Envelope{Type: cart.TypeRemove, Payload: &cart.Item{SKU: sku}}
}

// QuantityEnvelope builds a QUANTITY envelope.
func QuantityEnvelope(sku string, qty int64) cart.Envelope {
	return cart.Envelope{Type: cart.TypeQuantity, Payload: &cart.Item{SKU: sku, Qty: qty}}
}

// SubmitEnvelope builds a SUBMIT envelope.
func SubmitEnvelope() cart.Envelope {
	return cart.Envelope{Type: cart.TypeSubmit}
}

// WidgetLifecycle is the add, add, set-quantity, remove sequence for a
// single "A1" Widget priced 9.99. It ends with an empty cart.
func WidgetLifecycle() []cart.Envelope {
	return []cart.Envelope{
		AddEnvelope("A1", "Widget", "9.99"),
		AddEnvelope("A1", "Widget", "9.99"),
		QuantityEnvelope("A1", 5),
		RemoveEnvelope("A1"),
	}
}
