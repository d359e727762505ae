// Package cart implements shopping-cart state transitions for a storefront
// session.
//
// The core is Reduce, a pure function from (State, Action) to a new State.
// It performs no I/O, keeps no hidden state and never mutates its input:
// every call builds a fresh cart slice, so the caller may keep or discard
// the previous State freely.
//
// # Actions
//
// Action is a sealed sum type with one variant per action kind:
//
//	Add{SKU, Name, Price}   upsert by SKU, quantity +1 (or 1 if new)
//	Remove{SKU}             drop the line; absent SKU is a no-op
//	Quantity{SKU, Qty}      set quantity of an existing line
//	Submit{}                clear the cart
//
// Hosts that exchange untyped {type, payload} descriptors use Envelope and
// Dispatch. Decoding an envelope is where MissingPayload and
// UnknownActionType are detected; typed actions cannot express either.
//
// # Errors
//
// Failures are returned as *Error with a Code. They are programming errors
// from the caller's point of view: nothing is retried or partially applied,
// and the caller keeps its previous State.
//
// # Ordering
//
// The cart is ordered. ADD and QUANTITY move the touched line to the end of
// the sequence; REMOVE keeps the relative order of the remaining lines.
package cart
