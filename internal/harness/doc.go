// Package harness runs cart conformance scenarios.
//
// A scenario is a YAML file listing actions to dispatch against a fresh
// session, the outcome expected from each, and assertions on the final
// cart:
//
//	name: widget_lifecycle
//	description: "Add, re-add, set quantity and remove a single line"
//	initial:
//	  - {sku: B2, name: Gadget, price: "5.00", qty: 1}
//	steps:
//	  - action: {type: ADD, payload: {sku: A1, name: Widget, price: "9.99"}}
//	  - action: {type: QUANTITY, payload: {sku: ZZ, qty: 2}}
//	    expect: {error: ITEM_NOT_FOUND}
//	assertions:
//	  - type: contains
//	    sku: A1
//	    qty: 1
//	  - type: order
//	    skus: [B2, A1]
//
// A step without expect must succeed. Expected errors are named by their
// cart.ErrorCode.
//
// # Assertion Types
//
//   - cart_len: the cart has exactly count lines
//   - contains: the line sku is present, optionally with quantity qty
//   - absent: the line sku is not present
//   - order: the cart's SKUs are exactly skus, in order
//   - final_state: the cart holds exactly the sku to quantity pairs in lines
//   - subtotal: the sum of price times quantity equals amount
//
// # Deterministic Testing
//
// Each scenario runs in its own session with a testutil.DeterministicClock
// and a fixed session ID, so traces are byte-identical across runs and can
// be compared against golden files with RunWithGolden.
package harness
