package harness

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roach88/cart/internal/cart"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Cart     []cart.Item
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFinal cart:\n")
	if len(e.Cart) == 0 {
		fmt.Fprintf(&buf, "  (empty)\n")
	}
	for i, it := range e.Cart {
		fmt.Fprintf(&buf, "  [%d] %s %q x%d @ %s\n", i+1, it.SKU, it.Name, it.Qty, it.Price)
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion against result.Final and
// returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(result.Final, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %s", i, err))
		}
	}
	return errs
}

func evaluate(state cart.State, a Assertion) error {
	switch a.Type {
	case AssertCartLen:
		return assertCartLen(state, a)
	case AssertContains:
		return assertContains(state, a)
	case AssertAbsent:
		return assertAbsent(state, a)
	case AssertOrder:
		return assertOrder(state, a)
	case AssertFinalState:
		return assertFinalState(state, a)
	case AssertSubtotal:
		return assertSubtotal(state, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func fail(state cart.State, typ, expected, actual string) error {
	return &AssertionError{Type: typ, Expected: expected, Actual: actual, Cart: state.Cart}
}

func assertCartLen(state cart.State, a Assertion) error {
	if a.Count == nil {
		return fmt.Errorf("cart_len requires count")
	}
	if state.Len() != *a.Count {
		return fail(state, AssertCartLen,
			fmt.Sprintf("%d lines", *a.Count),
			fmt.Sprintf("%d lines", state.Len()))
	}
	return nil
}

func assertContains(state cart.State, a Assertion) error {
	it, ok := state.Find(a.SKU)
	if !ok {
		return fail(state, AssertContains, fmt.Sprintf("line %s", a.SKU), "not in cart")
	}
	if a.Qty != nil && it.Qty != *a.Qty {
		return fail(state, AssertContains,
			fmt.Sprintf("line %s with qty %d", a.SKU, *a.Qty),
			fmt.Sprintf("qty %d", it.Qty))
	}
	return nil
}

func assertAbsent(state cart.State, a Assertion) error {
	if it, ok := state.Find(a.SKU); ok {
		return fail(state, AssertAbsent,
			fmt.Sprintf("no line %s", a.SKU),
			fmt.Sprintf("present with qty %d", it.Qty))
	}
	return nil
}

func assertOrder(state cart.State, a Assertion) error {
	got := state.SKUs()
	if !slices.Equal(got, a.SKUs) {
		return fail(state, AssertOrder,
			fmt.Sprintf("%v", a.SKUs),
			fmt.Sprintf("%v", got))
	}
	return nil
}

func assertFinalState(state cart.State, a Assertion) error {
	got := make(map[string]int64, state.Len())
	for _, it := range state.Cart {
		got[it.SKU] = it.Qty
	}
	if !maps.Equal(got, a.Lines) {
		return fail(state, AssertFinalState, formatLines(a.Lines), formatLines(got))
	}
	return nil
}

func assertSubtotal(state cart.State, a Assertion) error {
	want, err := decimal.NewFromString(a.Amount)
	if err != nil {
		return fmt.Errorf("subtotal amount %q: %w", a.Amount, err)
	}
	got := state.Subtotal()
	if !got.Equal(want) {
		return fail(state, AssertSubtotal, want.String(), got.String())
	}
	return nil
}

// formatLines renders sku to quantity pairs sorted by sku.
func formatLines(lines map[string]int64) string {
	skus := slices.Sorted(maps.Keys(lines))
	parts := make([]string, len(skus))
	for i, sku := range skus {
		parts[i] = fmt.Sprintf("%s=%d", sku, lines[sku])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
