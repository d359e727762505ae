package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cart/internal/canon"
)

func TestState_CanonicalForm(t *testing.T) {
	s := NewStateWith(Item{SKU: "A1", Name: "Widget", Price: price("9.990"), Qty: 2})

	data, err := canon.Marshal(s.Value())
	require.NoError(t, err)
	assert.Equal(t, `{"cart":[{"name":"Widget","price":"9.99","qty":2,"sku":"A1"}]}`, string(data))
}

func TestState_FingerprintIgnoresExtraAndPriceScale(t *testing.T) {
	a := NewStateWith(Item{SKU: "A1", Name: "Widget", Price: price("9.9"), Qty: 1})
	b := NewStateWith(Item{SKU: "A1", Name: "Widget", Price: price("9.90"), Qty: 1})
	b.Extra = map[string]json.RawMessage{"currency": json.RawMessage(`"EUR"`)}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)
}

func TestState_FingerprintDependsOnOrder(t *testing.T) {
	a := NewStateWith(Item{SKU: "A1", Qty: 1}, Item{SKU: "B2", Qty: 1})
	b := NewStateWith(Item{SKU: "B2", Qty: 1}, Item{SKU: "A1", Qty: 1})
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestState_FingerprintDistinguishesUnnormalizedSKUs(t *testing.T) {
	composed := NewStateWith(Item{SKU: "caf\u00e9", Name: "Coffee", Qty: 1})
	decomposed := NewStateWith(Item{SKU: "cafe\u0301", Name: "Coffee", Qty: 1})

	// The reducer keeps these as separate lines, so their fingerprints differ.
	both := mustReduce(t, composed, Add{SKU: "cafe\u0301", Name: "Coffee", Price: price("1")})
	require.Equal(t, 2, both.Len())

	assert.NotEqual(t, composed.Fingerprint(), decomposed.Fingerprint())
	assert.NotEqual(t,
		ActionFingerprint(Remove{SKU: "caf\u00e9"}),
		ActionFingerprint(Remove{SKU: "cafe\u0301"}))
}

func TestState_FingerprintNormalizesNames(t *testing.T) {
	a := NewStateWith(Item{SKU: "C1", Name: "Caf\u00e9", Qty: 1})
	b := NewStateWith(Item{SKU: "C1", Name: "Cafe\u0301", Qty: 1})
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestState_EmptyAndNilCartShareFingerprint(t *testing.T) {
	assert.Equal(t, NewState().Fingerprint(), State{}.Fingerprint())
}

func TestActionValue_OnlyVariantFields(t *testing.T) {
	data, err := canon.Marshal(ActionValue(Remove{SKU: "A1"}))
	require.NoError(t, err)
	assert.Equal(t, `{"sku":"A1","type":"REMOVE"}`, string(data))

	data, err = canon.Marshal(ActionValue(Submit{}))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"SUBMIT"}`, string(data))
}

func TestActionFingerprint_DomainSeparated(t *testing.T) {
	// Same canonical bytes under a different domain must not collide.
	v := ActionValue(Submit{})
	assert.NotEqual(t, canon.MustFingerprint(DomainState, v), ActionFingerprint(Submit{}))
}
