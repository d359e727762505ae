package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cart/internal/cart"
)

func TestWidgetLifecycle_EndsEmpty(t *testing.T) {
	state := cart.NewState()
	for _, env := range WidgetLifecycle() {
		next, err := cart.Dispatch(state, env)
		require.NoError(t, err)
		state = next
	}
	assert.Empty(t, state.Cart)
}

func TestLine(t *testing.T) {
	it := Line("A1", "Widget", "9.99", 2)
	assert.Equal(t, "19.98", it.LineTotal().String())
}

func TestPrice_PanicsOnMalformed(t *testing.T) {
	assert.Panics(t, func() { Price("nine") })
}
