package session

import (
	"context"
	"fmt"

	"github.com/roach88/cart/internal/cart"
)

// ReplayError reports the step at which a replay stopped.
type ReplayError struct {
	// Step is the zero-based index into the action list.
	Step int

	// Action is the envelope that failed.
	Action cart.Envelope

	// Err is the reducer error.
	Err error
}

// Error implements the error interface.
func (e *ReplayError) Error() string {
	return fmt.Sprintf("replay step %d (%s): %v", e.Step, e.Action.Type, e.Err)
}

// Unwrap returns the reducer error so cart.Is* helpers match.
func (e *ReplayError) Unwrap() error {
	return e.Err
}

// Replay folds actions over initial and returns the final state.
// Stops at the first failing action with a *ReplayError.
func Replay(ctx context.Context, initial cart.State, actions []cart.Envelope) (cart.State, error) {
	state := initial
	for i, env := range actions {
		if err := ctx.Err(); err != nil {
			return cart.State{}, err
		}
		next, err := cart.Dispatch(state, env)
		if err != nil {
			return cart.State{}, &ReplayError{Step: i, Action: env, Err: err}
		}
		state = next
	}
	// With no actions the result would alias initial.
	return state.Clone(), nil
}

// Verification is the outcome of a determinism check.
type Verification struct {
	// Steps is the number of actions replayed.
	Steps int `json:"steps"`

	// Fingerprint identifies the final state.
	Fingerprint string `json:"fingerprint"`

	// Deterministic is true when every run produced identical fingerprints.
	Deterministic bool `json:"deterministic"`

	// Mismatch is the number of actions applied at the first point where
	// the runs disagreed. Meaningful only when Deterministic is false.
	Mismatch int `json:"mismatch,omitempty"`
}

// VerifyReplay replays actions twice from initial and compares the state
// fingerprint after every step.
func VerifyReplay(ctx context.Context, initial cart.State, actions []cart.Envelope) (Verification, error) {
	first, err := fingerprints(ctx, initial, actions)
	if err != nil {
		return Verification{}, err
	}
	second, err := fingerprints(ctx, initial, actions)
	if err != nil {
		return Verification{}, err
	}

	v := Verification{
		Steps:         len(actions),
		Fingerprint:   first[len(first)-1],
		Deterministic: true,
	}
	for i := range first {
		if first[i] != second[i] {
			v.Deterministic = false
			v.Mismatch = i
			break
		}
	}
	return v, nil
}

// fingerprints returns the fingerprint of initial followed by the
// fingerprint after each action.
func fingerprints(ctx context.Context, initial cart.State, actions []cart.Envelope) ([]string, error) {
	out := make([]string, 0, len(actions)+1)
	out = append(out, initial.Fingerprint())

	state := initial
	for i, env := range actions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := cart.Dispatch(state, env)
		if err != nil {
			return nil, &ReplayError{Step: i, Action: env, Err: err}
		}
		out = append(out, next.Fingerprint())
		state = next
	}
	return out, nil
}
