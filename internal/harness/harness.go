package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/cart/internal/cart"
	"github.com/roach88/cart/internal/session"
	"github.com/roach88/cart/internal/testutil"
)

// Harness runs scenarios against a fresh session each time.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger routes session and step logs to l. By default they are
// discarded.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates a Harness.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes scenario with a default Harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(context.Background(), scenario)
}

// Run executes scenario and returns the result.
//
// Expectation and assertion failures are reported in the Result. The error
// return is reserved for scenarios that cannot run at all, such as a
// malformed price or a cancelled context.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	initial, err := initialState(scenario.Initial)
	if err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}

	var ids session.IDGenerator = testutil.NewSequentialIDs("")
	if scenario.SessionID != "" {
		ids = session.NewFixedGenerator(scenario.SessionID)
	}
	logger := h.logger.With("scenario", scenario.Name)
	sess := session.New(
		session.WithInitialState(initial),
		session.WithClock(testutil.NewDeterministicClock()),
		session.WithIDGenerator(ids),
		session.WithLogger(logger),
	)

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.runStep(ctx, sess, i, step, result); err != nil {
			return nil, err
		}
	}
	result.Final = sess.State()

	v, err := sess.Verify(ctx)
	if err != nil {
		return nil, fmt.Errorf("verifying replay: %w", err)
	}
	if !v.Deterministic {
		result.AddError(fmt.Sprintf("replay diverged after %d actions", v.Mismatch))
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) runStep(ctx context.Context, sess *session.Session, i int, step Step, result *Result) error {
	env, err := step.Action.Envelope()
	if err != nil {
		return fmt.Errorf("step %d: %w", i+1, err)
	}
	before := len(sess.History())

	_, dispatchErr := sess.Dispatch(ctx, env)
	if dispatchErr != nil && cart.CodeOf(dispatchErr) == "" {
		// Not a reducer rejection, e.g. context cancellation.
		return fmt.Errorf("step %d: %w", i+1, dispatchErr)
	}

	ev := TraceEvent{
		Step:        i + 1,
		Type:        string(env.Type),
		SKU:         env.SKU(),
		Outcome:     OutcomeOK,
		Fingerprint: sess.State().Fingerprint(),
	}
	if dispatchErr != nil {
		ev.Outcome = string(cart.CodeOf(dispatchErr))
	} else if history := sess.History(); len(history) > before {
		ev.Seq = history[len(history)-1].Seq
	}
	result.AddTrace(ev)

	want := OutcomeOK
	if step.Expect != nil && step.Expect.Error != "" {
		want = step.Expect.Error
	}
	if ev.Outcome != want {
		msg := fmt.Sprintf("step %d (%s %s): expected %s, got %s", ev.Step, ev.Type, ev.SKU, want, ev.Outcome)
		if dispatchErr != nil {
			msg += ": " + dispatchErr.Error()
		}
		result.AddError(msg)
	}

	h.logger.Debug("step completed",
		"scenario_step", ev.Step,
		"type", ev.Type,
		"sku", ev.SKU,
		"outcome", ev.Outcome,
		"expected", want,
	)
	return nil
}

func initialState(lines []Line) (cart.State, error) {
	items := make([]cart.Item, 0, len(lines))
	for _, l := range lines {
		it, err := l.Item()
		if err != nil {
			return cart.State{}, err
		}
		items = append(items, it)
	}
	state := cart.NewStateWith(items...)
	if err := state.Validate(); err != nil {
		return cart.State{}, err
	}
	return state, nil
}
