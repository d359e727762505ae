package session

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/cart/internal/cart"
)

// Entry records one accepted action.
type Entry struct {
	// Seq is the logical clock value assigned when the action was accepted.
	Seq int64 `json:"seq"`

	// Action is the envelope as dispatched.
	Action cart.Envelope `json:"action"`

	// Fingerprint identifies the state after the action.
	Fingerprint string `json:"fingerprint"`
}

// Session holds one cart and serializes the actions applied to it.
//
// Safe for concurrent use: Dispatch and Apply hold a mutex across
// reduce-and-replace, so concurrent callers observe a single order.
type Session struct {
	mu      sync.Mutex
	id      string
	initial cart.State
	state   cart.State
	history []Entry
	clock   Clock
	idGen   IDGenerator
	logger  *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithInitialState starts the session from state instead of an empty cart.
func WithInitialState(state cart.State) Option {
	return func(s *Session) {
		s.initial = state.Clone()
	}
}

// WithClock sets the clock used to stamp history entries.
func WithClock(c Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithIDGenerator sets the generator used for the session ID.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Session) {
		s.idGen = g
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		s.logger = l
	}
}

// New creates a session. Without options it starts from an empty cart with
// a fresh UUIDv7 ID and logs to slog.Default().
func New(opts ...Option) *Session {
	s := &Session{
		initial: cart.NewState(),
		clock:   NewClock(),
		idGen:   UUIDv7Generator{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.id = s.idGen.Generate()
	s.state = s.initial.Clone()
	s.logger = s.logger.With("session", s.id)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns a copy of the current state.
func (s *Session) State() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Initial returns a copy of the state the session started from.
func (s *Session) Initial() cart.State {
	return s.initial.Clone()
}

// History returns a copy of the accepted actions in order.
func (s *Session) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}

// Dispatch decodes env and applies it. On error the held state and history
// are unchanged and the error is returned as produced by the reducer.
func (s *Session) Dispatch(ctx context.Context, env cart.Envelope) (cart.State, error) {
	if err := ctx.Err(); err != nil {
		return cart.State{}, err
	}

	action, err := env.Decode()
	if err != nil {
		s.logger.Warn("action rejected",
			"type", env.Type,
			"sku", env.SKU(),
			"error", err,
		)
		return cart.State{}, err
	}
	return s.apply(ctx, env, action)
}

// Apply applies a typed action.
func (s *Session) Apply(ctx context.Context, action cart.Action) (cart.State, error) {
	if err := ctx.Err(); err != nil {
		return cart.State{}, err
	}
	return s.apply(ctx, cart.Wrap(action), action)
}

func (s *Session) apply(ctx context.Context, env cart.Envelope, action cart.Action) (cart.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Checked again under the lock: a caller may have waited here.
	if err := ctx.Err(); err != nil {
		return cart.State{}, err
	}

	next, err := cart.Reduce(s.state, action)
	if err != nil {
		s.logger.Warn("action rejected",
			"type", env.Type,
			"sku", env.SKU(),
			"error", err,
		)
		return cart.State{}, err
	}

	entry := Entry{
		Seq:         s.clock.Next(),
		Action:      env,
		Fingerprint: next.Fingerprint(),
	}
	s.state = next
	s.history = append(s.history, entry)

	s.logger.Debug("action applied",
		"seq", entry.Seq,
		"type", env.Type,
		"sku", env.SKU(),
		"lines", next.Len(),
		"items", next.TotalItems(),
		"fingerprint", entry.Fingerprint,
	)
	return next.Clone(), nil
}

// Verify replays the history from the initial state and checks that every
// step reproduces its recorded fingerprint.
func (s *Session) Verify(ctx context.Context) (Verification, error) {
	s.mu.Lock()
	initial := s.initial.Clone()
	history := make([]Entry, len(s.history))
	copy(history, s.history)
	current := s.state.Fingerprint()
	s.mu.Unlock()

	v := Verification{Steps: len(history), Deterministic: true}
	state := initial
	for i, e := range history {
		if err := ctx.Err(); err != nil {
			return v, err
		}
		next, err := cart.Dispatch(state, e.Action)
		if err != nil {
			return v, &ReplayError{Step: i, Action: e.Action, Err: err}
		}
		if fp := next.Fingerprint(); fp != e.Fingerprint {
			v.Deterministic = false
			v.Mismatch = i + 1
			s.logger.Error("replay diverged",
				"step", i,
				"seq", e.Seq,
				"recorded", e.Fingerprint,
				"replayed", fp,
			)
			return v, nil
		}
		state = next
	}

	v.Fingerprint = state.Fingerprint()
	if v.Fingerprint != current {
		v.Deterministic = false
		v.Mismatch = len(history)
	}
	return v, nil
}
