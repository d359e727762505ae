// Package session hosts a cart for one browsing session.
//
// A Session is the caller the reducer expects: it holds the current state,
// applies one action at a time through cart.Reduce, and replaces its state
// only when the reducer succeeds. Every accepted action is stamped with a
// logical sequence number and recorded in the history together with the
// fingerprint of the resulting state, so the session can be replayed and
// checked for determinism.
package session
