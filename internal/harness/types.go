package harness

import "github.com/roach88/cart/internal/cart"

// OutcomeOK is the trace outcome of a step the reducer accepted.
const OutcomeOK = "ok"

// TraceEvent records one dispatched step.
type TraceEvent struct {
	// Step is the 1-based position in the scenario.
	Step int `json:"step"`

	// Seq is the session sequence number. Zero when the step was rejected.
	Seq int64 `json:"seq,omitempty"`

	Type string `json:"type"`
	SKU  string `json:"sku,omitempty"`

	// Outcome is OutcomeOK or the cart.ErrorCode of the rejection.
	Outcome string `json:"outcome"`

	// Fingerprint identifies the session state after the step.
	Fingerprint string `json:"fingerprint"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every step matched its expectation and every
	// assertion held.
	Pass bool `json:"pass"`

	// Trace holds one event per step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the session state after the last step.
	Final cart.State `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Final:  cart.NewState(),
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
