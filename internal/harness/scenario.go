package harness

import (
	"bytes"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/roach88/cart/internal/cart"
)

// Scenario is a conformance test: actions applied in order to one session,
// with per-step expectations and assertions on the final cart.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// SessionID fixes the session identifier. Defaults to
	// testutil.DefaultSessionPrefix with a sequence suffix.
	SessionID string `yaml:"session_id,omitempty"`

	// Initial is the cart the session starts with. Empty by default.
	Initial []Line `yaml:"initial,omitempty"`

	// Steps are dispatched in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final cart.
	Assertions []Assertion `yaml:"assertions"`
}

// Line is a cart line as written in scenario YAML. Price is kept as text so
// it converts to a decimal without passing through a float.
type Line struct {
	SKU   string `yaml:"sku"`
	Name  string `yaml:"name,omitempty"`
	Price string `yaml:"price,omitempty"`
	Qty   int64  `yaml:"qty,omitempty"`
}

// Item converts l to a cart.Item. An empty price is zero.
func (l Line) Item() (cart.Item, error) {
	price := decimal.Zero
	if l.Price != "" {
		p, err := decimal.NewFromString(l.Price)
		if err != nil {
			return cart.Item{}, fmt.Errorf("sku %q: invalid price %q: %w", l.SKU, l.Price, err)
		}
		price = p
	}
	return cart.Item{SKU: l.SKU, Name: l.Name, Price: price, Qty: l.Qty}, nil
}

// Step dispatches one action.
type Step struct {
	Action StepAction `yaml:"action"`

	// Expect names the expected outcome. A nil Expect means the step must
	// succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// StepAction is the envelope form of an action in YAML. The type is not
// checked when loading, so scenarios can exercise unrecognized types.
type StepAction struct {
	Type    string `yaml:"type"`
	Payload *Line  `yaml:"payload,omitempty"`
}

// Envelope converts a to a cart.Envelope.
func (a StepAction) Envelope() (cart.Envelope, error) {
	env := cart.Envelope{Type: cart.ActionType(a.Type)}
	if a.Payload != nil {
		item, err := a.Payload.Item()
		if err != nil {
			return cart.Envelope{}, err
		}
		env.Payload = &item
	}
	return env, nil
}

// Expect is the expected outcome of a step.
type Expect struct {
	// Error is the expected cart.ErrorCode, or empty for success.
	Error string `yaml:"error"`
}

// Assertion validates the final cart. Which fields apply depends on Type.
type Assertion struct {
	Type string `yaml:"type"`

	// SKU is the line checked by contains and absent.
	SKU string `yaml:"sku,omitempty"`

	// Qty optionally pins the quantity for contains.
	Qty *int64 `yaml:"qty,omitempty"`

	// Count is the expected number of lines for cart_len.
	Count *int `yaml:"count,omitempty"`

	// SKUs is the exact expected order for order.
	SKUs []string `yaml:"skus,omitempty"`

	// Lines maps sku to quantity for final_state.
	Lines map[string]int64 `yaml:"lines,omitempty"`

	// Amount is the expected decimal subtotal for subtotal.
	Amount string `yaml:"amount,omitempty"`
}

// Assertion type constants.
const (
	AssertCartLen    = "cart_len"
	AssertContains   = "contains"
	AssertAbsent     = "absent"
	AssertOrder      = "order"
	AssertFinalState = "final_state"
	AssertSubtotal   = "subtotal"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos such as "assertion:" fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML and validates it.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if _, err := initialState(s.Initial); err != nil {
		return fmt.Errorf("initial: %w", err)
	}

	for i, step := range s.Steps {
		if step.Action.Type == "" {
			return fmt.Errorf("steps[%d]: action.type is required", i)
		}
		if _, err := step.Action.Envelope(); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertCartLen:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for cart_len", index)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for cart_len", index)
		}
	case AssertContains, AssertAbsent:
		if a.SKU == "" {
			return fmt.Errorf("assertions[%d]: sku is required for %s", index, a.Type)
		}
	case AssertOrder:
		if a.SKUs == nil {
			return fmt.Errorf("assertions[%d]: skus list is required for order", index)
		}
	case AssertFinalState:
		if a.Lines == nil {
			return fmt.Errorf("assertions[%d]: lines is required for final_state", index)
		}
	case AssertSubtotal:
		if _, err := decimal.NewFromString(a.Amount); err != nil {
			return fmt.Errorf("assertions[%d]: amount must be a decimal for subtotal: %w", index, err)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
