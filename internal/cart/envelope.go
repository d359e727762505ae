package cart

// Envelope is the untyped action descriptor exchanged with hosts:
//
//	{"type": "ADD", "payload": {"sku": "A1", "name": "Widget", "price": "9.99"}}
//
// Payload is optional on the wire but required for ADD, REMOVE and
// QUANTITY. SUBMIT ignores it.
type Envelope struct {
	Type    ActionType `json:"type"`
	Payload *Item      `json:"payload,omitempty"`
}

// Decode converts e into a typed Action.
// Returns MISSING_PAYLOAD or UNKNOWN_ACTION_TYPE errors.
func (e Envelope) Decode() (Action, error) {
	switch e.Type {
	case TypeAdd:
		if e.Payload == nil {
			return nil, newMissingPayload(e.Type)
		}
		return Add{SKU: e.Payload.SKU, Name: e.Payload.Name, Price: e.Payload.Price}, nil

	case TypeRemove:
		if e.Payload == nil {
			return nil, newMissingPayload(e.Type)
		}
		return Remove{SKU: e.Payload.SKU}, nil

	case TypeQuantity:
		if e.Payload == nil {
			return nil, newMissingPayload(e.Type)
		}
		return Quantity{SKU: e.Payload.SKU, Qty: e.Payload.Qty}, nil

	case TypeSubmit:
		return Submit{}, nil

	default:
		return nil, newUnknownActionType(e.Type)
	}
}

// Wrap converts a typed Action back into its envelope form.
func Wrap(a Action) Envelope {
	switch act := a.(type) {
	case Add:
		return Envelope{Type: TypeAdd, Payload: &Item{SKU: act.SKU, Name: act.Name, Price: act.Price}}
	case Remove:
		return Envelope{Type: TypeRemove, Payload: &Item{SKU: act.SKU}}
	case Quantity:
		return Envelope{Type: TypeQuantity, Payload: &Item{SKU: act.SKU, Qty: act.Qty}}
	case Submit:
		return Envelope{Type: TypeSubmit}
	default:
		return Envelope{}
	}
}

// SKU returns the payload SKU, or "" when there is no payload.
func (e Envelope) SKU() string {
	if e.Payload == nil {
		return ""
	}
	return e.Payload.SKU
}
