package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cart/internal/cart"
)

// LoadActions reads an action document from path. A single action object is
// returned as a one-element list.
func LoadActions(path string) ([]cart.Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isYAML(path) {
		if data, err = YAMLToJSON(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	actions, err := ParseActions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return actions, nil
}

// ParseActions decodes a JSON action document.
func ParseActions(data []byte) ([]cart.Envelope, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty action document")
	}

	if data[0] == '[' {
		var actions []cart.Envelope
		if err := json.Unmarshal(data, &actions); err != nil {
			return nil, fmt.Errorf("decoding actions: %w", err)
		}
		return actions, nil
	}

	var env cart.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding action: %w", err)
	}
	return []cart.Envelope{env}, nil
}

// LoadState reads a state document from path.
func LoadState(path string) (cart.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cart.State{}, err
	}
	if isYAML(path) {
		if data, err = YAMLToJSON(data); err != nil {
			return cart.State{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	var state cart.State
	if err := json.Unmarshal(data, &state); err != nil {
		return cart.State{}, fmt.Errorf("%s: decoding state: %w", path, err)
	}
	if err := state.Validate(); err != nil {
		return cart.State{}, fmt.Errorf("%s: %w", path, err)
	}
	return state, nil
}

// YAMLToJSON re-encodes a YAML document as JSON. Mappings must have string
// keys.
func YAMLToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("converting YAML to JSON: %w", err)
	}
	return out, nil
}
