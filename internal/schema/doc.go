// Package schema validates cart documents against the CUE definitions in
// cart.cue and loads them into cart types.
//
// Two document kinds are recognized:
//
//   - action documents: one action object, or a list of them (#Action, #Document)
//   - state documents: {"cart": [...]} plus arbitrary extra fields (#State)
//
// Both may be written as JSON or YAML. YAML is converted to JSON with
// gopkg.in/yaml.v3 before validation, so both formats report the same paths.
package schema
