// Package canon provides the canonical value model and encoding used to
// fingerprint cart states and actions.
//
// Values are a closed set of JSON-compatible types. There is no float type:
// prices travel as decimal strings so that two equal carts always encode to
// the same bytes.
//
// Encoding follows RFC 8785 (JSON Canonicalization Scheme):
//   - object keys sorted by UTF-16 code units
//   - String values NFC normalized, Exact values written as given
//   - no HTML escaping
//   - null rejected
//
// Fingerprints are SHA-256 over a domain prefix, a 0x00 separator and the
// canonical bytes.
package canon
