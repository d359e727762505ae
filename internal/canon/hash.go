package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes SHA256(domain + 0x00 + Marshal(v)) as lowercase hex.
// The separator keeps domain and payload boundaries unambiguous.
func Fingerprint(domain string, v Value) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", domain, err)
	}
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only when v is known to contain no nulls.
func MustFingerprint(domain string, v Value) string {
	fp, err := Fingerprint(domain, v)
	if err != nil {
		panic(err)
	}
	return fp
}
