package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainCircuit is the domain prefix for circuit content hashes.
// The version suffix enables future canonical-form migration.
const DomainCircuit = "qmorph/circuit/v1"

// Hash computes the content-addressed identity of a circuit.
// Format: SHA256(domain + 0x00 + canonical bytes). The null separator
// prevents domain/data boundary ambiguity. Equal circuits (same registers,
// same op sequence, same parameters) always hash identically.
func Hash(c *Circuit) (string, error) {
	canonical, err := MarshalCanonical(c)
	if err != nil {
		return "", fmt.Errorf("hash circuit: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(DomainCircuit))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MustHash is like Hash but panics on error.
// Use only in tests or when the circuit is known to be valid.
func MustHash(c *Circuit) string {
	id, err := Hash(c)
	if err != nil {
		panic(err)
	}
	return id
}
