// Package id generates client-side identifiers for columns and cards.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for sub-entity ids
const (
	PrefixColumn = "col"
	PrefixCard   = "card"
)

// Generate creates a prefixed NanoID, e.g. "card-V1StGXR8_Z5jdHi6B-myT"
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// Generator produces fresh ids. The board store takes one so tests can
// substitute a deterministic sequence.
type Generator func(prefix string) (string, error)

// Sequence returns a Generator yielding prefix-1, prefix-2, ... per prefix
func Sequence() Generator {
	counters := map[string]int{}
	return func(prefix string) (string, error) {
		counters[prefix]++
		return fmt.Sprintf("%s-%d", prefix, counters[prefix]), nil
	}
}
