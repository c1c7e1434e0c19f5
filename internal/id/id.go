// Package id generates the identifiers used across the library: every book,
// note, goal, and subscription gets a NanoID tagged with its entity kind.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate returns a new identifier of the form "<prefix>-<nanoid>", e.g.
// "book-V1StGXR8_Z5jdHi6B-myT". The prefix makes IDs self-describing in
// logs and in the raw database, and the 21-character NanoID body keeps them
// shorter than a UUID while staying URL-safe.
//
// The only failure mode is the entropy source being unavailable.
func Generate(prefix string) (string, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + suffix, nil
}

// MustGenerate panics when Generate fails. Entropy exhaustion is not a
// condition a local reading tracker can recover from, so every caller in
// this codebase uses this form.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
