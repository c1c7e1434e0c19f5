package id_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booktrackapp/booktrack/internal/id"
)

func TestGenerate_Format(t *testing.T) {
	got, err := id.Generate("book")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "book-"))
	// Default NanoID is 21 characters plus our prefix and separator.
	assert.Len(t, got, len("book-")+21)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		got, err := id.Generate("note")
		require.NoError(t, err)
		require.False(t, seen[got], "duplicate ID generated: %s", got)
		seen[got] = true
	}
}

func TestMustGenerate_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = id.MustGenerate("goal")
	})
}
