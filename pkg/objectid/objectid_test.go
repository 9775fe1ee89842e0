package objectid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducesValidUniqueIDs(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := New()
		require.Len(t, id, 24)
		require.True(t, Valid(id), id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"65a1f0c2e4b0a1b2c3d4e5f6":  true,
		"65A1F0C2E4B0A1B2C3D4E5F6":  true,
		"65a1f0c2e4b0a1b2c3d4e5f":   false,
		"65a1f0c2e4b0a1b2c3d4e5f67": false,
		"zza1f0c2e4b0a1b2c3d4e5f6":  false,
		"":                          false,
	}

	for input, want := range cases {
		assert.Equal(t, want, Valid(input), input)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	got, ok := Normalize("65A1F0C2E4B0A1B2C3D4E5F6")
	require.True(t, ok)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", got)

	_, ok = Normalize("65a1f0c2e4b0a1b2c3d4e5fZ")
	assert.False(t, ok)
}
