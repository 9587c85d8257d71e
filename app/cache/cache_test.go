package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_InMemory(t *testing.T) {
	c, err := Open("")
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set("k", []byte("v"), 0))
	got, ok, err := c.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(got))

	require.NoError(t, c.Set("k", []byte("v2"), time.Hour))
	got, _, err = c.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func TestKey(t *testing.T) {
	a := Key("translate", "model", "he", "en", "שלום")
	b := Key("translate", "model", "he", "en", "שלום")
	c := Key("translate", "model", "en", "he", "שלום")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "translate:")
	// Part boundaries matter.
	assert.NotEqual(t, Key("n", "ab", "c"), Key("n", "a", "bc"))
}
