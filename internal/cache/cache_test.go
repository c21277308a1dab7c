package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key("openai:gpt-4o-mini", []string{"іванов", "іван"})
	b := Key("openai:gpt-4o-mini", []string{"іванов", "іван"})
	assert.Equal(t, a, b)
}

func TestKeySensitivity(t *testing.T) {
	base := Key("m:1", []string{"a", "b"})

	assert.NotEqual(t, base, Key("m:2", []string{"a", "b"}))
	assert.NotEqual(t, base, Key("m:1", []string{"a", "c"}))
	// Token boundaries matter: ["ab"] is not ["a","b"].
	assert.NotEqual(t, Key("m:1", []string{"ab"}), base)
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	require.NoError(t, c.Set("k", []byte("v"), time.Minute))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set("k", []byte("v"), 10*time.Millisecond))

	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}
