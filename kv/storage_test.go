package kv

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	getHeaders := func() *Storage {
		return New().
			Add("Content-Disposition", `form-data; name="file1"; filename="a.bin"`).
			Add("Content-Type", "application/octet-stream").
			Add("X-Custom", "first").
			Add("x-custom", "second")
	}

	t.Run("case-insensitive get", func(t *testing.T) {
		kv := getHeaders()

		value, found := kv.Get("content-type")
		require.True(t, found)
		require.Equal(t, "application/octet-stream", value)
		require.Equal(t, "first", kv.Value("X-CUSTOM"))
		require.Equal(t, "fallback", kv.ValueOr("Missing", "fallback"))
		require.False(t, kv.Has("Missing"))
	})

	t.Run("values collects all casings", func(t *testing.T) {
		kv := getHeaders()
		require.Equal(t, []string{"first", "second"}, slices.Collect(kv.Values("X-Custom")))
	})

	t.Run("pairs preserve insertion order", func(t *testing.T) {
		kv := getHeaders()
		var keys []string

		for key := range kv.Pairs() {
			keys = append(keys, key)
		}

		require.Equal(t, []string{"Content-Disposition", "Content-Type", "X-Custom", "x-custom"}, keys)
		require.Equal(t, 4, kv.Len())
		require.False(t, kv.Empty())
	})

	t.Run("from map", func(t *testing.T) {
		kv := NewFromMap(map[string][]string{
			"Content-Type": {"text/plain"},
		})
		require.Equal(t, "text/plain", kv.Value("content-type"))
	})
}
