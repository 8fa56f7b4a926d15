package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	t.Run("segments", func(t *testing.T) {
		buff := New(4, 16)

		require.True(t, buff.Append([]byte("Hello")))
		require.True(t, buff.Append([]byte(", ")))
		require.Equal(t, 7, buff.SegmentLength())
		require.Equal(t, "Hello, ", string(buff.Preview()))
		first := buff.Finish()
		require.Equal(t, "Hello, ", string(first))

		require.True(t, buff.Append([]byte("World!")))
		require.Equal(t, 6, buff.SegmentLength())
		second := buff.Finish()
		require.Equal(t, "World!", string(second))

		// completed segments stay intact
		require.Equal(t, "Hello, ", string(first))
	})

	t.Run("overflow", func(t *testing.T) {
		buff := New(2, 5)

		require.True(t, buff.Append([]byte("Hell")))
		require.False(t, buff.Append([]byte("o!")))
		require.Equal(t, "Hell", string(buff.Preview()))
		require.True(t, buff.Append([]byte("o")))
		require.Equal(t, "Hello", string(buff.Finish()))
	})

	t.Run("clear", func(t *testing.T) {
		buff := New(2, 5)

		require.True(t, buff.Append([]byte("Hello")))
		buff.Finish()
		require.False(t, buff.Append([]byte("x")))
		buff.Clear()
		require.True(t, buff.Append([]byte("again")))
		require.Equal(t, "again", string(buff.Finish()))
	})
}
