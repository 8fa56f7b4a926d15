package sink

import (
	"os"
	"testing"

	"github.com/indigo-web/streamform/status"
	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	t.Run("lifecycle", func(t *testing.T) {
		buff := NewBuffer(16)
		require.NoError(t, buff.Append([]byte("Hello, ")))
		require.NoError(t, buff.Append([]byte("world!")))

		_, err := buff.Bytes()
		require.ErrorIs(t, err, status.ErrSinkNotFinalized)

		require.NoError(t, buff.Finalize())
		data, err := buff.Bytes()
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(data))
		require.Equal(t, int64(13), buff.Size())
	})

	t.Run("append after finalize", func(t *testing.T) {
		buff := NewBuffer(0)
		require.NoError(t, buff.Finalize())
		require.ErrorIs(t, buff.Append([]byte("late")), status.ErrSinkFinalized)
		require.ErrorIs(t, buff.Finalize(), status.ErrSinkFinalized)
	})

	t.Run("release is idempotent", func(t *testing.T) {
		buff := NewBuffer(0)
		require.NoError(t, buff.Append([]byte("data")))
		require.NoError(t, buff.Release())
		require.NoError(t, buff.Release())

		_, err := buff.Bytes()
		require.ErrorIs(t, err, status.ErrSinkReleased)
	})
}

func TestFile(t *testing.T) {
	t.Run("lifecycle", func(t *testing.T) {
		file, err := NewFile(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, file.Append([]byte("strea")))
		require.NoError(t, file.Append([]byte("med")))
		require.NoError(t, file.Finalize())

		data, err := file.Bytes()
		require.NoError(t, err)
		require.Equal(t, "streamed", string(data))
		require.Equal(t, int64(8), file.Size())

		require.NoError(t, file.Release())
		_, err = os.Stat(file.Path())
		require.True(t, os.IsNotExist(err))
		require.NoError(t, file.Release())
	})

	t.Run("unique names", func(t *testing.T) {
		dir := t.TempDir()
		first, err := NewFile(dir)
		require.NoError(t, err)
		second, err := NewFile(dir)
		require.NoError(t, err)
		require.NotEqual(t, first.Path(), second.Path())
		require.NoError(t, first.Release())
		require.NoError(t, second.Release())
	})

	t.Run("release deletes unfinalized file", func(t *testing.T) {
		file, err := NewFile(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, file.Append([]byte("partial")))
		require.NoError(t, file.Release())

		_, err = os.Stat(file.Path())
		require.True(t, os.IsNotExist(err))
		require.ErrorIs(t, file.Append([]byte("x")), status.ErrSinkReleased)
	})
}
