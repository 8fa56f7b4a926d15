package strutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCmpFold(t *testing.T) {
	require.True(t, CmpFold("Content-Disposition", "content-disposition"))
	require.True(t, CmpFold("BOUNDARY", "boundary"))
	require.True(t, CmpFold("", ""))
	require.False(t, CmpFold("boundary", "boundarie"))
	require.False(t, CmpFold("boundary", "boundar"))
}

func TestStripWS(t *testing.T) {
	require.Equal(t, "value", LStripWS(" \tvalue"))
	require.Equal(t, "value ", LStripWS("value "))
	require.Empty(t, LStripWS("  \t"))
	require.Equal(t, "value", RStripWS("value \t"))
	require.Equal(t, " value", RStripWS(" value"))
	require.Empty(t, RStripWS("  "))
}

func TestCutHeader(t *testing.T) {
	value, params := CutHeader("multipart/form-data; boundary=xyz")
	require.Equal(t, "multipart/form-data", value)
	require.Equal(t, "boundary=xyz", params)

	value, params = CutHeader("text/plain")
	require.Equal(t, "text/plain", value)
	require.Empty(t, params)
}

func TestUnquote(t *testing.T) {
	require.Equal(t, "file.png", Unquote(`"file.png"`))
	require.Equal(t, "file.png", Unquote("file.png"))
	require.Equal(t, `"`, Unquote(`"`))
	require.Empty(t, Unquote(`""`))
}

func TestWalkKV(t *testing.T) {
	collect := func(data string) (pairs [][2]string) {
		for key, value := range WalkKV(data) {
			pairs = append(pairs, [2]string{key, value})
		}

		return pairs
	}

	t.Run("content-disposition params", func(t *testing.T) {
		pairs := collect(`form-data; name="file1"; filename="a b.png"`)
		require.Equal(t, [][2]string{
			{"form-data", ""},
			{"name", "file1"},
			{"filename", "a b.png"},
		}, pairs)
	})

	t.Run("unquoted and spaced", func(t *testing.T) {
		pairs := collect("boundary=xyz ;  charset=utf-8")
		require.Equal(t, [][2]string{
			{"boundary", "xyz "},
			{"charset", "utf-8"},
		}, pairs)
	})

	t.Run("empty", func(t *testing.T) {
		require.Empty(t, collect(""))
	})
}
