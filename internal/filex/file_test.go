package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// minimal PNG signature plus IHDR start; enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestReadImage_PNG(t *testing.T) {
	p := writeFile(t, "a.png", pngHeader)

	ct, data, err := ReadImage(p, 1024)
	require.NoError(t, err)
	require.Equal(t, "image/png", ct)
	require.Equal(t, pngHeader, data)
}

func TestReadImage_TooLarge(t *testing.T) {
	p := writeFile(t, "a.png", pngHeader)

	_, _, err := ReadImage(p, 8)
	require.ErrorContains(t, err, "larger than")
}

func TestReadImage_NotAnImage(t *testing.T) {
	p := writeFile(t, "a.txt", []byte("hello there"))

	_, _, err := ReadImage(p, 1024)
	require.ErrorContains(t, err, "not an image")
}

func TestReadImage_Empty(t *testing.T) {
	p := writeFile(t, "a.png", nil)

	_, _, err := ReadImage(p, 1024)
	require.ErrorContains(t, err, "empty")
}

func TestReadImage_Missing(t *testing.T) {
	_, _, err := ReadImage(filepath.Join(t.TempDir(), "nope.png"), 1024)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
