package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentUtils_ReadText(t *testing.T) {
	cu := NewContentUtils()

	t.Run("round-trips UTF-8 exactly including multi-byte runes", func(t *testing.T) {
		text := "plain ascii\nµ-services: 日本語 ✓ emoji 🎉\n"
		path := filepath.Join(t.TempDir(), "utf8.txt")
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

		got, err := cu.ReadText(path)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	})

	t.Run("empty file yields empty string", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.txt")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		got, err := cu.ReadText(path)
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("invalid byte sequence is a decode failure", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "binary.bin")
		require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0o644))

		_, err := cu.ReadText(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDecode)
		assert.Equal(t, FailureDecode, FailureKindOf(err))
	})

	t.Run("missing file is a not-found failure", func(t *testing.T) {
		_, err := cu.ReadText(filepath.Join(t.TempDir(), "ghost.txt"))
		require.Error(t, err)
		assert.Equal(t, FailureNotFound, FailureKindOf(err))
	})
}
