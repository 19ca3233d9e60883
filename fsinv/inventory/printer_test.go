package inventory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreePrinter_RenderTree(t *testing.T) {
	tp := NewTreePrinter()

	t.Run("renders directories and files with depth indentation", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "top.txt"), []byte("t"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "nested.txt"), []byte("n"), 0o644))

		out := tp.RenderTree(root, "|   ", "|-- ", "+-- ")
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 4)

		sep := string(os.PathSeparator)
		assert.Equal(t, "+-- "+filepath.Base(root)+sep, lines[0])
		assert.Equal(t, "|   |-- top.txt", lines[1])
		assert.Equal(t, "|   +-- sub"+sep, lines[2])
		assert.Equal(t, "|   |   |-- nested.txt", lines[3])
	})

	t.Run("empty directory renders only the root line", func(t *testing.T) {
		root := t.TempDir()
		out := tp.RenderTree(root, "  ", "- ", "+ ")
		assert.Equal(t, "+ "+filepath.Base(root)+string(os.PathSeparator)+"\n", out)
	})

	t.Run("nonexistent root produces empty output", func(t *testing.T) {
		out := tp.RenderTree(filepath.Join(t.TempDir(), "ghost"), "  ", "- ", "+ ")
		assert.Empty(t, out)
	})
}
