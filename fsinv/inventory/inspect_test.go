package inventory

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatUtils_FileSize(t *testing.T) {
	su := NewStatUtils()

	t.Run("returns exact byte count", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "eleven.txt")
		require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

		size, err := su.FileSize(path)
		require.NoError(t, err)
		assert.Equal(t, int64(11), size)
	})

	t.Run("directory is a not-a-file failure", func(t *testing.T) {
		_, err := su.FileSize(t.TempDir())
		require.Error(t, err)
		assert.Equal(t, FailureNotAFile, FailureKindOf(err))
	})

	t.Run("nonexistent path is a not-found failure", func(t *testing.T) {
		_, err := su.FileSize(filepath.Join(t.TempDir(), "ghost"))
		require.Error(t, err)
		assert.Equal(t, FailureNotFound, FailureKindOf(err))
	})
}

func TestStatUtils_Permissions(t *testing.T) {
	su := NewStatUtils()

	t.Run("regular file renders fixed-width mode string", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		perms := su.Permissions(path)
		assert.Equal(t, "-rw-r--r--", perms)
	})

	t.Run("directory leads with d", func(t *testing.T) {
		perms := su.Permissions(t.TempDir())
		assert.Len(t, perms, 10)
		assert.Equal(t, byte('d'), perms[0])
	})

	t.Run("missing path returns sentinel", func(t *testing.T) {
		perms := su.Permissions(filepath.Join(t.TempDir(), "ghost"))
		assert.Equal(t, PermissionsSentinel, perms)
	})
}

func TestFormatFileMode(t *testing.T) {
	tests := []struct {
		name string
		mode fs.FileMode
		want string
	}{
		{"regular 0644", 0o644, "-rw-r--r--"},
		{"regular 0755", 0o755, "-rwxr-xr-x"},
		{"regular 0000", 0, "----------"},
		{"directory 0755", fs.ModeDir | 0o755, "drwxr-xr-x"},
		{"symlink 0777", fs.ModeSymlink | 0o777, "lrwxrwxrwx"},
		{"socket", fs.ModeSocket | 0o755, "srwxr-xr-x"},
		{"named pipe", fs.ModeNamedPipe | 0o644, "prw-r--r--"},
		{"setuid with exec", fs.ModeSetuid | 0o755, "-rwsr-xr-x"},
		{"setuid without exec", fs.ModeSetuid | 0o644, "-rwSr--r--"},
		{"setgid with exec", fs.ModeSetgid | 0o755, "-rwxr-sr-x"},
		{"sticky dir", fs.ModeDir | fs.ModeSticky | 0o777, "drwxrwxrwt"},
		{"sticky without exec", fs.ModeDir | fs.ModeSticky | 0o776, "drwxrwxrwT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFileMode(tt.mode))
		})
	}
}
