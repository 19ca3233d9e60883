package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
		wantOK   bool
	}{
		{"simple extension", "document.txt", "txt", true},
		{"multi extension returns last segment", "archive.tar.gz", "gz", true},
		{"no dot", "README", "", false},
		{"dotfile without suffix", ".bashrc", "", false},
		{"dotfile with suffix", ".config.fish", "fish", true},
		{"current dir", ".", "", false},
		{"parent dir", "..", "", false},
		{"trailing dot", "name.", "", true},
		{"leading dot run only", "...", "", false},
		{"leading dot run with suffix", "..foo.txt", "txt", true},
		{"unicode name", "résumé.pdf", "pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extension(tt.fileName)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtension_TypeContract(t *testing.T) {
	t.Run("invalid UTF-8 fails loudly", func(t *testing.T) {
		require.PanicsWithError(t, (&TypeContractError{Arg: "bad\xff"}).Error(), func() {
			Extension("bad\xff")
		})
	})

	t.Run("NUL byte fails loudly", func(t *testing.T) {
		require.Panics(t, func() {
			Extension("bad\x00name")
		})
	})

	t.Run("path separator fails loudly", func(t *testing.T) {
		require.Panics(t, func() {
			Extension("dir/file.txt")
		})
	})
}
