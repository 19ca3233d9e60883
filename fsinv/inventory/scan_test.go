package inventory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "guide.md"), []byte("# guide"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main"), 0o644))

	s := NewScanner(nil, DefaultWalkerOptions())
	result, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, result.ScanID)
	assert.Equal(t, root, result.Root)
	assert.Len(t, result.Entries, 3)
	assert.Equal(t, 2, result.Files())
	assert.Equal(t, 1, result.Directories())
	assert.Empty(t, result.Warnings)
	assert.GreaterOrEqual(t, result.Duration, time.Duration(0))
}

func TestScanner_Scan_RootValidation(t *testing.T) {
	s := NewScanner(nil, DefaultWalkerOptions())

	result, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "ghost"))
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestScanner_Scan_DistinctScanIDs(t *testing.T) {
	root := t.TempDir()
	s := NewScanner(nil, DefaultWalkerOptions())

	first, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	second, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.NotEqual(t, first.ScanID, second.ScanID)
}
