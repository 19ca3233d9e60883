package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ScanResult is the wholesale outcome of one inventory scan. The embedded
// warning list replaces process-wide diagnostic printing: callers capture or
// suppress diagnostics without intercepting console output.
type ScanResult struct {
	ScanID   uuid.UUID         `json:"scan_id"`
	Root     string            `json:"root"`
	Entries  []EntryDescriptor `json:"entries"`
	Warnings []Warning         `json:"warnings"`
	Duration time.Duration     `json:"duration"`
}

// Files returns the number of file descriptors in the result.
func (r *ScanResult) Files() int { return r.count(EntryFile) }

// Directories returns the number of directory descriptors in the result,
// inaccessible markers included.
func (r *ScanResult) Directories() int {
	return r.count(EntryDir) + r.count(EntryDirInaccessible)
}

func (r *ScanResult) count(t EntryType) int {
	n := 0
	for i := range r.Entries {
		if r.Entries[i].Type == t {
			n++
		}
	}
	return n
}

// Scanner is the high-level entry point for building directory inventories.
// It owns a Walker and decorates each walk with a scan identity, timing and
// the collected diagnostics.
type Scanner struct {
	logger *slog.Logger
	walker *Walker
}

// NewScanner creates a new Scanner. A nil logger falls back to slog.Default().
func NewScanner(logger *slog.Logger, opts WalkerOptions) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		logger: logger,
		walker: NewWalker(logger, opts),
	}
}

// Scan inventories the subtree rooted at rootPath. Root validation failures
// are the only errors; everything environmental below the root degrades into
// warnings on the result.
func (s *Scanner) Scan(ctx context.Context, rootPath string) (*ScanResult, error) {
	scanID := uuid.New()
	start := time.Now()

	s.logger.Info("Starting inventory scan", "scan_id", scanID, "root", rootPath)

	entries, warnings, err := s.walker.buildTree(ctx, rootPath)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{
		ScanID:   scanID,
		Root:     rootPath,
		Entries:  entries,
		Warnings: warnings,
		Duration: time.Since(start),
	}

	s.logger.Info("Inventory scan completed",
		"scan_id", scanID,
		"entries", len(result.Entries),
		"files", result.Files(),
		"dirs", result.Directories(),
		"warnings", len(result.Warnings),
		"duration", result.Duration)

	return result, nil
}
