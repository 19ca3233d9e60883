package inventory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
)

// TraversalStats tracks performance metrics during a concurrent walk
type TraversalStats struct {
	DirsProcessed  int64
	FilesProcessed int64
	ErrorsFound    int64
	StartTime      int64
	EndTime        int64
}

// ConcurrentWalker builds the same flat descriptor list as Walker but
// processes whole directory levels in parallel on a bounded worker pool.
// Each directory task owns its local descriptor buffer; merges into the
// shared result are serialized behind a mutex. Result ordering is
// nondeterministic; callers requiring determinism must sort externally.
type ConcurrentWalker struct {
	maxWorkers int
	logger     *slog.Logger
	walker     *Walker
	mu         sync.Mutex
	processed  map[string]bool // Track processed directories to avoid duplicates
}

// NewConcurrentWalker creates a new concurrent walker with an optimal worker
// count based on available CPU cores. maxWorkers == 0 selects
// min(max(NumCPU*2, 4), 32); I/O bound walks benefit from oversubscription
// but unbounded goroutines exhaust file handles.
func NewConcurrentWalker(logger *slog.Logger, opts WalkerOptions, maxWorkers int) *ConcurrentWalker {
	if logger == nil {
		logger = slog.Default()
	}
	if maxWorkers <= 0 {
		maxWorkers = min(max(runtime.NumCPU()*2, 4), 32)
	}

	return &ConcurrentWalker{
		maxWorkers: maxWorkers,
		logger:     logger,
		walker:     NewWalker(logger, opts),
		processed:  make(map[string]bool),
	}
}

// BuildTree walks the subtree rooted at rootPath level by level, processing
// all directories of a level concurrently. The descriptor contract matches
// Walker.BuildTree except for ordering.
func (cw *ConcurrentWalker) BuildTree(ctx context.Context, rootPath string) ([]EntryDescriptor, error) {
	result, err := cw.Scan(ctx, rootPath)
	if err != nil {
		return nil, err
	}
	return result.Entries, nil
}

// Scan is BuildTree plus scan identity, warnings and timing.
func (cw *ConcurrentWalker) Scan(ctx context.Context, rootPath string) (*ScanResult, error) {
	if rootPath == "" {
		return nil, ErrPathEmpty
	}

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path %s: %w", rootPath, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, rootPath)
		}
		return nil, fmt.Errorf("failed to access root path %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, rootPath)
	}

	// Visit tracking is per scan: descriptors are constructed transiently
	// during one traversal call
	cw.mu.Lock()
	cw.processed = make(map[string]bool)
	cw.mu.Unlock()

	stats := &TraversalStats{StartTime: time.Now().UnixMilli()}
	entries := make([]EntryDescriptor, 0)
	warnings := make([]Warning, 0)
	var resultMu sync.Mutex

	currentLevel := []string{absRoot}

	for len(currentLevel) > 0 {
		nextLevel := make([]string, 0)
		var nextLevelMu sync.Mutex

		// A fresh pool per level avoids reusing closed pools
		levelPool := pool.New().WithMaxGoroutines(cw.maxWorkers).WithContext(ctx)

		for _, dir := range currentLevel {
			levelPool.Go(func(ctx context.Context) error {
				descs, subdirs, warns := cw.processDirectory(ctx, absRoot, dir)

				atomic.AddInt64(&stats.DirsProcessed, 1)
				for i := range descs {
					if descs[i].Type == EntryFile {
						atomic.AddInt64(&stats.FilesProcessed, 1)
					}
				}
				atomic.AddInt64(&stats.ErrorsFound, int64(len(warns)))

				resultMu.Lock()
				entries = append(entries, descs...)
				warnings = append(warnings, warns...)
				resultMu.Unlock()

				nextLevelMu.Lock()
				nextLevel = append(nextLevel, subdirs...)
				nextLevelMu.Unlock()

				return nil
			})
		}

		if err := levelPool.Wait(); err != nil {
			return nil, fmt.Errorf("concurrent walk aborted: %w", err)
		}

		currentLevel = nextLevel
	}

	stats.EndTime = time.Now().UnixMilli()
	cw.logPerformanceStats(stats)

	return &ScanResult{
		ScanID:   uuid.New(),
		Root:     rootPath,
		Entries:  entries,
		Warnings: warnings,
		Duration: time.Duration(stats.EndTime-stats.StartTime) * time.Millisecond,
	}, nil
}

// processDirectory lists one directory and describes it plus its non-directory
// entries, returning the local descriptor buffer, the subdirectories feeding
// the next level and any warnings raised along the way. Unlike the sequential
// walker each job emits its own directory's descriptor (the scan root emits
// none), so a denied directory contributes exactly one marker and nothing else.
func (cw *ConcurrentWalker) processDirectory(ctx context.Context, root, dir string) ([]EntryDescriptor, []string, []Warning) {
	// Check for cancellation
	select {
	case <-ctx.Done():
		return nil, nil, []Warning{{Path: dir, Field: "listing", Kind: FailureIO, Message: ctx.Err().Error()}}
	default:
	}

	// Check-and-mark under one lock so racing jobs cannot both claim a
	// directory
	cw.mu.Lock()
	if cw.processed[dir] {
		cw.mu.Unlock()
		return nil, nil, nil
	}
	cw.processed[dir] = true
	cw.mu.Unlock()

	state := &walkState{root: root}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			cw.logger.Warn("Permission denied listing directory", "path", dir)
			state.warn(dir, "listing", err)
			return []EntryDescriptor{cw.walker.inaccessibleMarker(state, dir)}, nil, state.warnings
		}
		cw.logger.Warn("Failed to list directory", "path", dir, "error", err)
		state.warn(dir, "listing", err)
		return nil, nil, state.warnings
	}

	descs := make([]EntryDescriptor, 0, len(dirEntries)+1)

	if dir != root {
		if self, ok := cw.describeSelf(state, dir); ok {
			descs = append(descs, self)
		}
	}

	subdirs := make([]string, 0)

	for _, entry := range dirEntries {
		fullPath := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			// Described by its own level job
			subdirs = append(subdirs, fullPath)
			continue
		}
		descs = append(descs, cw.walker.describe(state, dir, fullPath, entry))
	}

	return descs, subdirs, state.warnings
}

// describeSelf builds the descriptor for the directory a job is processing.
func (cw *ConcurrentWalker) describeSelf(state *walkState, dir string) (EntryDescriptor, bool) {
	info, err := os.Lstat(dir)
	if err != nil {
		cw.logger.Warn("Failed to stat directory", "path", dir, "error", err)
		state.warn(dir, "stat", err)
		return EntryDescriptor{}, false
	}
	entry := fs.FileInfoToDirEntry(info)
	return cw.walker.describe(state, filepath.Dir(dir), dir, entry), true
}

// logPerformanceStats logs traversal performance metrics
func (cw *ConcurrentWalker) logPerformanceStats(stats *TraversalStats) {
	duration := stats.EndTime - stats.StartTime
	dirsProcessed := atomic.LoadInt64(&stats.DirsProcessed)
	filesProcessed := atomic.LoadInt64(&stats.FilesProcessed)
	errorsFound := atomic.LoadInt64(&stats.ErrorsFound)

	if duration > 0 {
		dirsPerSec := float64(dirsProcessed) / float64(duration) * 1000
		filesPerSec := float64(filesProcessed) / float64(duration) * 1000

		cw.logger.Info("Concurrent walk completed",
			"dirs", dirsProcessed,
			"files", filesProcessed,
			"duration_ms", duration,
			"dirs_per_sec", dirsPerSec,
			"files_per_sec", filesPerSec,
			"warnings", errorsFound)
	}
}
