package inventory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	assert "github.com/ZanzyTHEbar/assert-lib"
)

// WalkerOptions configures descriptor enrichment during a walk.
type WalkerOptions struct {
	// ChecksumAlgorithm selects the digest fed by chunked hashing
	ChecksumAlgorithm string
	// ChunkSize is the read block size in bytes (0 = DefaultChunkSize)
	ChunkSize int
	// IncludeContent captures full UTF-8 file contents on descriptors
	IncludeContent bool
}

// DefaultWalkerOptions returns sensible defaults.
func DefaultWalkerOptions() WalkerOptions {
	return WalkerOptions{
		ChecksumAlgorithm: "sha256",
		ChunkSize:         DefaultChunkSize,
		IncludeContent:    true,
	}
}

// Warning records one recoverable fault downgraded during a walk. Warnings
// are advisory: they never change the success contract of the returned
// descriptor collection.
type Warning struct {
	Path    string      `json:"path"`
	Field   string      `json:"field"`
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// Walker builds a flat descriptor list for a directory subtree via
// depth-first pre-order descent. Per-entry, per-field failures are caught at
// the point of origin and downgraded to a nil field plus a diagnostic; only
// root validation failures abort the walk.
type Walker struct {
	logger   *slog.Logger
	opts     WalkerOptions
	checksum *ChecksumUtils
	content  *ContentUtils
	stat     *StatUtils
	handler  *assert.AssertHandler
}

// NewWalker creates a new Walker. A nil logger falls back to slog.Default().
func NewWalker(logger *slog.Logger, opts WalkerOptions) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ChecksumAlgorithm == "" {
		opts.ChecksumAlgorithm = "sha256"
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}

	return &Walker{
		logger:   logger,
		opts:     opts,
		checksum: NewChecksumUtils(),
		content:  NewContentUtils(),
		stat:     NewStatUtils(),
		handler:  assert.NewAssertHandler(),
	}
}

// BuildTree walks the subtree rooted at rootPath and returns one descriptor
// per reachable entry, interleaved in depth-first pre-order: a directory's
// descriptor precedes its contents, files appear as encountered. The
// returned slice is nil only when root validation fails; an empty directory
// yields an empty, non-nil collection.
func (w *Walker) BuildTree(ctx context.Context, rootPath string) ([]EntryDescriptor, error) {
	entries, _, err := w.buildTree(ctx, rootPath)
	return entries, err
}

// buildTree is BuildTree plus the collected warnings, for callers that want
// diagnostics as data rather than log lines.
func (w *Walker) buildTree(ctx context.Context, rootPath string) ([]EntryDescriptor, []Warning, error) {
	if rootPath == "" {
		return nil, nil, ErrPathEmpty
	}

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve root path %s: %w", rootPath, err)
	}
	w.handler.Assert(ctx, filepath.IsAbs(absRoot), "scan root must resolve to an absolute path")

	info, err := os.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			w.logger.Error("Scan root does not exist", "path", rootPath)
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, rootPath)
		}
		w.logger.Error("Failed to access scan root", "path", rootPath, "error", err)
		return nil, nil, fmt.Errorf("failed to access root path %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		w.logger.Error("Scan root is not a directory", "path", rootPath)
		return nil, nil, fmt.Errorf("%w: %s", ErrNotADirectory, rootPath)
	}

	state := &walkState{root: absRoot}
	entries := w.walkDir(ctx, state, absRoot)
	return entries, state.warnings, nil
}

// walkState carries the per-invocation scan root and collected warnings down
// the recursion. Descriptor slices are never shared: each recursive call
// returns its own and the caller concatenates.
type walkState struct {
	root     string
	warnings []Warning
}

func (s *walkState) warn(path, field string, err error) {
	s.warnings = append(s.warnings, Warning{
		Path:    path,
		Field:   field,
		Kind:    FailureKindOf(err),
		Message: err.Error(),
	})
}

// walkDir lists one directory level and returns the descriptors for it and
// everything below it. Listing denial yields a single inaccessibility marker
// for the directory itself; any other listing error yields nothing for this
// level but is surfaced as a diagnostic.
func (w *Walker) walkDir(ctx context.Context, state *walkState, dir string) []EntryDescriptor {
	select {
	case <-ctx.Done():
		state.warn(dir, "listing", ctx.Err())
		return []EntryDescriptor{}
	default:
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			w.logger.Warn("Permission denied listing directory", "path", dir)
			state.warn(dir, "listing", err)
			return []EntryDescriptor{w.inaccessibleMarker(state, dir)}
		}
		w.logger.Warn("Failed to list directory", "path", dir, "error", err)
		state.warn(dir, "listing", err)
		return []EntryDescriptor{}
	}

	out := make([]EntryDescriptor, 0, len(dirEntries))
	for _, entry := range dirEntries {
		fullPath := filepath.Join(dir, entry.Name())
		desc := w.describe(state, dir, fullPath, entry)

		if desc.Type != EntryDir {
			out = append(out, desc)
			continue
		}

		children := w.walkDir(ctx, state, fullPath)
		if isSelfMarker(children, fullPath) {
			// The marker is the single descriptor for a denied directory;
			// emitting the plain directory descriptor too would visit the
			// path twice.
			out = append(out, children[0])
			continue
		}
		out = append(out, desc)
		out = append(out, children...)
	}

	return out
}

// isSelfMarker reports whether children consists solely of the
// inaccessibility marker a denied directory emits for itself.
func isSelfMarker(children []EntryDescriptor, dir string) bool {
	return len(children) == 1 &&
		children[0].Type == EntryDirInaccessible &&
		children[0].FullPath == dir
}

// describe assembles the descriptor for a single entry. Every enrichment is
// independently failable and never aborts sibling processing.
func (w *Walker) describe(state *walkState, dir, fullPath string, entry os.DirEntry) EntryDescriptor {
	desc := EntryDescriptor{
		Name:         entry.Name(),
		FullPath:     fullPath,
		RelativePath: w.relativePath(state, dir, fullPath, entry.Name()),
		Permissions:  w.stat.Permissions(fullPath),
		Type:         classifyEntry(entry),
	}

	// Directories legitimately carry no size, checksum, content or
	// extension; only non-directories attempt enrichment.
	if desc.Type == EntryDir {
		return desc
	}

	// Filenames are raw bytes on Linux; a non-UTF-8 name is legal on-disk
	// input and must not trip the parser's caller contract.
	if textualName(entry.Name()) {
		if ext, ok := parseExtension(entry.Name()); ok {
			desc.Extension = &ext
		}
	} else {
		w.logger.Warn("File name is not valid UTF-8", "path", fullPath)
		state.warn(fullPath, "extension", newFieldError(fullPath,
			fmt.Errorf("%w: file name %q", ErrDecode, entry.Name())))
	}

	if desc.Type != EntryFile {
		return desc
	}

	if size, err := w.stat.FileSize(fullPath); err != nil {
		w.logger.Warn("Failed to determine file size", "path", fullPath, "error", err)
		state.warn(fullPath, "size", err)
	} else {
		desc.Size = &size
	}

	w.enrichFileData(state, &desc)
	return desc
}

// enrichFileData fills checksum and content, sharing a single streaming pass
// over the file when both are requested.
func (w *Walker) enrichFileData(state *walkState, desc *EntryDescriptor) {
	path := desc.FullPath

	if !w.opts.IncludeContent {
		sum, err := w.checksum.Calculate(path, w.opts.ChecksumAlgorithm, w.opts.ChunkSize)
		if err != nil {
			w.logger.Warn("Failed to calculate checksum", "path", path, "error", err)
			state.warn(path, "checksum", err)
			return
		}
		desc.Checksum = &sum
		return
	}

	sum, raw, err := w.checksum.CalculateWithContent(path, w.opts.ChecksumAlgorithm, w.opts.ChunkSize)
	if err != nil {
		if FailureKindOf(err) == FailureUnsupportedAlgorithm {
			// The file itself is still readable: capture content alone.
			w.logger.Warn("Unsupported checksum algorithm", "algorithm", w.opts.ChecksumAlgorithm, "supported", SupportedAlgorithms())
			state.warn(path, "checksum", err)
			if text, readErr := w.content.ReadText(path); readErr != nil {
				w.logger.Warn("Failed to read file content", "path", path, "error", readErr)
				state.warn(path, "content", readErr)
			} else {
				desc.Content = &text
			}
			return
		}
		w.logger.Warn("Failed to read file", "path", path, "error", err)
		state.warn(path, "checksum", err)
		state.warn(path, "content", err)
		return
	}

	desc.Checksum = &sum
	if text, decErr := decodeText(path, raw); decErr != nil {
		w.logger.Warn("File content is not valid UTF-8", "path", path)
		state.warn(path, "content", decErr)
	} else {
		desc.Content = &text
	}
}

// relativePath computes the path of an entry relative to the scan root. Top
// level entries are just their name; deeper entries are joined directory
// segments, never the absolute path.
func (w *Walker) relativePath(state *walkState, dir, fullPath, name string) string {
	if dir == state.root {
		return name
	}
	rel, err := filepath.Rel(state.root, fullPath)
	if err != nil {
		// Best effort: fall back to the bare name
		w.logger.Warn("Failed to compute relative path", "path", fullPath, "error", err)
		return name
	}
	return rel
}

// inaccessibleMarker builds the leaf descriptor substituted for a directory
// whose listing was denied. It carries no children and no file fields.
func (w *Walker) inaccessibleMarker(state *walkState, dir string) EntryDescriptor {
	name := filepath.Base(dir)
	rel := name
	if dir != state.root {
		if r, err := filepath.Rel(state.root, dir); err == nil {
			rel = r
		}
	}

	return EntryDescriptor{
		Name:         name,
		FullPath:     dir,
		RelativePath: rel,
		Permissions:  InaccessibleDirPermissions,
		Type:         EntryDirInaccessible,
	}
}

// classifyEntry maps a directory entry onto the descriptor type taxonomy.
// Symlinks are never followed: anything that is not a plain file or
// directory is "other".
func classifyEntry(entry os.DirEntry) EntryType {
	switch {
	case entry.IsDir():
		return EntryDir
	case entry.Type().IsRegular():
		return EntryFile
	default:
		return EntryOther
	}
}
