package inventory

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/armon/go-radix"
)

// PathIndexStats tracks usage metrics for a descriptor index
type PathIndexStats struct {
	TotalEntries  int64
	PathLookups   int64
	PrefixLookups int64
	Insertions    int64
	mu            sync.RWMutex
}

// PathIndex provides O(k) lookups of scan descriptors by relative path using
// a compressed trie (patricia tree), where k is the length of the path being
// searched rather than the number of entries indexed. It lets the broader
// application navigate a finished inventory without re-walking the disk.
type PathIndex struct {
	tree    *radix.Tree // Core patricia tree keyed by relative path
	mu      sync.RWMutex
	stats   *PathIndexStats
	entries map[string]*EntryDescriptor // Direct path -> descriptor mapping for exact lookups
}

// NewPathIndex creates an empty descriptor index
func NewPathIndex() *PathIndex {
	return &PathIndex{
		tree:    radix.New(),
		stats:   &PathIndexStats{},
		entries: make(map[string]*EntryDescriptor),
	}
}

// IndexScan builds an index over every descriptor of a scan result. The
// descriptors are indexed in place; the result remains owned by the caller.
func IndexScan(result *ScanResult) *PathIndex {
	idx := NewPathIndex()
	for i := range result.Entries {
		idx.Insert(&result.Entries[i])
	}
	return idx
}

// Insert adds a descriptor keyed by its relative path
func (idx *PathIndex) Insert(desc *EntryDescriptor) {
	if desc == nil {
		return
	}

	path := idx.normalizePath(desc.RelativePath)

	idx.mu.Lock()
	_, updated := idx.tree.Insert(path, desc)
	idx.entries[path] = desc
	idx.mu.Unlock()

	idx.stats.mu.Lock()
	if !updated {
		idx.stats.TotalEntries++
	}
	idx.stats.Insertions++
	idx.stats.mu.Unlock()

	slog.Debug("Path index insertion completed",
		"path", path,
		"was_update", updated)
}

// Lookup finds a descriptor by its exact relative path. Exact hits go
// through the direct map; the trie only earns its keep on prefix walks.
func (idx *PathIndex) Lookup(relativePath string) (*EntryDescriptor, bool) {
	path := idx.normalizePath(relativePath)

	idx.mu.RLock()
	desc, found := idx.entries[path]
	idx.mu.RUnlock()

	idx.stats.mu.Lock()
	idx.stats.PathLookups++
	idx.stats.mu.Unlock()

	return desc, found
}

// PrefixLookup finds all descriptors whose relative paths start with the
// given prefix, enabling subtree extraction from a flat scan result.
func (idx *PathIndex) PrefixLookup(prefix string) []*EntryDescriptor {
	normalized := idx.normalizePath(prefix)

	idx.mu.RLock()
	var results []*EntryDescriptor
	idx.tree.WalkPrefix(normalized, func(key string, value interface{}) bool {
		if desc, ok := value.(*EntryDescriptor); ok {
			results = append(results, desc)
		}
		return false // Continue walking
	})
	idx.mu.RUnlock()

	idx.stats.mu.Lock()
	idx.stats.PrefixLookups++
	idx.stats.mu.Unlock()

	return results
}

// Children returns the descriptors directly under a given directory path,
// without walking the whole subtree manually.
func (idx *PathIndex) Children(parentPath string) []*EntryDescriptor {
	parent := idx.normalizePath(parentPath)
	if !strings.HasSuffix(parent, "/") {
		parent += "/"
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var children []*EntryDescriptor
	idx.tree.WalkPrefix(parent, func(key string, value interface{}) bool {
		remaining := strings.TrimPrefix(key, parent)
		if remaining != "" && !strings.Contains(remaining, "/") {
			if desc, ok := value.(*EntryDescriptor); ok {
				children = append(children, desc)
			}
		}
		return false // Continue walking
	})

	return children
}

// Size returns the total number of descriptors in the index
func (idx *PathIndex) Size() int64 {
	idx.stats.mu.RLock()
	defer idx.stats.mu.RUnlock()
	return idx.stats.TotalEntries
}

// GetStats returns a copy of the current index statistics
func (idx *PathIndex) GetStats() PathIndexStats {
	idx.stats.mu.RLock()
	defer idx.stats.mu.RUnlock()

	return PathIndexStats{
		TotalEntries:  idx.stats.TotalEntries,
		PathLookups:   idx.stats.PathLookups,
		PrefixLookups: idx.stats.PrefixLookups,
		Insertions:    idx.stats.Insertions,
	}
}

// normalizePath ensures consistent path formatting for the index
func (idx *PathIndex) normalizePath(path string) string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	normalized = filepath.ToSlash(filepath.Clean(normalized))
	if len(normalized) > 1 && strings.HasSuffix(normalized, "/") {
		normalized = strings.TrimSuffix(normalized, "/")
	}
	return normalized
}
