package inventory

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TreePrinter renders an indented text view of a directory subtree. It
// performs its own depth-first walk and is pure formatting: a nonexistent
// root simply produces empty output.
type TreePrinter struct{}

// NewTreePrinter creates a new TreePrinter instance
func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// RenderTree walks rootPath depth-first and emits one line per directory
// (dirToken prefix, trailing separator) and one line per file (fileToken
// prefix), indented by indentToken repeated per depth level.
func (tp *TreePrinter) RenderTree(rootPath, indentToken, fileToken, dirToken string) string {
	var sb strings.Builder

	_ = filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are simply not rendered
		}
		if !d.IsDir() {
			return nil
		}

		depth := tp.depth(rootPath, path)
		indent := strings.Repeat(indentToken, depth)
		sb.WriteString(indent + dirToken + d.Name() + string(os.PathSeparator) + "\n")

		entries, listErr := os.ReadDir(path)
		if listErr != nil {
			return fs.SkipDir
		}
		subIndent := strings.Repeat(indentToken, depth+1)
		for _, entry := range entries {
			if entry.IsDir() {
				continue // rendered by the walk itself
			}
			sb.WriteString(subIndent + fileToken + entry.Name() + "\n")
		}
		return nil
	})

	return sb.String()
}

// depth counts path separators between root and path.
func (tp *TreePrinter) depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(os.PathSeparator)) + 1
}
