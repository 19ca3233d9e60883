package inventory

// EntryType classifies a visited filesystem entry.
type EntryType string

const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "directory"
	// EntryOther covers non-regular, non-directory entries such as
	// symlinks and sockets. Symlinks are never followed.
	EntryOther EntryType = "other"
	// EntryDirInaccessible marks a directory whose contents could not be
	// listed due to access denial. It is a leaf marker, not a container.
	EntryDirInaccessible EntryType = "directory_inaccessible"
)

// EntryDescriptor describes one filesystem entry's metadata and content.
// Pointer fields are nil when the value is absent: legitimately (directories
// carry no checksum) or because the per-field computation failed. The broader
// application serializes descriptors externally; the JSON tags match that
// wire shape.
type EntryDescriptor struct {
	Name         string    `json:"name"`
	FullPath     string    `json:"full_path"`
	RelativePath string    `json:"relative_path"`
	Permissions  string    `json:"permissions"`
	Checksum     *string   `json:"checksum"`
	Size         *int64    `json:"size"`
	Extension    *string   `json:"extension"`
	Content      *string   `json:"content"`
	Type         EntryType `json:"type"`
}

// IsDir reports whether the descriptor represents a listable directory.
func (d *EntryDescriptor) IsDir() bool {
	return d.Type == EntryDir
}
