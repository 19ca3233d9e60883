package inventory

import (
	"fmt"
	"io/fs"
	"os"
)

// PermissionsSentinel is returned by Permissions when the mode bits of a
// path cannot be queried. Descriptors always carry a permissions string.
const PermissionsSentinel = "?????????? (Permission denied or error)"

// InaccessibleDirPermissions marks directories whose listing was denied.
const InaccessibleDirPermissions = "d????????? (Permission Denied)"

// StatUtils queries raw OS metadata (byte length, permission bits) for a path.
type StatUtils struct{}

// NewStatUtils creates a new StatUtils instance
func NewStatUtils() *StatUtils {
	return &StatUtils{}
}

// FileSize returns the size of the file at path in bytes. The path must
// exist and be a regular file; directories and special files are a
// not-a-file failure, never a zero size.
func (su *StatUtils) FileSize(path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, newFieldError(path, fmt.Errorf("failed to stat file %s: %w", path, err))
	}
	if !info.Mode().IsRegular() {
		return 0, &FieldError{
			Kind: FailureNotAFile,
			Path: path,
			Err:  fmt.Errorf("%w: %s", ErrNotAFile, path),
		}
	}
	return info.Size(), nil
}

// Permissions renders the mode bits of path in ls -l notation: one
// entry-type character followed by nine permission characters. Query
// failures return PermissionsSentinel instead of failing the descriptor.
func (su *StatUtils) Permissions(path string) string {
	info, err := os.Lstat(path)
	if err != nil {
		return PermissionsSentinel
	}
	return FormatFileMode(info.Mode())
}

// FormatFileMode renders mode the way ls -l does, including setuid,
// setgid and sticky handling on the execute positions.
func FormatFileMode(mode fs.FileMode) string {
	var buf [10]byte

	switch {
	case mode.IsDir():
		buf[0] = 'd'
	case mode&fs.ModeSymlink != 0:
		buf[0] = 'l'
	case mode&fs.ModeSocket != 0:
		buf[0] = 's'
	case mode&fs.ModeNamedPipe != 0:
		buf[0] = 'p'
	case mode&fs.ModeCharDevice != 0:
		buf[0] = 'c'
	case mode&fs.ModeDevice != 0:
		buf[0] = 'b'
	default:
		buf[0] = '-'
	}

	perm := mode.Perm()
	const rwx = "rwxrwxrwx"
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			buf[1+i] = rwx[i]
		} else {
			buf[1+i] = '-'
		}
	}

	if mode&fs.ModeSetuid != 0 {
		buf[3] = execOverlay(buf[3], 's', 'S')
	}
	if mode&fs.ModeSetgid != 0 {
		buf[6] = execOverlay(buf[6], 's', 'S')
	}
	if mode&fs.ModeSticky != 0 {
		buf[9] = execOverlay(buf[9], 't', 'T')
	}

	return string(buf[:])
}

// execOverlay replaces an execute position with its setuid/setgid/sticky
// variant, upper-case when the underlying execute bit is clear.
func execOverlay(current byte, set, unset byte) byte {
	if current == 'x' {
		return set
	}
	return unset
}
