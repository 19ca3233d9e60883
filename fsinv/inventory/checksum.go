package inventory

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// DefaultChunkSize is the read block size used for chunked hashing.
const DefaultChunkSize = 4096

// ChecksumUtils computes file digests via chunked hashing: fixed-size
// sequential blocks fed into an incremental hash accumulator, so large files
// never have to fit in memory.
type ChecksumUtils struct{}

// NewChecksumUtils creates a new ChecksumUtils instance
func NewChecksumUtils() *ChecksumUtils {
	return &ChecksumUtils{}
}

// newHasher returns an incremental hasher for the named algorithm.
func newHasher(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case "md5":
		return md5.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, algorithm)
	}
}

// SupportedAlgorithms lists the accepted checksum algorithm names.
func SupportedAlgorithms() []string {
	return []string{"md5", "sha1", "sha256", "sha512"}
}

// Calculate computes the checksum of the file at path using the specified
// algorithm, reading in chunkSize-byte blocks. chunkSize <= 0 falls back to
// DefaultChunkSize. The digest is returned as lowercase hexadecimal.
func (cu *ChecksumUtils) Calculate(path string, algorithm string, chunkSize int) (string, error) {
	hasher, err := newHasher(algorithm)
	if err != nil {
		return "", err
	}

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	file, err := os.Open(path)
	if err != nil {
		return "", newFieldError(path, fmt.Errorf("failed to open file %s: %w", path, err))
	}
	defer file.Close()

	buf := make([]byte, chunkSize)
	for {
		n, readErr := file.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", newFieldError(path, fmt.Errorf("failed to calculate checksum for %s: %w", path, readErr))
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// CalculateWithContent streams the file once, feeding the hasher and
// buffering the raw bytes simultaneously. It halves I/O for scans that want
// both the digest and the content of every file.
func (cu *ChecksumUtils) CalculateWithContent(path string, algorithm string, chunkSize int) (string, []byte, error) {
	hasher, err := newHasher(algorithm)
	if err != nil {
		return "", nil, err
	}

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	file, err := os.Open(path)
	if err != nil {
		return "", nil, newFieldError(path, fmt.Errorf("failed to open file %s: %w", path, err))
	}
	defer file.Close()

	var content []byte
	buf := make([]byte, chunkSize)
	for {
		n, readErr := file.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
			content = append(content, buf[:n]...)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", nil, newFieldError(path, fmt.Errorf("failed to read %s: %w", path, readErr))
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), content, nil
}
