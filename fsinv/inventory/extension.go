package inventory

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TypeContractError signals a programmer error: the extension parser was
// handed something that is not a textual file name. Unlike every
// environmental fault in this package it fails loudly via panic.
type TypeContractError struct {
	Arg string
}

func (e *TypeContractError) Error() string {
	return fmt.Sprintf("extension parser requires a textual file name, got %q", e.Arg)
}

// Extension derives the extension of a file name using last-dot semantics:
// the substring after the final dot, excluding the dot itself. ok is false
// when the name carries no extension at all.
//
// Special cases: "." and ".." have no extension. A dotfile with no further
// dot (".bashrc") has no extension, while ".config.fish" yields "fish".
// Multi-extension names return only the last segment ("archive.tar.gz"
// yields "gz").
//
// name must be a bare base name: valid UTF-8 with no NUL bytes and no path
// separators. Anything else panics with *TypeContractError.
func Extension(name string) (string, bool) {
	if !textualName(name) {
		panic(&TypeContractError{Arg: name})
	}
	return parseExtension(name)
}

// textualName reports whether name satisfies the extension parser's textual
// contract.
func textualName(name string) bool {
	return utf8.ValidString(name) && !strings.ContainsAny(name, "\x00/")
}

// parseExtension is Extension without the contract guard. Internal walkers
// use it after validating the name themselves, so an odd on-disk name
// degrades into an absent extension instead of a panic.
func parseExtension(name string) (string, bool) {
	// Index of the first character outside the leading run of dots. Dots in
	// that run never start an extension, which is what makes ".bashrc" a
	// plain dotfile and "." / ".." extensionless.
	stem := strings.IndexFunc(name, func(r rune) bool { return r != '.' })
	if stem < 0 {
		return "", false
	}

	lastDot := strings.LastIndexByte(name, '.')
	if lastDot < stem {
		return "", false
	}

	return name[lastDot+1:], true
}
