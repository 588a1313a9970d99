// Package fileinput tracks a working set of files chosen through a file
// picker or dropped onto a drop target, together with the hover state of
// that target.
//
// All mutations are expected to happen on the UI event goroutine. Nothing in
// this package locks.
package fileinput

import "io"

// File is a host-provided file handle. The collection only ever reads its
// name through an IdentityFunc; contents are never copied.
type File interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// Locator is implemented by files that know their full location, such as a
// URI string.
type Locator interface {
	Location() string
}

// IdentityFunc derives the deduplication key of a file.
type IdentityFunc func(File) string

// NameIdentity keys files by name. It is the default identity.
func NameIdentity(f File) string {
	return f.Name()
}

// URIIdentity keys files by their location when they expose one, so two
// files with the same name in different folders are kept apart.
func URIIdentity(f File) string {
	if l, ok := f.(Locator); ok {
		if loc := l.Location(); loc != "" {
			return loc
		}
	}
	return f.Name()
}
