// Package urifile adapts Fyne URIs to fileinput.File.
package urifile

import (
	"io"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"

	"github.com/alexballas/xfileinput/fileinput"
)

// File is a fileinput.File backed by a fyne.URI. Nothing is read until Open
// is called.
type File struct {
	uri fyne.URI
}

var (
	_ fileinput.File    = (*File)(nil)
	_ fileinput.Locator = (*File)(nil)
)

// New wraps u. A nil URI gives a nil File, which the controller skips.
func New(u fyne.URI) fileinput.File {
	if u == nil {
		return nil
	}
	return &File{uri: u}
}

// FromURIs wraps every non-nil URI, keeping order.
func FromURIs(uris []fyne.URI) []fileinput.File {
	files := make([]fileinput.File, 0, len(uris))
	for _, u := range uris {
		if f := New(u); f != nil {
			files = append(files, f)
		}
	}
	return files
}

// URI returns the wrapped URI.
func (f *File) URI() fyne.URI {
	return f.uri
}

// Name returns the last path element of the URI.
func (f *File) Name() string {
	return f.uri.Name()
}

// Location returns the full URI string.
func (f *File) Location() string {
	return f.uri.String()
}

// Size returns the file size for local files and -1 when it is unknown.
func (f *File) Size() int64 {
	if f.uri.Scheme() != "file" {
		return -1
	}
	info, err := os.Stat(f.uri.Path())
	if err != nil {
		return -1
	}
	return info.Size()
}

// Open opens the file for reading through Fyne's storage repositories.
func (f *File) Open() (io.ReadCloser, error) {
	return storage.Reader(f.uri)
}
