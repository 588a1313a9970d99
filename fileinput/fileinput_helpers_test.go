package fileinput

import (
	"io"
	"strings"
)

type memFile struct {
	name    string
	content string
	loc     string
}

func (f *memFile) Name() string { return f.name }

func (f *memFile) Size() int64 { return int64(len(f.content)) }

func (f *memFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.content)), nil
}

func (f *memFile) Location() string { return f.loc }

func newFile(name, content string) *memFile {
	return &memFile{name: name, content: content}
}
