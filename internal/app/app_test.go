package app

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexballas/xfileinput/fileinput"
	"github.com/alexballas/xfileinput/internal/config"
)

type memFile struct {
	name string
	data []byte
}

func (f *memFile) Name() string { return f.name }

func (f *memFile) Size() int64 { return int64(len(f.data)) }

func (f *memFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func newWindow(t *testing.T, cfg *config.Config) *Window {
	t.Helper()
	a := test.NewTempApp(t)
	logger, _ := logtest.NewNullLogger()
	w := New(a, cfg, logger)
	t.Cleanup(w.Window().Close)
	return w
}

func TestWindow_UploadAndDelete(t *testing.T) {
	w := newWindow(t, config.Default())

	assert.True(t, w.placeholder.Visible())
	assert.False(t, w.list.Visible())

	upload := &memFile{name: "test.txt", data: []byte("lorem ipsum dolor sit amet")}
	w.Controller().OnFileInputChange([]fileinput.File{upload})

	assert.False(t, w.placeholder.Visible())
	require.Len(t, w.rows, 1)
	assert.Equal(t, "test.txt", w.rows[0].name.Text)
	assert.Equal(t, DeleteText, w.rows[0].delete.Text)

	got, ok := w.Controller().Files().Get("test.txt")
	require.True(t, ok)
	assert.Same(t, upload, got)

	test.Tap(w.rows[0].delete)

	assert.True(t, w.placeholder.Visible())
	assert.Empty(t, w.rows)
	assert.Equal(t, 0, w.Controller().Files().Len())
}

func TestWindow_RowsFollowCollectionOrder(t *testing.T) {
	w := newWindow(t, config.Default())
	ctrl := w.Controller()

	ctrl.OnFileInputChange([]fileinput.File{
		&memFile{name: "a.txt"},
		&memFile{name: "b.txt"},
	})
	ctrl.OnFileInputDrop(&fileinput.Event{Transfer: fileinput.NewTransfer(
		&memFile{name: "c.txt"},
		&memFile{name: "a.txt", data: []byte("new")},
	)})

	var names []string
	for _, r := range w.rows {
		names = append(names, r.name.Text)
	}
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, names)

	ctrl.Files().Clear()
	assert.Empty(t, w.rows)
	assert.True(t, w.placeholder.Visible())
}

func TestWindow_HoverHint(t *testing.T) {
	w := newWindow(t, config.Default())

	w.Controller().OnFileInputDragOver(nil)
	assert.NotEmpty(t, w.hint.Text)

	w.Controller().OnFileInputDragLeave(nil)
	assert.Empty(t, w.hint.Text)
}

func TestWindow_ImageThumbnail(t *testing.T) {
	w := newWindow(t, config.Default())

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 64, 64))))
	w.Controller().OnFileInputChange([]fileinput.File{&memFile{name: "pic.png", data: buf.Bytes()}})

	img, ok := w.thumbs["pic.png"]
	require.True(t, ok)
	require.NotNil(t, img)
	assert.Equal(t, thumbnailSize, img.Bounds().Dx())

	w.Controller().Files().Delete("pic.png")
	assert.NotContains(t, w.thumbs, "pic.png")
}

func TestWindow_BrokenImageFallsBackToIcon(t *testing.T) {
	w := newWindow(t, config.Default())

	w.Controller().OnFileInputChange([]fileinput.File{&memFile{name: "bad.png", data: []byte("nope")}})

	img, ok := w.thumbs["bad.png"]
	assert.True(t, ok)
	assert.Nil(t, img)
	_, isImage := w.thumbnail("bad.png", &memFile{name: "bad.png"}).(*canvas.Image)
	assert.False(t, isImage)
}

func TestIdentityFor(t *testing.T) {
	f := &locFile{memFile: memFile{name: "x.txt"}, loc: "file:///tmp/x.txt"}
	assert.Equal(t, "x.txt", identityFor(config.IdentityName)(f))
	assert.Equal(t, "file:///tmp/x.txt", identityFor(config.IdentityURI)(f))
}

type locFile struct {
	memFile
	loc string
}

func (f *locFile) Location() string { return f.loc }

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "", formatSize(-1))
	assert.Equal(t, "12 B", formatSize(12))
	assert.Equal(t, "1.5 KiB", formatSize(1536))
	assert.True(t, strings.HasSuffix(formatSize(3<<20), "MiB"))
}
