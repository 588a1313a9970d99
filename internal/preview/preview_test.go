package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func pngFile(t *testing.T, name string, w, h int) *memFile {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &memFile{name: name, data: buf.Bytes()}
}

func TestThumbnail_ScalesKeepingAspect(t *testing.T) {
	wide, err := Thumbnail(pngFile(t, "wide.png", 128, 32), 64)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 16), wide.Bounds())

	tall, err := Thumbnail(pngFile(t, "tall.png", 10, 200), 40)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 40), tall.Bounds())
}

func TestThumbnail_SmallImageUnchanged(t *testing.T) {
	img, err := Thumbnail(pngFile(t, "icon.png", 16, 16), 48)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
}

func TestThumbnail_NotAnImage(t *testing.T) {
	_, err := Thumbnail(&memFile{name: "notes.txt", data: []byte("hello")}, 48)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = Thumbnail(pngFile(t, "x.png", 4, 4), 0)
	assert.Error(t, err)
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage(&memFile{name: "Photo.JPG"}))
	assert.True(t, IsImage(&memFile{name: "a.png"}))
	assert.False(t, IsImage(&memFile{name: "a.txt"}))
	assert.False(t, IsImage(&memFile{name: "png"}))
}
