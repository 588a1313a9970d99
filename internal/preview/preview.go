// Package preview renders small thumbnails of selected image files.
package preview

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/alexballas/xfileinput/fileinput"
)

// ErrNotImage is returned for files that do not decode as an image.
var ErrNotImage = errors.New("not an image")

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// IsImage guesses from the file name whether f is worth decoding.
func IsImage(f fileinput.File) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(f.Name()))]
}

// Thumbnail decodes f and scales it to fit a size x size box, keeping the
// aspect ratio. Images already small enough are returned as decoded.
func Thumbnail(f fileinput.File, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid thumbnail size %d", size)
	}

	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name(), err)
	}
	defer r.Close()

	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", f.Name(), ErrNotImage, err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= size && h <= size {
		return src, nil
	}
	if w >= h {
		h = max(1, h*size/w)
		w = size
	} else {
		w = max(1, w*size/h)
		h = size
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst, nil
}
