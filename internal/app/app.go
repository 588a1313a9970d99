// Package app builds the demo window: a drop zone that opens the picker when
// clicked, the list of chosen files and a placeholder while it is empty.
package app

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/alexballas/xfileinput/dialog"
	"github.com/alexballas/xfileinput/dropzone"
	"github.com/alexballas/xfileinput/fileinput"
	"github.com/alexballas/xfileinput/internal/config"
	"github.com/alexballas/xfileinput/internal/preview"
)

const (
	LabelText       = "Click or drag/drop files to upload"
	PlaceholderText = "No files"
	DeleteText      = "DELETE"

	thumbnailSize = 32
)

type fileRow struct {
	key    string
	name   *widget.Label
	delete *widget.Button
}

// Window is the demo window and the controller behind it.
type Window struct {
	win    fyne.Window
	ctrl   *fileinput.Controller
	picker *dialog.FileOpen
	zone   *dropzone.DropZone
	log    logrus.FieldLogger

	hint        *widget.Label
	list        *fyne.Container
	placeholder *widget.Label
	rows        []fileRow
	thumbs      map[string]image.Image // by file location
	rendered    bool
	version     uint64
}

// New creates the demo window on a according to cfg.
func New(a fyne.App, cfg *config.Config, log logrus.FieldLogger) *Window {
	w := &Window{
		win:         a.NewWindow(cfg.Window.Title),
		log:         log,
		hint:        widget.NewLabel(""),
		list:        container.NewVBox(),
		placeholder: widget.NewLabel(PlaceholderText),
		thumbs:      make(map[string]image.Image),
	}

	w.ctrl = fileinput.New(fileinput.Config{
		Identity: identityFor(cfg.Input.Identity),
		Logger:   log,
	})

	w.picker = dialog.NewFileOpen(w.win, cfg.Picker.Multiple)
	if len(cfg.Picker.Extensions) > 0 {
		w.picker.SetFilter(storage.NewExtensionFileFilter(cfg.Picker.Extensions))
	}
	w.ctrl.BindPicker(w.picker)

	browse := widget.NewButtonWithIcon(LabelText, theme.FolderOpenIcon(), w.ctrl.Browse)
	browse.Importance = widget.LowImportance
	w.zone = dropzone.New(w.ctrl, container.NewVBox(browse, w.hint))
	w.zone.ID = cfg.Input.TargetID
	dropzone.Attach(w.win, w.zone)

	clearAll := widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), w.ctrl.Files().Clear)

	w.win.SetContent(container.NewBorder(
		w.zone,
		container.NewHBox(clearAll),
		nil, nil,
		container.NewVScroll(container.NewVBox(w.list, w.placeholder)),
	))
	w.win.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	w.ctrl.Listen(w.render)
	w.render(w.ctrl.State())
	return w
}

// Controller returns the controller backing the window.
func (w *Window) Controller() *fileinput.Controller {
	return w.ctrl
}

// Window returns the underlying Fyne window.
func (w *Window) Window() fyne.Window {
	return w.win
}

// ShowAndRun shows the window and runs the application loop.
func (w *Window) ShowAndRun() {
	w.win.ShowAndRun()
}

func identityFor(name string) fileinput.IdentityFunc {
	if name == config.IdentityURI {
		return fileinput.URIIdentity
	}
	return fileinput.NameIdentity
}

func (w *Window) render(st fileinput.State) {
	if st.IsDraggingOver {
		w.hint.SetText("Release to add files")
	} else {
		w.hint.SetText("")
	}

	if w.rendered && st.Files.Version() == w.version {
		return
	}
	w.rendered = true
	w.version = st.Files.Version()

	w.rows = w.rows[:0]
	w.list.RemoveAll()
	seen := make(map[string]bool, st.Files.Len())
	for key, f := range st.Files.Entries() {
		seen[fileinput.URIIdentity(f)] = true
		w.list.Add(w.newRow(key, f))
	}
	for loc := range w.thumbs {
		if !seen[loc] {
			delete(w.thumbs, loc)
		}
	}

	if st.Files.Len() == 0 {
		w.list.Hide()
		w.placeholder.Show()
	} else {
		w.placeholder.Hide()
		w.list.Show()
	}
}

func (w *Window) newRow(key string, f fileinput.File) fyne.CanvasObject {
	name := widget.NewLabel(f.Name())
	name.Truncation = fyne.TextTruncateEllipsis
	del := widget.NewButton(DeleteText, func() {
		w.ctrl.Files().DeleteFile(f)
	})
	w.rows = append(w.rows, fileRow{key: key, name: name, delete: del})

	size := widget.NewLabel(formatSize(f.Size()))
	return container.NewBorder(nil, nil, w.thumbnail(key, f), container.NewHBox(size, del), name)
}

func (w *Window) thumbnail(key string, f fileinput.File) fyne.CanvasObject {
	loc := fileinput.URIIdentity(f)
	img, ok := w.thumbs[loc]
	if !ok && preview.IsImage(f) {
		var err error
		img, err = preview.Thumbnail(f, thumbnailSize)
		if err != nil {
			w.log.WithError(err).WithField("key", key).Warn("thumbnail failed")
		}
		w.thumbs[loc] = img
	}

	if img == nil {
		icon := widget.NewIcon(theme.FileIcon())
		return container.NewGridWrap(fyne.NewSquareSize(thumbnailSize), icon)
	}
	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	c.SetMinSize(fyne.NewSquareSize(thumbnailSize))
	return c
}

func formatSize(n int64) string {
	if n < 0 {
		return ""
	}
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
