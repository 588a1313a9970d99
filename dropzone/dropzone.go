// Package dropzone provides a Fyne drop target that drives a
// fileinput.Controller.
package dropzone

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/alexballas/xfileinput/fileinput"
	"github.com/alexballas/xfileinput/internal/urifile"
)

// DropZone wraps content and forwards drag gestures over it, and files
// dropped onto it from the desktop, to a controller. While the controller
// reports a hover the zone is outlined.
type DropZone struct {
	widget.BaseWidget

	// ID is written into the drag payload when a gesture starts.
	ID string

	ctrl     *fileinput.Controller
	content  fyne.CanvasObject
	transfer *fileinput.Transfer // non-nil while an in-app drag is running
}

var _ fyne.Draggable = (*DropZone)(nil)

// New returns a drop zone around content.
func New(ctrl *fileinput.Controller, content fyne.CanvasObject) *DropZone {
	d := &DropZone{ctrl: ctrl, content: content}
	d.ExtendBaseWidget(d)
	return d
}

// Attach routes files dropped on win to the first zone under the pointer.
// Fyne keeps a single drop callback per window, so every zone of a window
// has to be attached in one call.
func Attach(win fyne.Window, zones ...*DropZone) {
	win.SetOnDropped(func(pos fyne.Position, uris []fyne.URI) {
		for _, z := range zones {
			if z.Drop(pos, uris) {
				return
			}
		}
	})
}

// Dragged starts a gesture on the first call. Fyne keeps delivering the
// gesture here after the pointer has left, so each call reports the pointer
// as over the zone or as gone from it.
func (d *DropZone) Dragged(ev *fyne.DragEvent) {
	if d.transfer == nil {
		d.transfer = fileinput.NewTransfer()
		d.ctrl.OnFileInputDragStart(d.event())
	}
	if ev != nil && !d.within(ev.Position) {
		d.ctrl.OnFileInputDragLeave(d.event())
		return
	}
	d.ctrl.OnFileInputDragOver(d.event())
}

// DragEnd reports the pointer as gone.
func (d *DropZone) DragEnd() {
	if d.transfer == nil {
		return
	}
	d.ctrl.OnFileInputDragLeave(d.event())
	d.transfer = nil
}

// Drop hands uris to the controller when pos, in canvas coordinates, lies
// inside the zone. It reports whether the zone took the drop.
func (d *DropZone) Drop(pos fyne.Position, uris []fyne.URI) bool {
	if !d.Visible() || !d.contains(pos) {
		return false
	}

	ev := &fileinput.Event{
		TargetID: d.ID,
		Transfer: fileinput.NewTransfer(urifile.FromURIs(uris)...),
	}
	d.ctrl.OnFileInputDragOver(ev)
	d.ctrl.OnFileInputDrop(ev)
	return true
}

func (d *DropZone) event() *fileinput.Event {
	return &fileinput.Event{TargetID: d.ID, Transfer: d.transfer}
}

// contains reports whether pos, in canvas coordinates, lies inside the zone.
func (d *DropZone) contains(pos fyne.Position) bool {
	origin := fyne.CurrentApp().Driver().AbsolutePositionForObject(d)
	return d.within(pos.Subtract(origin))
}

// within reports whether pos, relative to the zone, lies inside it.
func (d *DropZone) within(pos fyne.Position) bool {
	size := d.Size()
	return pos.X >= 0 && pos.Y >= 0 && pos.X < size.Width && pos.Y < size.Height
}

func (d *DropZone) CreateRenderer() fyne.WidgetRenderer {
	d.ExtendBaseWidget(d)

	outline := canvas.NewRectangle(color.Transparent)
	outline.StrokeWidth = 2
	r := &dropZoneRenderer{zone: d, outline: outline}
	r.cancel = d.ctrl.Listen(func(fileinput.State) {
		r.Refresh()
	})
	r.Refresh()
	return r
}

type dropZoneRenderer struct {
	zone    *DropZone
	outline *canvas.Rectangle
	cancel  func()
}

func (r *dropZoneRenderer) Layout(size fyne.Size) {
	if r.zone.content != nil {
		r.zone.content.Resize(size)
		r.zone.content.Move(fyne.NewPos(0, 0))
	}
	r.outline.Resize(size)
}

func (r *dropZoneRenderer) MinSize() fyne.Size {
	if r.zone.content == nil {
		return fyne.NewSize(0, 0)
	}
	return r.zone.content.MinSize()
}

func (r *dropZoneRenderer) Refresh() {
	if r.zone.ctrl.IsDraggingOver() {
		r.outline.StrokeColor = theme.Color(theme.ColorNamePrimary)
		r.outline.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.outline.StrokeColor = theme.Color(theme.ColorNameSeparator)
		r.outline.FillColor = color.Transparent
	}
	r.outline.Refresh()
	if r.zone.content != nil {
		r.zone.content.Refresh()
	}
}

func (r *dropZoneRenderer) Objects() []fyne.CanvasObject {
	if r.zone.content == nil {
		return []fyne.CanvasObject{r.outline}
	}
	return []fyne.CanvasObject{r.outline, r.zone.content}
}

func (r *dropZoneRenderer) Destroy() {
	if r.cancel != nil {
		r.cancel()
	}
}

// highlighted reports what the outline currently shows.
func (r *dropZoneRenderer) highlighted() bool {
	return r.outline.StrokeColor == theme.Color(theme.ColorNamePrimary)
}
