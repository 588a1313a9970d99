package dialog

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

type breadcrumb struct {
	picker  FilePicker
	content *fyne.Container
	scroll  *container.Scroll
}

func newBreadcrumb(p FilePicker) *breadcrumb {
	b := &breadcrumb{
		picker:  p,
		content: container.NewHBox(),
	}
	b.scroll = container.NewHScroll(container.NewPadded(b.content))
	return b
}

// update shows one button per ancestor of dir, root first.
func (b *breadcrumb) update(dir fyne.ListableURI) {
	if b == nil || b.content == nil {
		return
	}

	var path []fyne.ListableURI
	for current := dir; current != nil; {
		path = append(path, current)

		parent, err := storage.Parent(current)
		if err != nil || parent == nil || parent.String() == current.String() {
			break
		}
		current = nil
		if l, err := storage.ListerForURI(parent); err == nil {
			current = l
		}
	}

	b.content.Objects = nil
	for i := len(path) - 1; i >= 0; i-- {
		loc := path[i]
		b.content.Add(widget.NewButton(loc.Name(), func() {
			b.picker.SetLocation(loc)
		}))
	}
	b.content.Refresh()
}
