package dialog

import (
	"os"
	"sort"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/FyshOS/fancyfs"
)

// FileSortOrder orders the listed files. Folders always come first.
type FileSortOrder int

const (
	SortNameAsc FileSortOrder = iota
	SortNameDesc
	SortSizeAsc
	SortSizeDesc
	SortDateAsc
	SortDateDesc
)

type fileList struct {
	picker FilePicker

	content *container.Scroll
	list    *widget.List

	files        []fyne.URI
	filtered     []fyne.URI
	activeFilter string
	sortOrder    FileSortOrder
}

func newFileList(p FilePicker) *fileList {
	f := &fileList{
		picker:    p,
		sortOrder: SortNameAsc,
	}

	f.list = widget.NewList(
		func() int { return len(f.filtered) },
		func() fyne.CanvasObject { return newFileItem(f.picker) },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			item := o.(*fileItem)
			item.id = id
			if id < len(f.filtered) {
				item.setURI(f.filtered[id])
				item.setSelected(f.picker.IsSelected(f.filtered[id]))
			}
		},
	)
	f.content = container.NewScroll(container.NewPadded(f.list))
	return f
}

func (f *fileList) setFiles(files []fyne.URI) {
	f.files = files
	f.applyFilter()
	f.refresh()
}

func (f *fileList) setFilter(filter string) {
	f.activeFilter = strings.ToLower(filter)
	f.applyFilter()
	f.refresh()
}

func (f *fileList) setSortOrder(order FileSortOrder) {
	if order < SortNameAsc || order > SortDateDesc {
		order = SortNameAsc
	}
	f.sortOrder = order
	f.sort()
	f.refresh()
}

func (f *fileList) applyFilter() {
	f.filtered = nil
	for _, file := range f.files {
		if f.activeFilter == "" || strings.Contains(strings.ToLower(file.Name()), f.activeFilter) {
			f.filtered = append(f.filtered, file)
		}
	}
	f.sort()
}

type fileStat struct {
	isDir   bool
	size    int64
	modTime time.Time
}

func statURI(u fyne.URI) fileStat {
	st := fileStat{}
	st.isDir, _ = storage.CanList(u)
	if u.Scheme() != "file" {
		return st
	}
	if info, err := os.Stat(u.Path()); err == nil {
		st.size = info.Size()
		st.modTime = info.ModTime()
	}
	return st
}

func (f *fileList) sort() {
	stats := make(map[string]fileStat, len(f.filtered))
	for _, u := range f.filtered {
		stats[u.String()] = statURI(u)
	}

	sort.SliceStable(f.filtered, func(i, j int) bool {
		u1, u2 := f.filtered[i], f.filtered[j]
		s1, s2 := stats[u1.String()], stats[u2.String()]
		if s1.isDir != s2.isDir {
			return s1.isDir
		}

		name1 := strings.ToLower(u1.Name())
		name2 := strings.ToLower(u2.Name())

		// While searching, names starting with the query win.
		if f.activeFilter != "" {
			prefix1 := strings.HasPrefix(name1, f.activeFilter)
			prefix2 := strings.HasPrefix(name2, f.activeFilter)
			if prefix1 != prefix2 {
				return prefix1
			}
			return name1 < name2
		}

		switch f.sortOrder {
		case SortNameDesc:
			return name1 > name2
		case SortSizeAsc:
			if s1.size != s2.size {
				return s1.size < s2.size
			}
		case SortSizeDesc:
			if s1.size != s2.size {
				return s1.size > s2.size
			}
		case SortDateAsc:
			if !s1.modTime.Equal(s2.modTime) {
				return s1.modTime.Before(s2.modTime)
			}
		case SortDateDesc:
			if !s1.modTime.Equal(s2.modTime) {
				return s1.modTime.After(s2.modTime)
			}
		}
		return name1 < name2
	})
}

func (f *fileList) refresh() {
	f.list.Refresh()
}

// Item Implementation

type fileItem struct {
	widget.BaseWidget
	picker FilePicker
	id     int
	uri    fyne.URI

	icon       *widget.FileIcon
	customIcon *widget.Icon
	label      *widget.Label
	bg         *canvas.Rectangle

	lastClick time.Time
}

func newFileItem(p FilePicker) *fileItem {
	item := &fileItem{
		picker:     p,
		icon:       widget.NewFileIcon(nil),
		customIcon: widget.NewIcon(nil),
		label:      widget.NewLabel(""),
		bg:         canvas.NewRectangle(theme.Color(theme.ColorNameSelection)),
	}
	item.customIcon.Hide()
	item.bg.Hide()
	item.label.Truncation = fyne.TextTruncateEllipsis
	item.ExtendBaseWidget(item)
	return item
}

func (i *fileItem) CreateRenderer() fyne.WidgetRenderer {
	return &fileItemRenderer{item: i}
}

func (i *fileItem) setURI(u fyne.URI) {
	if i.uri != nil && i.uri.String() == u.String() {
		return
	}
	i.uri = u
	i.icon.SetURI(u)
	i.label.SetText(u.Name())

	i.icon.Show()
	i.customIcon.Hide()
	if isDir, _ := storage.CanList(u); isDir {
		if details, err := fancyfs.DetailsForFolder(u); err == nil && details != nil && details.BackgroundResource != nil {
			i.customIcon.SetResource(details.BackgroundResource)
			i.icon.Hide()
			i.customIcon.Show()
		}
	}
}

func (i *fileItem) setSelected(selected bool) {
	if selected {
		i.bg.Show()
	} else {
		i.bg.Hide()
	}
	i.Refresh()
}

func (i *fileItem) Tapped(_ *fyne.PointEvent) {
	if fyne.CurrentDevice().IsMobile() {
		i.picker.Select(i.id)
		return
	}

	now := time.Now()
	if now.Sub(i.lastClick) < fyne.CurrentApp().Driver().DoubleTapDelay() {
		// Listable covers folders and symlinks to folders.
		if l, err := storage.ListerForURI(i.uri); err == nil {
			i.picker.SetLocation(l)
		} else {
			i.picker.Select(i.id)
			i.picker.OpenSelection()
		}
	}
	i.lastClick = now
}

var _ desktop.Mouseable = (*fileItem)(nil)

func (i *fileItem) MouseDown(_ *desktop.MouseEvent) {
	i.picker.DismissMenu()
}

func (i *fileItem) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonSecondary {
		if i.picker.IsMultiSelect() {
			i.showContextMenu(e.Position)
		}
		return
	}
	if e.Button != desktop.MouseButtonPrimary {
		return
	}

	switch {
	case e.Modifier&fyne.KeyModifierControl != 0:
		i.picker.ToggleSelection(i.id)
	case e.Modifier&fyne.KeyModifierShift != 0:
		i.picker.ExtendSelection(i.id)
	default:
		i.picker.Select(i.id)
	}
}

func (i *fileItem) SecondaryTapped(e *fyne.PointEvent) {
	if !i.picker.IsMultiSelect() {
		return
	}
	i.showContextMenu(e.Position)
}

func (i *fileItem) showContextMenu(pos fyne.Position) {
	label := lang.L("Select")
	if i.picker.IsSelected(i.uri) {
		label = lang.L("Deselect")
	}
	menu := fyne.NewMenu("", fyne.NewMenuItem(label, func() {
		i.picker.ToggleSelection(i.id)
		i.picker.DismissMenu()
	}))
	i.picker.ShowMenu(menu, pos, i)
}

type fileItemRenderer struct {
	item *fileItem
}

func (r *fileItemRenderer) Layout(size fyne.Size) {
	r.item.bg.Resize(size)

	iconSize := fyne.NewSquareSize(fileInlineIconSize)
	iconPos := fyne.NewPos(theme.Padding(), (size.Height-iconSize.Height)/2)
	r.item.icon.Resize(iconSize)
	r.item.icon.Move(iconPos)
	r.item.customIcon.Resize(iconSize)
	r.item.customIcon.Move(iconPos)

	r.item.label.Resize(fyne.NewSize(size.Width-iconSize.Width-theme.Padding()*3, size.Height))
	r.item.label.Move(fyne.NewPos(iconSize.Width+theme.Padding()*2, 0))
}

func (r *fileItemRenderer) MinSize() fyne.Size {
	label := r.item.label.MinSize()
	return fyne.NewSize(fileInlineIconSize+label.Width+theme.Padding()*3, fyne.Max(fileInlineIconSize, label.Height))
}

func (r *fileItemRenderer) Refresh() {
	r.item.bg.FillColor = theme.Color(theme.ColorNameSelection)
	r.item.bg.Refresh()
	r.item.icon.Refresh()
	r.item.customIcon.Refresh()
	r.item.label.Refresh()
}

func (r *fileItemRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.item.bg, r.item.icon, r.item.customIcon, r.item.label}
}

func (r *fileItemRenderer) Destroy() {}
