package dialog

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/alexballas/xfileinput/fileinput"
	"github.com/alexballas/xfileinput/internal/urifile"
)

// FileOpen is a file picker element for a fileinput.Controller. Confirming a
// selection passes the chosen files, in list order, to the function set with
// SetOnChanged. Cancelling reports nothing.
type FileOpen struct {
	parent fyne.Window
	dir    fyne.ListableURI

	selected map[string]fyne.URI
	anchor   int // Selection anchor for Shift-Select

	allowMultiple   bool
	showHidden      bool
	extensionFilter storage.FileFilter
	onChanged       func([]fileinput.File)

	// Components
	sidebar    *sidebar
	fileList   *fileList
	breadcrumb *breadcrumb

	// UI
	win         *widget.PopUp
	fileName    *widget.Label
	open        *widget.Button
	dismiss     *widget.Button
	searchEntry *widget.Entry
	activeMenu  *widget.PopUp

	originalOnTypedRune func(rune)
	originalOnTypedKey  func(*fyne.KeyEvent)
}

var _ fileinput.Picker = (*FileOpen)(nil)

// NewFileOpen creates a picker over parent. With allowMultiple the user can
// select several files at once.
func NewFileOpen(parent fyne.Window, allowMultiple bool) *FileOpen {
	f := &FileOpen{
		parent:        parent,
		selected:      make(map[string]fyne.URI),
		dir:           effectiveStartingDir(),
		allowMultiple: allowMultiple,
		anchor:        -1,
	}
	f.showHidden = fyne.CurrentApp().Preferences().Bool(showHiddenKey)
	return f
}

// SetOnChanged sets the function that receives confirmed selections.
func (f *FileOpen) SetOnChanged(fn func([]fileinput.File)) {
	f.onChanged = fn
}

// SetFilter restricts the listed files. Folders are always shown.
func (f *FileOpen) SetFilter(filter storage.FileFilter) {
	f.extensionFilter = filter
	if f.win != nil {
		f.refreshDir(f.dir)
	}
}

// Show opens the picker.
func (f *FileOpen) Show() {
	if fileOpenOSOverride(f) {
		return
	}

	content := f.makeUI()
	f.win = widget.NewModalPopUp(content, f.parent.Canvas())
	f.win.Resize(fyne.NewSize(900, 600))
	f.win.Show()

	// Hooks go in after Show() so we wrap whatever the popup installed.
	f.originalOnTypedRune = f.parent.Canvas().OnTypedRune()
	f.parent.Canvas().SetOnTypedRune(f.typedRuneHook)
	f.originalOnTypedKey = f.parent.Canvas().OnTypedKey()
	f.parent.Canvas().SetOnTypedKey(f.typedKeyHook)
	f.refreshDir(f.dir)
}

// Hide closes the picker without reporting a selection.
func (f *FileOpen) Hide() {
	f.DismissMenu()
	if f.parent != nil && f.parent.Canvas() != nil {
		f.parent.Canvas().SetOnTypedRune(f.originalOnTypedRune)
		f.parent.Canvas().SetOnTypedKey(f.originalOnTypedKey)
	}
	if f.win != nil {
		f.win.Hide()
	}
}

// SetLocation lists dir.
func (f *FileOpen) SetLocation(dir fyne.ListableURI) {
	f.DismissMenu()
	if f.searchEntry != nil {
		f.searchEntry.SetText("")
	}
	if f.sidebar != nil {
		f.sidebar.syncSelection(dir)
	}
	f.refreshDir(dir)
}

func (f *FileOpen) IsMultiSelect() bool {
	return f.allowMultiple
}

func (f *FileOpen) Select(id int) {
	if id < 0 || id >= len(f.fileList.filtered) {
		return
	}
	uri := f.fileList.filtered[id]
	f.selected = map[string]fyne.URI{uri.String(): uri}
	f.anchor = id
	f.updateFooter()
	f.fileList.refresh()
}

func (f *FileOpen) ToggleSelection(id int) {
	if !f.allowMultiple {
		f.Select(id)
		return
	}
	if id < 0 || id >= len(f.fileList.filtered) {
		return
	}
	uri := f.fileList.filtered[id]
	if f.IsSelected(uri) {
		delete(f.selected, uri.String())
	} else {
		f.selected[uri.String()] = uri
	}
	f.anchor = id
	f.updateFooter()
	f.fileList.refresh()
}

func (f *FileOpen) ExtendSelection(id int) {
	if !f.allowMultiple {
		f.Select(id)
		return
	}
	if id < 0 || id >= len(f.fileList.filtered) {
		return
	}
	if f.anchor == -1 {
		f.anchor = 0
	}

	start, end := f.anchor, id
	if start > end {
		start, end = end, start
	}
	f.selected = make(map[string]fyne.URI)
	for i := start; i <= end; i++ {
		u := f.fileList.filtered[i]
		f.selected[u.String()] = u
	}
	f.updateFooter()
	f.fileList.refresh()
}

func (f *FileOpen) IsSelected(uri fyne.URI) bool {
	_, ok := f.selected[uri.String()]
	return ok
}

func (f *FileOpen) OpenSelection() {
	if f.open != nil && f.open.OnTapped != nil {
		f.open.OnTapped()
	}
}

func (f *FileOpen) ShowMenu(menu *fyne.Menu, pos fyne.Position, obj fyne.CanvasObject) {
	f.DismissMenu()

	c := f.parent.Canvas()
	if f.win != nil {
		c = f.win.Canvas
	}
	m := widget.NewMenu(menu)
	m.OnDismiss = f.DismissMenu

	absPos := fyne.CurrentApp().Driver().AbsolutePositionForObject(obj).Add(pos)
	f.activeMenu = widget.NewPopUp(m, c)
	f.activeMenu.ShowAtPosition(absPos)
}

func (f *FileOpen) DismissMenu() {
	if f.activeMenu != nil {
		f.activeMenu.Hide()
		f.activeMenu = nil
	}
}

func (f *FileOpen) typedRuneHook(r rune) {
	if f.originalOnTypedRune != nil {
		f.originalOnTypedRune(r)
	}
	if f.win == nil || f.searchEntry == nil {
		return
	}

	focused := f.parent.Canvas().Focused()
	if focused == f.searchEntry {
		return
	}
	// Only steal keys from navigation widgets; any other entry keeps them.
	if !f.navigationFocused(focused) {
		return
	}

	f.parent.Canvas().Focus(f.searchEntry)
	f.searchEntry.SetText(f.searchEntry.Text + string(r))
	f.searchEntry.CursorColumn = len(f.searchEntry.Text)
	f.searchEntry.Refresh()
}

func (f *FileOpen) typedKeyHook(ev *fyne.KeyEvent) {
	if f.originalOnTypedKey != nil {
		f.originalOnTypedKey(ev)
	}
	if f.win == nil || ev == nil {
		return
	}
	if ev.Name != fyne.KeyReturn && ev.Name != fyne.KeyEnter {
		return
	}
	if !f.navigationFocused(f.parent.Canvas().Focused()) {
		return
	}

	if f.open != nil && !f.open.Disabled() && len(f.selected) > 0 {
		f.open.OnTapped()
	}
}

func (f *FileOpen) navigationFocused(focused fyne.Focusable) bool {
	if focused == nil {
		return true
	}
	if f.sidebar != nil && focused == f.sidebar.list {
		return true
	}
	return f.fileList != nil && focused == f.fileList.list
}

func (f *FileOpen) makeUI() fyne.CanvasObject {
	f.sidebar = newSidebar(f)
	f.fileList = newFileList(f)
	f.breadcrumb = newBreadcrumb(f)
	f.fileList.setSortOrder(FileSortOrder(fyne.CurrentApp().Preferences().Int(sortOrderKey)))

	f.fileName = widget.NewLabel("")
	f.fileName.Truncation = fyne.TextTruncateEllipsis

	f.open = widget.NewButton(lang.L("Open"), f.handleConfirmTapped)
	f.open.Importance = widget.HighImportance
	f.open.Disable()
	f.dismiss = widget.NewButton(lang.L("Cancel"), f.Hide)
	footer := container.NewBorder(nil, nil, nil, container.NewHBox(f.dismiss, f.open), container.NewHScroll(f.fileName))

	f.searchEntry = widget.NewEntry()
	f.searchEntry.SetPlaceHolder(lang.L("Search..."))
	f.searchEntry.OnChanged = func(s string) {
		f.DismissMenu()
		f.fileList.setFilter(s)
	}

	sortLabels := []string{
		lang.L("Name (A-Z)"),
		lang.L("Name (Z-A)"),
		lang.L("Size (smallest)"),
		lang.L("Size (largest)"),
		lang.L("Date (oldest)"),
		lang.L("Date (newest)"),
	}
	sortSelect := widget.NewSelect(sortLabels, func(s string) {
		for i, label := range sortLabels {
			if label == s {
				f.fileList.setSortOrder(FileSortOrder(i))
				fyne.CurrentApp().Preferences().SetInt(sortOrderKey, i)
				return
			}
		}
	})
	sortSelect.PlaceHolder = lang.L("Sort By")
	if order := int(f.fileList.sortOrder); order >= 0 && order < len(sortLabels) {
		sortSelect.SetSelected(sortLabels[order])
	}

	hidden := widget.NewCheck(lang.L("Show Hidden Files"), func(changed bool) {
		f.showHidden = changed
		fyne.CurrentApp().Preferences().SetBool(showHiddenKey, changed)
		f.refreshDir(f.dir)
	})
	hidden.Checked = f.showHidden

	titleText := lang.L("Open File")
	if f.allowMultiple {
		titleText = lang.L("Open Files")
	}
	title := widget.NewLabelWithStyle(titleText, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	search := container.NewGridWrap(fyne.NewSize(220, 36), f.searchEntry)
	controls := container.NewHBox(search, sortSelect, hidden)
	header := container.NewVBox(
		container.NewHScroll(container.NewBorder(nil, nil, title, controls, nil)),
		widget.NewSeparator(),
	)

	split := container.NewHSplit(
		container.NewPadded(f.sidebar.list),
		container.NewBorder(container.NewPadded(f.breadcrumb.scroll), nil, nil, nil, f.fileList.content),
	)
	split.SetOffset(0.25)

	f.updateFooter()
	return container.NewBorder(header, footer, nil, nil, split)
}

func (f *FileOpen) refreshDir(dir fyne.ListableURI) {
	if dir == nil {
		return
	}
	f.dir = dir
	if f.breadcrumb != nil {
		f.breadcrumb.update(dir)
	}

	files, err := dir.List()
	if err != nil {
		fyne.LogError("could not list "+dir.String(), err)
		return
	}

	var shown []fyne.URI
	for _, file := range files {
		if !f.showHidden && isHidden(file) {
			continue
		}
		if isDir, _ := storage.CanList(file); isDir {
			shown = append(shown, file)
			continue
		}
		if f.extensionFilter == nil || f.extensionFilter.Matches(file) {
			shown = append(shown, file)
		}
	}

	if f.fileList != nil {
		f.fileList.setFiles(shown)
	}
	f.selected = make(map[string]fyne.URI)
	f.anchor = -1
	f.updateFooter()
}

func (f *FileOpen) updateFooter() {
	if f.open == nil || f.fileName == nil {
		return
	}

	var names []string
	hasDir := false
	for _, u := range f.selectedURIs() {
		names = append(names, u.Name())
		if isDir, _ := storage.CanList(u); isDir {
			hasDir = true
		}
	}
	f.fileName.SetText(strings.Join(names, ", "))

	// A folder can only be opened on its own, as navigation.
	if len(names) == 0 || (len(names) > 1 && hasDir) {
		f.open.Disable()
	} else {
		f.open.Enable()
	}
}

// selectedURIs returns the selection in list order.
func (f *FileOpen) selectedURIs() []fyne.URI {
	uris := make([]fyne.URI, 0, len(f.selected))
	seen := make(map[string]bool, len(f.selected))
	if f.fileList != nil {
		for _, u := range f.fileList.filtered {
			if _, ok := f.selected[u.String()]; ok {
				uris = append(uris, u)
				seen[u.String()] = true
			}
		}
	}
	// Selected entries hidden by the search go last, in a stable order.
	var rest []string
	for key := range f.selected {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)
	for _, key := range rest {
		uris = append(uris, f.selected[key])
	}
	return uris
}

func (f *FileOpen) handleConfirmTapped() {
	uris := f.selectedURIs()
	if len(uris) == 1 {
		if isDir, _ := storage.CanList(uris[0]); isDir {
			if l, err := storage.ListerForURI(uris[0]); err == nil {
				f.SetLocation(l)
				return
			}
		}
	}

	f.Hide()
	f.emit(uris)
}

func (f *FileOpen) emit(uris []fyne.URI) {
	files := urifile.FromURIs(uris)
	if len(files) == 0 || f.onChanged == nil {
		return
	}
	f.onChanged(files)
}

// Helpers

func isHidden(file fyne.URI) bool {
	if file.Scheme() != "file" {
		return false
	}
	name := filepath.Base(file.Path())
	return name == "" || name[0] == '.'
}

func effectiveStartingDir() fyne.ListableURI {
	if dir, err := os.UserHomeDir(); err == nil {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			return lister
		}
	}
	lister, _ := storage.ListerForURI(storage.NewFileURI("/"))
	return lister
}
