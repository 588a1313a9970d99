package dialog

import (
	"fyne.io/fyne/v2"
)

const (
	fileInlineIconSize = 24
	showHiddenKey      = "xfileinput:pickerShowHidden"
	sortOrderKey       = "xfileinput:pickerSortOrder"
)

type favoriteItem struct {
	locName string
	locIcon fyne.Resource
	loc     fyne.ListableURI
}

// FilePicker is what the sidebar, breadcrumb and file list need from the
// dialog that owns them.
type FilePicker interface {
	SetLocation(dir fyne.ListableURI)
	Select(id int)
	ToggleSelection(id int)
	ExtendSelection(id int)
	IsSelected(uri fyne.URI) bool
	OpenSelection()
	IsMultiSelect() bool
	ShowMenu(menu *fyne.Menu, pos fyne.Position, obj fyne.CanvasObject)
	DismissMenu()
}
