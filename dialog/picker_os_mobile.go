//go:build android || ios

package dialog

import (
	"fyne.io/fyne/v2"
	fynedialog "fyne.io/fyne/v2/dialog"
)

// fileOpenOSOverride uses the platform picker, which returns one file.
func fileOpenOSOverride(f *FileOpen) bool {
	d := fynedialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			fyne.LogError("file picker failed", err)
			return
		}
		if reader == nil {
			return
		}
		uri := reader.URI()
		_ = reader.Close()
		fyne.Do(func() {
			f.emit([]fyne.URI{uri})
		})
	}, f.parent)
	if f.extensionFilter != nil {
		d.SetFilter(f.extensionFilter)
	}
	d.Show()
	return true
}
