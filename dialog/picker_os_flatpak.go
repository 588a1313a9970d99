//go:build flatpak && !windows && !android && !ios && !wasm && !js

package dialog

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/storage"

	"github.com/rymdport/portal"
	"github.com/rymdport/portal/filechooser"
)

// fileOpenOSOverride hands the selection to the xdg desktop portal. The
// portal call blocks, so it runs off the UI goroutine and the result comes
// back through fyne.Do.
func fileOpenOSOverride(f *FileOpen) bool {
	options := &filechooser.OpenFileOptions{
		AcceptLabel: lang.L("Open"),
		Multiple:    f.allowMultiple,
	}
	if f.dir != nil {
		options.CurrentFolder = f.dir.Path()
	}
	options.Filters, options.CurrentFilter = convertFilterForPortal(f.extensionFilter)
	windowHandle := windowHandleForPortal(f.parent)

	go func() {
		raw, err := filechooser.OpenFile(windowHandle, lang.L("Open File"), options)
		if err != nil {
			fyne.LogError("file chooser portal failed", err)
			return
		}

		uris := make([]fyne.URI, 0, len(raw))
		for _, r := range raw {
			uri, err := storage.ParseURI(r)
			if err != nil {
				fyne.LogError("portal returned an invalid URI "+r, err)
				continue
			}
			uris = append(uris, uri)
		}

		fyne.Do(func() {
			f.emit(uris)
		})
	}()
	return true
}

func windowHandleForPortal(window fyne.Window) string {
	native, ok := window.(driver.NativeWindow)
	if !ok {
		return ""
	}

	windowHandle := ""
	native.RunNative(func(context any) {
		if x11, ok := context.(driver.X11WindowContext); ok {
			windowHandle = portal.FormatX11WindowHandle(x11.WindowHandle)
		}
	})
	return windowHandle
}

func convertFilterForPortal(fyneFilter storage.FileFilter) (list []*filechooser.Filter, current *filechooser.Filter) {
	if fyneFilter == nil {
		return nil, nil
	}

	if filter, ok := fyneFilter.(*storage.ExtensionFileFilter); ok {
		rules := make([]filechooser.Rule, 0, 2*len(filter.Extensions))
		for _, ext := range filter.Extensions {
			rules = append(rules,
				filechooser.Rule{Type: filechooser.GlobPattern, Pattern: "*" + strings.ToLower(ext)},
				filechooser.Rule{Type: filechooser.GlobPattern, Pattern: "*" + strings.ToUpper(ext)},
			)
		}
		converted := &filechooser.Filter{Name: formatFilterName(filter.Extensions, 3), Rules: rules}
		return []*filechooser.Filter{converted}, converted
	}

	if filter, ok := fyneFilter.(*storage.MimeTypeFileFilter); ok {
		rules := make([]filechooser.Rule, len(filter.MimeTypes))
		for i, mime := range filter.MimeTypes {
			rules[i] = filechooser.Rule{Type: filechooser.MIMEType, Pattern: mime}
		}
		converted := &filechooser.Filter{Name: formatFilterName(filter.MimeTypes, 3), Rules: rules}
		return []*filechooser.Filter{converted}, converted
	}

	return nil, nil
}

func formatFilterName(patterns []string, count int) string {
	if len(patterns) < count {
		count = len(patterns)
	}

	name := strings.Join(patterns[:count], ", ")
	if len(patterns) > count {
		name += "…"
	}
	return name
}
