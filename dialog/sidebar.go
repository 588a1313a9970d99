package dialog

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/FyshOS/fancyfs"
)

type sidebar struct {
	picker FilePicker
	list   *widget.List
	items  []favoriteItem
}

func newSidebar(p FilePicker) *sidebar {
	s := &sidebar{picker: p}
	s.loadFavorites()

	s.list = widget.NewList(
		func() int { return len(s.items) },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.DocumentIcon()),
				widget.NewLabel(lang.L("Template")),
			)
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(s.items) {
				return
			}
			item := s.items[id]
			box := o.(*fyne.Container)
			box.Objects[0].(*widget.Icon).SetResource(item.locIcon)
			box.Objects[1].(*widget.Label).SetText(lang.L(item.locName))
		},
	)
	s.list.OnSelected = func(id widget.ListItemID) {
		if id < len(s.items) {
			s.picker.SetLocation(s.items[id].loc)
		}
	}
	return s
}

// syncSelection highlights the favorite matching dir, if any.
func (s *sidebar) syncSelection(dir fyne.ListableURI) {
	if s.list == nil || dir == nil {
		return
	}
	for i, item := range s.items {
		if item.loc != nil && item.loc.String() == dir.String() {
			s.list.Select(i)
			return
		}
	}
	s.list.UnselectAll()
}

func (s *sidebar) loadFavorites() {
	s.items = nil

	homeDir, _ := os.UserHomeDir()
	homeURI := storage.NewFileURI(homeDir)
	if l, err := storage.ListerForURI(homeURI); err == nil {
		s.items = append(s.items, favoriteItem{
			locName: "Home",
			locIcon: folderIcon(homeURI, theme.HomeIcon()),
			loc:     l,
		})
	}

	order := []string{"Desktop", "Documents", "Downloads", "Music", "Pictures", "Videos"}
	if runtime.GOOS == "darwin" {
		order = []string{"Desktop", "Documents", "Downloads", "Music", "Pictures", "Movies"}
	}
	for _, name := range order {
		uri, err := getFavoriteLocation(homeURI, name)
		if err != nil {
			continue
		}
		if l, err := storage.ListerForURI(uri); err == nil {
			s.items = append(s.items, favoriteItem{
				locName: name,
				locIcon: folderIcon(uri, theme.FolderIcon()),
				loc:     l,
			})
		}
	}

	s.items = append(s.items, s.getPlaces()...)
}

// folderIcon prefers a fancyfs folder decoration over fallback.
func folderIcon(u fyne.URI, fallback fyne.Resource) fyne.Resource {
	if details, err := fancyfs.DetailsForFolder(u); err == nil && details != nil && details.BackgroundResource != nil {
		return details.BackgroundResource
	}
	return fallback
}

func getFavoriteLocation(homeURI fyne.URI, name string) (fyne.URI, error) {
	if runtime.GOOS != "linux" && runtime.GOOS != "openbsd" && runtime.GOOS != "freebsd" && runtime.GOOS != "netbsd" {
		return storage.Child(homeURI, name)
	}

	const cmdName = "xdg-user-dir"
	if _, err := exec.LookPath(cmdName); err != nil {
		return storage.Child(homeURI, name)
	}
	loc, err := exec.Command(cmdName, strings.ToUpper(name)).Output()
	if err != nil {
		return storage.Child(homeURI, name)
	}

	locURI := storage.NewFileURI(filepath.Clean(strings.TrimSpace(string(loc))))
	// xdg-user-dir answers $HOME for unset entries.
	if locURI.String() == homeURI.String() {
		childPath := filepath.Join(homeURI.Path(), name)
		if resolved, err := filepath.EvalSymlinks(childPath); err == nil {
			return storage.NewFileURI(resolved), nil
		}
		return storage.NewFileURI(childPath), nil
	}
	return locURI, nil
}
