//go:build windows

package dialog

import (
	"os"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
)

func driveMask() uint32 {
	dll, err := syscall.LoadLibrary("kernel32.dll")
	if err != nil {
		fyne.LogError("Error loading kernel32.dll", err)
		return 0
	}
	handle, err := syscall.GetProcAddress(dll, "GetLogicalDrives")
	if err != nil {
		fyne.LogError("Could not find GetLogicalDrives call", err)
		return 0
	}

	ret, _, err := syscall.SyscallN(uintptr(handle))
	if err != syscall.Errno(0) {
		fyne.LogError("Error calling GetLogicalDrives", err)
		return 0
	}

	return uint32(ret)
}

func listDrives() []string {
	var drives []string
	mask := driveMask()

	for i := 0; i < 26; i++ {
		if mask&1 == 1 {
			letter := string('A' + rune(i))
			drives = append(drives, letter+":")
		}
		mask >>= 1
	}

	return drives
}

func (s *sidebar) getPlaces() []favoriteItem {
	drives := listDrives()
	places := make([]favoriteItem, 0, len(drives))
	for _, drive := range drives {
		root, err := storage.ListerForURI(storage.NewFileURI(drive + string(os.PathSeparator)))
		if err != nil {
			continue
		}
		places = append(places, favoriteItem{
			locName: drive,
			locIcon: theme.StorageIcon(),
			loc:     root,
		})
	}
	return places
}
