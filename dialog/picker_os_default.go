//go:build !android && !ios && !(flatpak && !windows && !wasm && !js)

package dialog

func fileOpenOSOverride(*FileOpen) bool {
	return false
}
