//go:build windows

package action

import (
	"errors"
	"strings"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ForegroundWindowTitle returns the title of the current foreground window.
// If no foreground window is available an error is returned.
func ForegroundWindowTitle() (string, error) {
	user32 := windows.NewLazySystemDLL("user32.dll")
	getForegroundWindow := user32.NewProc("GetForegroundWindow")
	hwnd, _, _ := getForegroundWindow.Call()
	if hwnd == 0 {
		return "", errors.New("no foreground window")
	}
	return windowText(user32, hwnd), nil
}

// RestoreForeground brings the top-level window titled mainTitle to the
// foreground when the window titled overlayTitle currently owns it.
// It reports whether focus was moved.
func RestoreForeground(overlayTitle, mainTitle string) (bool, error) {
	current, err := ForegroundWindowTitle()
	if err != nil {
		return false, err
	}
	if !strings.EqualFold(strings.TrimSpace(current), strings.TrimSpace(overlayTitle)) {
		return false, nil
	}
	user32 := windows.NewLazySystemDLL("user32.dll")
	findWindowW := user32.NewProc("FindWindowW")
	setForegroundWindow := user32.NewProc("SetForegroundWindow")
	title, err := windows.UTF16PtrFromString(mainTitle)
	if err != nil {
		return false, err
	}
	hwnd, _, _ := findWindowW.Call(0, uintptr(unsafe.Pointer(title)))
	if hwnd == 0 {
		return false, errors.New("main window not found")
	}
	r, _, callErr := setForegroundWindow.Call(hwnd)
	if r == 0 {
		return false, callErr
	}
	return true, nil
}

func windowText(user32 *windows.LazyDLL, hwnd uintptr) string {
	getWindowTextW := user32.NewProc("GetWindowTextW")
	const maxChars = 256
	buf := make([]uint16, maxChars)
	r, _, _ := getWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r == 0 {
		return ""
	}
	var end int
	for i, v := range buf {
		if v == 0 {
			end = i
			break
		}
	}
	if end == 0 {
		end = int(r)
	}
	return strings.TrimSpace(string(utf16.Decode(buf[:end])))
}
