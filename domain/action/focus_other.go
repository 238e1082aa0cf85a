//go:build !windows

package action

import "errors"

// ForegroundWindowTitle is only implemented on Windows.
func ForegroundWindowTitle() (string, error) {
	return "", errors.New("foreground window title not supported on this platform")
}

// RestoreForeground does nothing outside Windows; Tk focus handling covers X11 and macOS.
func RestoreForeground(overlayTitle, mainTitle string) (bool, error) {
	return false, nil
}
