// Package desktop wraps the operating system input, screen and clipboard
// primitives the bot drives. Everything here acts on the foreground window
// at absolute screen coordinates.
package desktop

import "image"

//go:generate go tool mockgen -source=desktop.go -destination=mock_desktop.go -package=desktop

// Desktop is the set of OS-level capabilities used by the screen locator,
// the window positioner and the chat relay.
type Desktop interface {
	// CaptureScreen grabs the whole primary display.
	CaptureScreen() (image.Image, error)

	// Click moves the pointer to (x, y) and clicks the left button once.
	Click(x, y int) error

	// MultiClick clicks count times in quick succession at (x, y). A count of
	// three selects a paragraph in most browsers.
	MultiClick(x, y, count int) error

	// KeyTap presses key while holding the given modifiers.
	KeyTap(key string, modifiers ...string) error

	// TypeText types text as individual keystrokes.
	TypeText(text string) error

	// ReadClipboard returns the current text clipboard contents.
	ReadClipboard() (string, error)

	// WriteClipboard replaces the text clipboard contents.
	WriteClipboard(text string) error
}
