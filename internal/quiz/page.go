package quiz

import "time"

//go:generate go tool mockgen -source=page.go -destination=mock_page_test.go -package=quiz

// browserPage is the slice of a browser tab the driver needs. The
// playwright implementation lives in playwright.go.
type browserPage interface {
	// Goto navigates and waits for the DOM to load.
	Goto(url string) error

	// Count returns how many elements match selector right now.
	Count(selector string) (int, error)

	// Fill replaces the value of the first matching input.
	Fill(selector, value string) error

	// Click waits up to timeout for the element to become clickable and clicks it.
	Click(selector string, timeout time.Duration) error

	// Type sends keystrokes to the focused element.
	Type(text string) error

	// InnerText waits up to timeout for the element and returns its rendered text.
	InnerText(selector string, timeout time.Duration) (string, error)

	// DispatchClick fires a DOM click event without pointer input, so it
	// works on occluded or off-screen elements.
	DispatchClick(selector string) error

	// Reload reloads the current page.
	Reload() error

	// Close releases the tab and its browser.
	Close() error
}
