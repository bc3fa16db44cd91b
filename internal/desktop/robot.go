package desktop

import (
	"fmt"
	"image"
	"time"

	"github.com/atotto/clipboard"
	"github.com/go-vgo/robotgo"
)

// DefaultClickInterval separates the clicks of a MultiClick.
const DefaultClickInterval = 60 * time.Millisecond

// Robot implements Desktop with robotgo and the system clipboard.
type Robot struct {
	ClickInterval time.Duration
}

var _ Desktop = (*Robot)(nil)

// NewRobot returns a Robot with default timings.
func NewRobot() *Robot {
	return &Robot{ClickInterval: DefaultClickInterval}
}

func (r *Robot) CaptureScreen() (image.Image, error) {
	img, err := robotgo.CaptureImg()
	if err != nil {
		return nil, fmt.Errorf("capturing screen: %w", err)
	}
	return img, nil
}

func (r *Robot) Click(x, y int) error {
	robotgo.Move(x, y)
	robotgo.Click("left", false)
	return nil
}

func (r *Robot) MultiClick(x, y, count int) error {
	if count < 1 {
		return fmt.Errorf("click count must be positive, got %d", count)
	}

	robotgo.Move(x, y)
	for i := 0; i < count; i++ {
		if i > 0 {
			time.Sleep(r.ClickInterval)
		}
		robotgo.Click("left", false)
	}
	return nil
}

func (r *Robot) KeyTap(key string, modifiers ...string) error {
	var err error
	if len(modifiers) == 0 {
		err = robotgo.KeyTap(key)
	} else {
		err = robotgo.KeyTap(key, modifiers)
	}
	if err != nil {
		return fmt.Errorf("pressing %s %v: %w", key, modifiers, err)
	}
	return nil
}

func (r *Robot) TypeText(text string) error {
	robotgo.TypeStr(text)
	return nil
}

func (r *Robot) ReadClipboard() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

func (r *Robot) WriteClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
