package screen

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// Capturer grabs a raster image of the screen.
type Capturer interface {
	Capture(ctx context.Context) (image.Image, error)
}

// Display captures the union of all active displays.
type Display struct{}

func (Display) Capture(_ context.Context) (image.Image, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, errors.New("no active displays")
	}

	var all image.Rectangle
	for i := 0; i < n; i++ {
		all = all.Union(screenshot.GetDisplayBounds(i))
	}

	img, err := screenshot.CaptureRect(all)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", all, err)
	}

	return img, nil
}
