package screen

import (
	"context"
	"image"
)

// Recognizer extracts raw text from an image.
type Recognizer interface {
	ExtractText(ctx context.Context, img image.Image) (string, error)
}
