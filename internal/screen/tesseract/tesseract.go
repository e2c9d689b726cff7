// Package tesseract implements screen.Recognizer on top of libtesseract.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Client runs OCR through libtesseract.
type Client struct {
	Languages []string
}

func (t Client) ExtractText(_ context.Context, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	langs := t.Languages
	if len(langs) == 0 {
		langs = []string{"eng"}
	}
	if err := client.SetLanguage(langs...); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}

	return text, nil
}
