package screen

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"jarvis/internal/textclean"
)

// ErrCapture wraps any failure of the capture pipeline.
var ErrCapture = errors.New("screen capture failed")

const (
	DefaultThreshold = 150
	DefaultScale     = 1.5
)

type Pipeline struct {
	capturer  Capturer
	ocr       Recognizer
	threshold uint8
	scale     float64
}

func NewPipeline(c Capturer, ocr Recognizer) *Pipeline {
	return &Pipeline{
		capturer:  c,
		ocr:       ocr,
		threshold: DefaultThreshold,
		scale:     DefaultScale,
	}
}

// CaptureAndExtract returns cleaned screen text. On any failure the text is
// empty and the error wraps ErrCapture.
func (p *Pipeline) CaptureAndExtract(ctx context.Context) (string, error) {
	text, err := p.run(ctx)
	if err != nil {
		log.Error("Failed to extract screen text", "err", err)
		return "", fmt.Errorf("%w: %w", ErrCapture, err)
	}

	log.Info("Extracted screen text", "chars", len(text))
	log.Debug("Cleaned extracted text", "text", text)

	return text, nil
}

func (p *Pipeline) run(ctx context.Context) (string, error) {
	shot, err := p.capturer.Capture(ctx)
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	if shot == nil {
		return "", fmt.Errorf("screenshot: %w", ErrEmptyImage)
	}

	gray, err := Grayscale(shot)
	if err != nil {
		return "", fmt.Errorf("grayscale: %w", err)
	}

	scaled, err := Upscale(Threshold(gray, p.threshold), p.scale)
	if err != nil {
		return "", fmt.Errorf("upscale: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := p.ocr.ExtractText(ctx, Denoise(scaled))
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}

	return textclean.Normalize(raw), nil
}
