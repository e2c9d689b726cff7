package screen

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCapturer struct {
	img   image.Image
	err   error
	calls int
}

func (s *stubCapturer) Capture(context.Context) (image.Image, error) {
	s.calls++
	return s.img, s.err
}

type stubOCR struct {
	text string
	err  error
	seen image.Image
}

func (s *stubOCR) ExtractText(_ context.Context, img image.Image) (string, error) {
	s.seen = img
	return s.text, s.err
}

func TestPipelineCleansOCRText(t *testing.T) {
	capt := &stubCapturer{img: uniformRGBA(40, 20, color.RGBA{R: 255, G: 255, B: 255, A: 255})}
	ocr := &stubOCR{text: "Invoice | Total:\n\t$42.50 ©"}

	text, err := NewPipeline(capt, ocr).CaptureAndExtract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Invoice Total 42.50", text)

	gray, ok := ocr.seen.(*image.Gray)
	require.True(t, ok, "ocr must receive the preprocessed grayscale image")
	assert.Equal(t, image.Rect(0, 0, 60, 30), gray.Bounds())
}

func TestPipelineBinarisesBeforeOCR(t *testing.T) {
	img := uniformRGBA(10, 10, color.RGBA{R: 140, G: 140, B: 140, A: 255})
	ocr := &stubOCR{text: "x"}

	_, err := NewPipeline(&stubCapturer{img: img}, ocr).CaptureAndExtract(context.Background())
	require.NoError(t, err)

	for _, v := range ocr.seen.(*image.Gray).Pix {
		assert.Equal(t, uint8(0), v)
	}
}

func TestPipelineOCRFailureYieldsEmptyText(t *testing.T) {
	capt := &stubCapturer{img: uniformRGBA(4, 4, color.RGBA{A: 255})}
	ocr := &stubOCR{text: "partial garbage", err: errors.New("tesseract crashed")}

	text, err := NewPipeline(capt, ocr).CaptureAndExtract(context.Background())
	assert.Empty(t, text)
	assert.ErrorIs(t, err, ErrCapture)
}

func TestPipelineCaptureFailureSkipsOCR(t *testing.T) {
	capt := &stubCapturer{err: errors.New("permission denied")}
	ocr := &stubOCR{text: "never"}

	text, err := NewPipeline(capt, ocr).CaptureAndExtract(context.Background())
	assert.Empty(t, text)
	assert.ErrorIs(t, err, ErrCapture)
	assert.Nil(t, ocr.seen)
}

func TestPipelineZeroSizeScreenshot(t *testing.T) {
	capt := &stubCapturer{img: image.NewRGBA(image.Rect(0, 0, 0, 0))}

	text, err := NewPipeline(capt, &stubOCR{}).CaptureAndExtract(context.Background())
	assert.Empty(t, text)
	assert.ErrorIs(t, err, ErrCapture)
	assert.ErrorIs(t, err, ErrEmptyImage)
}
