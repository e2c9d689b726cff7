package screen

import (
	"errors"
	"image"
	"math"
	"sort"

	xdraw "golang.org/x/image/draw"
)

var ErrEmptyImage = errors.New("zero-size image")

// Grayscale converts img to a single-channel 8-bit image anchored at (0,0).
func Grayscale(img image.Image) (*image.Gray, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}

	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(gray, gray.Bounds(), img, b.Min, xdraw.Src)

	return gray, nil
}

// Threshold maps every pixel >= level to white and the rest to black.
func Threshold(src *image.Gray, level uint8) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, y):][:b.Dx()]
		out := dst.Pix[dst.PixOffset(b.Min.X, y):][:b.Dx()]
		for i, v := range row {
			if v >= level {
				out[i] = 0xff
			}
		}
	}
	return dst
}

// Upscale resizes src by factor using bilinear interpolation.
func Upscale(src *image.Gray, factor float64) (*image.Gray, error) {
	b := src.Bounds()
	w := int(math.Round(float64(b.Dx()) * factor))
	h := int(math.Round(float64(b.Dy()) * factor))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)

	return dst, nil
}

// Denoise runs a 3x3 median filter, which removes the isolated speckle left
// by binarising and interpolating anti-aliased glyph edges. Border pixels
// use the clamped neighbourhood.
func Denoise(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)

	var win [9]uint8
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					win[n] = src.GrayAt(clampInt(x+dx, b.Min.X, b.Max.X-1), clampInt(y+dy, b.Min.Y, b.Max.Y-1)).Y
					n++
				}
			}
			s := win[:]
			sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
			dst.Pix[dst.PixOffset(x, y)] = s[4]
		}
	}

	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
