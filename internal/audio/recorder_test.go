package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func frame(n int, v float32) []float32 {
	f := make([]float32, n)
	for i := range f {
		f[i] = v
	}
	return f
}

func TestSegmenterEndsAfterTrailingSilence(t *testing.T) {
	cfg := DefaultRecorderConfig()
	seg := newSegmenter(cfg)

	seg.push(frame(cfg.FrameSize, 0))
	assert.Empty(t, seg.out, "leading silence is dropped")

	for i := 0; i < 10; i++ {
		seg.push(frame(cfg.FrameSize, 0.5))
	}
	assert.False(t, seg.done())

	// 600ms of 20ms frames
	for i := 0; i < 29; i++ {
		seg.push(frame(cfg.FrameSize, 0))
	}
	assert.False(t, seg.done())
	seg.push(frame(cfg.FrameSize, 0))
	assert.True(t, seg.done())
	assert.Len(t, seg.out, 40*cfg.FrameSize)
}

func TestSegmenterLeadTimeout(t *testing.T) {
	cfg := DefaultRecorderConfig()
	cfg.LeadTimeout = 100 * time.Millisecond
	seg := newSegmenter(cfg)

	for i := 0; i < 5; i++ {
		seg.push(frame(cfg.FrameSize, 0))
	}
	assert.True(t, seg.done())
	assert.Empty(t, seg.out)
}

func TestSegmenterMaxLength(t *testing.T) {
	cfg := DefaultRecorderConfig()
	cfg.MaxLength = 200 * time.Millisecond
	seg := newSegmenter(cfg)

	for i := 0; i < 10 && !seg.done(); i++ {
		seg.push(frame(cfg.FrameSize, 0.9))
	}
	assert.True(t, seg.done())
	assert.Len(t, seg.out, 10*cfg.FrameSize)
}

func TestFrameRMS(t *testing.T) {
	assert.Zero(t, frameRMS(nil))
	assert.InDelta(t, 0.5, frameRMS(frame(4, 0.5)), 1e-6)
}
