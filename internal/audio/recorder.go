package audio

import (
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

const SampleRate = 16000

// RecorderConfig tunes utterance end-pointing.
type RecorderConfig struct {
	FrameSize       int           // samples per read, 320 = 20ms
	SilenceRMS      float64       // frames at or below are silence
	TrailingSilence time.Duration // silence that ends an utterance
	LeadTimeout     time.Duration // give up if nobody starts talking
	MaxLength       time.Duration
}

func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		FrameSize:       320,
		SilenceRMS:      0.015,
		TrailingSilence: 600 * time.Millisecond,
		LeadTimeout:     5 * time.Second,
		MaxLength:       10 * time.Second,
	}
}

type Recorder struct {
	cfg RecorderConfig
}

func NewRecorder(cfg RecorderConfig) *Recorder { return &Recorder{cfg: cfg} }

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// RecordUtterance blocks until one utterance has been captured. It returns an
// empty slice when nobody spoke before LeadTimeout.
func (r *Recorder) RecordUtterance() ([]float32, error) {
	buf := make([]float32, r.cfg.FrameSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	seg := newSegmenter(r.cfg)
	for !seg.done() {
		if err := stream.Read(); err != nil {
			return nil, err
		}
		seg.push(buf)
	}

	return seg.out, nil
}

// segmenter is the end-pointing state machine, split out of the portaudio
// loop so it can run on synthetic frames.
type segmenter struct {
	frameDur time.Duration
	cfg      RecorderConfig

	out      []float32
	elapsed  time.Duration
	silence  time.Duration
	speaking bool
	finished bool
}

func newSegmenter(cfg RecorderConfig) *segmenter {
	return &segmenter{
		cfg:      cfg,
		frameDur: time.Duration(cfg.FrameSize) * time.Second / SampleRate,
		out:      make([]float32, 0, SampleRate*3),
	}
}

func (s *segmenter) push(frame []float32) {
	s.elapsed += s.frameDur

	if frameRMS(frame) > s.cfg.SilenceRMS {
		s.speaking = true
		s.silence = 0
		s.out = append(s.out, frame...)
	} else if s.speaking {
		s.silence += s.frameDur
		s.out = append(s.out, frame...)
		if s.silence >= s.cfg.TrailingSilence {
			s.finished = true
		}
	}

	if !s.speaking && s.cfg.LeadTimeout > 0 && s.elapsed >= s.cfg.LeadTimeout {
		s.finished = true
	}
	if s.elapsed >= s.cfg.MaxLength {
		s.finished = true
	}
}

func (s *segmenter) done() bool { return s.finished }

func frameRMS(f []float32) float64 {
	if len(f) == 0 {
		return 0
	}
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
