package listen

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"jarvis/pkg/audioconv"
	"jarvis/pkg/stt"
)

// Files replays pre-recorded utterances, one file per Listen call.
type Files struct {
	paths  []string
	tr     transcriber
	opt    stt.Options
	decode func(path string, maxSamples int) ([]float32, error)
}

func NewFiles(paths []string, tr transcriber, opt stt.Options) *Files {
	return &Files{
		paths:  append([]string(nil), paths...),
		tr:     tr,
		opt:    opt,
		decode: audioconv.DecodeFile,
	}
}

func (f *Files) Listen(ctx context.Context) (string, error) {
	if len(f.paths) == 0 {
		return "", ErrExhausted
	}

	path := f.paths[0]
	f.paths = f.paths[1:]

	log.Info("Replaying utterance", "file", path)

	// 30s cap keeps a mislabelled long file from stalling whisper
	pcm, err := f.decode(path, 30*audioconv.TargetRate)
	if err != nil {
		return "", errors.Join(ErrUnavailable, fmt.Errorf("decode %s: %w", path, err))
	}

	return transcribe(ctx, f.tr, pcm, f.opt)
}
