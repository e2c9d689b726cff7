package listen

import (
	"context"
	"errors"
	"strings"

	"jarvis/pkg/stt"
)

var (
	ErrNoSpeech    = errors.New("no speech detected")
	ErrUnavailable = errors.New("speech recognition unavailable")
	// ErrExhausted ends the session: the input source has nothing left.
	ErrExhausted = errors.New("input exhausted")
)

// Listener returns one recognised, lower-cased command per call.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

type transcriber interface {
	TranscribePCM(ctx context.Context, pcm16k []float32, opt stt.Options) (stt.Result, error)
}

func normalizeCommand(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func transcribe(ctx context.Context, tr transcriber, pcm []float32, opt stt.Options) (string, error) {
	if len(pcm) == 0 {
		return "", ErrNoSpeech
	}

	res, err := tr.TranscribePCM(ctx, pcm, opt)
	if err != nil {
		return "", errors.Join(ErrUnavailable, err)
	}

	text := normalizeCommand(res.Text)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}
