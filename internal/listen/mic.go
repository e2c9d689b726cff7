package listen

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"jarvis/pkg/stt"
)

type recorder interface {
	RecordUtterance() ([]float32, error)
}

type cue interface {
	Listening(ctx context.Context) error
}

// Mic records one utterance from the default input and transcribes it.
type Mic struct {
	rec     recorder
	tr      transcriber
	opt     stt.Options
	cue     cue
	timeout time.Duration
}

func NewMic(rec recorder, tr transcriber, opt stt.Options, c cue) *Mic {
	return &Mic{rec: rec, tr: tr, opt: opt, cue: c, timeout: 60 * time.Second}
}

func (m *Mic) Listen(ctx context.Context) (string, error) {
	if m.cue != nil {
		if err := m.cue.Listening(ctx); err != nil {
			log.Warn("Failed to play listen cue", "err", err)
		}
	}

	log.Info("Listening...")

	pcm, err := m.rec.RecordUtterance()
	if err != nil {
		return "", errors.Join(ErrUnavailable, err)
	}

	log.Debug("Recorded", "samples", len(pcm))

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	text, err := transcribe(ctx, m.tr, pcm, m.opt)
	if err == nil {
		log.Info("Heard", "text", text)
	}
	return text, err
}
