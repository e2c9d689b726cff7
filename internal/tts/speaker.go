package tts

import (
	"context"
	"fmt"
	"io"
	log "log/slog"
	"os"
	"os/exec"

	"jarvis/internal/playback"
)

type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Clip renders speech to a temporary wav with the espeak-ng CLI, plays it
// and removes the file.
type Clip struct {
	Voice  string
	Binary string
	play   func(ctx context.Context, path string) error
}

func NewClip(voice string) *Clip {
	return &Clip{Voice: voice, Binary: "espeak-ng", play: playback.PlayFile}
}

func (c *Clip) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	f, err := os.CreateTemp("", "jarvis-response-*.wav")
	if err != nil {
		return fmt.Errorf("create clip: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	voice := c.Voice
	if voice == "" {
		voice = "en"
	}

	cmd := exec.CommandContext(ctx, c.Binary, "-v", voice, "-w", path, "--", text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w (%s)", c.Binary, err, out)
	}

	return c.play(ctx, path)
}

// Console writes what would be spoken; used for typed sessions and dry runs.
type Console struct {
	W io.Writer
}

func (c Console) Speak(_ context.Context, text string) error {
	_, err := fmt.Fprintf(c.W, "jarvis: %s\n", text)
	return err
}

type ducker interface {
	Duck(ctx context.Context) error
	Restore(ctx context.Context) error
}

// Ducking lowers other audio streams for the duration of each utterance.
type Ducking struct {
	Speaker
	Ducker ducker
}

func (d Ducking) Speak(ctx context.Context, text string) error {
	if err := d.Ducker.Duck(ctx); err != nil {
		log.Warn("Failed to duck other streams", "err", err)
	}
	defer func() {
		if err := d.Ducker.Restore(context.WithoutCancel(ctx)); err != nil {
			log.Warn("Failed to restore other streams", "err", err)
		}
	}()

	return d.Speaker.Speak(ctx, text)
}
