package notify

import (
	"context"
	"os/exec"

	"jarvis/internal/playback"
)

// Cue tells the user the assistant is about to listen.
type Cue struct {
	BeepPath string // mp3/wav played before listening; empty disables it
	Desktop  bool   // also raise a desktop notification
}

func (c Cue) Listening(ctx context.Context) error {
	if c.Desktop {
		Desktop(ctx, "Listening...")
	}
	if c.BeepPath == "" {
		return nil
	}
	return playback.PlayFile(ctx, c.BeepPath)
}

// Desktop sends a best-effort notification through notify-send.
func Desktop(ctx context.Context, text string) {
	_ = exec.CommandContext(ctx, "notify-send", "-a", "jarvis", "-t", "2000", text).Run()
}
