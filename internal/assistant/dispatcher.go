package assistant

import (
	"context"
	"errors"
	log "log/slog"

	"jarvis/internal/intent"
)

var (
	// ErrExit is returned by Dispatch once the farewell has been spoken.
	ErrExit = errors.New("exit requested")
	// ErrClassification marks commands that resolved to the unknown intent.
	ErrClassification = errors.New("command not understood")
)

const NotUnderstood = "I don't understand the command. Please try again."

// Handler executes one intent. command is the original utterance.
type Handler func(ctx context.Context, command string) error

type route struct {
	handle  Handler
	failure string // spoken when handle returns an error
}

// Dispatcher is a routing table from intent to handler. Handler errors are
// reported the same way for every route: logged and turned into the route's
// spoken failure sentence.
type Dispatcher struct {
	routes  map[intent.Intent]route
	speaker Speaker
}

func NewDispatcher(s Speaker) *Dispatcher {
	return &Dispatcher{
		routes:  make(map[intent.Intent]route),
		speaker: s,
	}
}

func (d *Dispatcher) Register(in intent.Intent, failure string, h Handler) {
	d.routes[in] = route{handle: h, failure: failure}
}

// Dispatch runs exactly one handler. Unknown, and any intent without a route,
// gets the fixed not-understood reply and is never re-classified. The only
// error it returns is ErrExit.
func (d *Dispatcher) Dispatch(ctx context.Context, in intent.Intent, command string) error {
	r, ok := d.routes[in]
	if !ok || in == intent.Unknown {
		log.Warn("No action for command", "intent", in, "err", ErrClassification)
		d.say(ctx, NotUnderstood)
		return nil
	}

	err := r.handle(ctx, command)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrExit):
		return ErrExit
	}

	log.Error("Action failed", "intent", in, "err", err)
	d.say(ctx, r.failure)

	return nil
}

func (d *Dispatcher) say(ctx context.Context, text string) {
	if err := d.speaker.Speak(ctx, text); err != nil {
		log.Error("Failed to voice out", "text", text, "err", err)
	}
}
