package assistant

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"jarvis/internal/actions"
	"jarvis/internal/intent"
	"jarvis/internal/listen"
	"jarvis/internal/prompt"
	"jarvis/internal/session"
)

const (
	Goodbye           = "Goodbye!"
	DidNotCatch       = "I didn't catch that. Please try again."
	RecognitionFailed = "There was an error with the speech recognition service."
	LookingAtScreen   = "Looking at your screen..."
	AskForQuestion    = "What would you like me to answer?"
	StartEvent        = "Let's create a calendar event."
	EmailSent         = "Email sent."
	EventCreated      = "The event has been created."
	EmailFailed       = "Failed to send the email."
	EventFailed       = "Failed to create the event."
	ScreenFailed      = "I couldn't read anything from your screen."
	QuestionFailed    = "Failed to answer the question."
	defaultMailFrom   = "me"
)

type Speaker interface {
	Speak(ctx context.Context, text string) error
}

type Classifier interface {
	Classify(ctx context.Context, command string) intent.Intent
}

type ScreenReader interface {
	CaptureAndExtract(ctx context.Context) (string, error)
}

type Answerer interface {
	Answer(ctx context.Context, question, screenText string) string
}

type Config struct {
	Listener   listen.Listener
	Speaker    Speaker
	Classifier Classifier
	Screen     ScreenReader
	Answerer   Answerer
	Mailer     actions.Mailer
	Calendar   actions.Calendar
	Form       prompt.Form
	Session    *session.Session
	MailFrom   string
	// Trigger, when set, gates every listen on a receive.
	Trigger <-chan struct{}
}

// Assistant runs the listen → classify → dispatch loop. Every step blocks;
// nothing overlaps.
type Assistant struct {
	cfg        Config
	dispatcher *Dispatcher
}

func New(cfg Config) *Assistant {
	if cfg.Session == nil {
		cfg.Session = session.New()
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = defaultMailFrom
	}

	a := &Assistant{cfg: cfg}

	d := NewDispatcher(cfg.Speaker)
	d.Register(intent.SendEmail, EmailFailed, a.sendEmail)
	d.Register(intent.CreateEvent, EventFailed, a.createEvent)
	d.Register(intent.LookAtScreen, ScreenFailed, a.lookAtScreen)
	d.Register(intent.AnswerQuestion, QuestionFailed, a.answerQuestion)
	d.Register(intent.Exit, "", a.exit)
	a.dispatcher = d

	return a
}

// Run loops until exit is spoken or sent over the trigger channel (by closing
// it), the input runs out or ctx is cancelled.
// It returns nil for the first two.
func (a *Assistant) Run(ctx context.Context) error {
	for {
		if a.cfg.Trigger != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case _, ok := <-a.cfg.Trigger:
				if !ok {
					if err := ctx.Err(); err != nil {
						return err
					}
					// remote exit behaves like the spoken one
					a.exit(ctx, "")
					return nil
				}
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		command, err := a.listen(ctx)
		if errors.Is(err, listen.ErrExhausted) {
			log.Info("Input exhausted, stopping")
			return nil
		}
		if command == "" {
			continue
		}

		if err := a.Handle(ctx, command); errors.Is(err, ErrExit) {
			return nil
		}
	}
}

// Handle classifies and dispatches a single command.
func (a *Assistant) Handle(ctx context.Context, command string) error {
	cycle := uuid.NewString()
	log.Info("Received command", "cycle", cycle, "command", command)

	in := a.cfg.Classifier.Classify(ctx, command)
	log.Info("Dispatching", "cycle", cycle, "intent", in)

	return a.dispatcher.Dispatch(ctx, in, command)
}

// listen speaks the failure itself; an empty command means nothing to do.
func (a *Assistant) listen(ctx context.Context) (string, error) {
	command, err := a.cfg.Listener.Listen(ctx)
	switch {
	case err == nil:
		return command, nil
	case errors.Is(err, listen.ErrExhausted):
		return "", err
	case errors.Is(err, listen.ErrNoSpeech):
		a.say(ctx, DidNotCatch)
	default:
		log.Error("Failed to listen", "err", err)
		a.say(ctx, RecognitionFailed)
	}
	return "", err
}

func (a *Assistant) say(ctx context.Context, text string) {
	log.Info("Speaking", "text", text)
	if err := a.cfg.Speaker.Speak(ctx, text); err != nil {
		log.Error("Failed to voice out", "err", err)
	}
}

func (a *Assistant) exit(ctx context.Context, _ string) error {
	a.say(ctx, Goodbye)
	return ErrExit
}

func (a *Assistant) lookAtScreen(ctx context.Context, _ string) error {
	a.say(ctx, LookingAtScreen)

	text, err := a.cfg.Screen.CaptureAndExtract(ctx)
	a.cfg.Session.SetExtractedText(text)
	if err != nil {
		return err
	}

	a.say(ctx, AskForQuestion)
	question, _ := a.listen(ctx)
	if question == "" {
		// the listen failure has already been spoken
		return nil
	}

	return a.answerQuestion(ctx, question)
}

func (a *Assistant) answerQuestion(ctx context.Context, question string) error {
	if at := a.cfg.Session.CapturedAt(); !at.IsZero() {
		log.Debug("Answering from screen context", "age", time.Since(at).Round(time.Second))
	} else {
		log.Debug("No screen context captured yet")
	}
	a.say(ctx, a.cfg.Answerer.Answer(ctx, question, a.cfg.Session.ExtractedText()))
	return nil
}

func (a *Assistant) sendEmail(ctx context.Context, _ string) error {
	log.Info("Preparing to send an email")

	to, err := a.cfg.Form.Ask("Recipient email", actions.ValidateAddress)
	if err != nil {
		return err
	}
	subject, err := a.cfg.Form.Ask("Subject", nil)
	if err != nil {
		return err
	}
	body, err := a.cfg.Form.Ask("Body", nil)
	if err != nil {
		return err
	}

	e := actions.Email{From: a.cfg.MailFrom, To: to, Subject: subject, Body: body}
	if err := a.cfg.Mailer.SendEmail(ctx, e); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	a.say(ctx, EmailSent)
	return nil
}

func (a *Assistant) createEvent(ctx context.Context, _ string) error {
	a.say(ctx, StartEvent)

	title, err := a.cfg.Form.Ask("Event title", notBlank)
	if err != nil {
		return err
	}
	date, err := a.cfg.Form.Ask("Date (YYYY-MM-DD)", actions.ValidateDate)
	if err != nil {
		return err
	}
	clock, err := a.cfg.Form.Ask("Time (HH:MM)", actions.ValidateClock)
	if err != nil {
		return err
	}

	ev, err := actions.NewEvent(title, date, clock)
	if err != nil {
		return err
	}
	if err := a.cfg.Calendar.CreateEvent(ctx, ev); err != nil {
		return fmt.Errorf("create event %q: %w", ev.Title, err)
	}

	a.say(ctx, EventCreated)
	return nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be empty")
	}
	return nil
}
