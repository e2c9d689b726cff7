package actions

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	ClockLayout   = "15:04"
	EventDuration = time.Hour
)

type Event struct {
	Title string
	Start time.Time
	End   time.Time
}

// Calendar stores a fully formed event.
type Calendar interface {
	CreateEvent(ctx context.Context, ev Event) error
}

// NewEvent builds a one-hour UTC event from a YYYY-MM-DD date and HH:MM time.
func NewEvent(title, date, clock string) (Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Event{}, fmt.Errorf("event title is empty")
	}

	start, err := time.ParseInLocation(DateLayout+" "+ClockLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), time.UTC)
	if err != nil {
		return Event{}, fmt.Errorf("parse event start: %w", err)
	}

	return Event{
		Title: title,
		Start: start,
		End:   start.Add(EventDuration),
	}, nil
}

func ValidateDate(s string) error {
	_, err := time.Parse(DateLayout, strings.TrimSpace(s))
	return err
}

func ValidateClock(s string) error {
	_, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	return err
}

// LogCalendar only records the event; used when no calendar backend is set up.
type LogCalendar struct{}

func (LogCalendar) CreateEvent(_ context.Context, ev Event) error {
	log.Info("Event created", "title", ev.Title, "start", ev.Start.Format(time.RFC3339), "end", ev.End.Format(time.RFC3339))
	return nil
}
