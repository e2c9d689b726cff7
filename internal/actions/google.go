package actions

import (
	"context"
	"fmt"
	"net/http"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const eventTimeLayout = "2006-01-02T15:04:05"

type Gmail struct {
	svc *gmail.Service
}

func NewGmail(ctx context.Context, client *http.Client) (*Gmail, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("gmail service: %w", err)
	}
	return &Gmail{svc: svc}, nil
}

func (g *Gmail) SendEmail(ctx context.Context, e Email) error {
	if err := ValidateAddress(e.To); err != nil {
		return err
	}

	_, err := g.svc.Users.Messages.Send("me", &gmail.Message{Raw: e.Raw()}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	return nil
}

type GoogleCalendar struct {
	svc        *calendar.Service
	calendarID string
}

func NewGoogleCalendar(ctx context.Context, client *http.Client, calendarID string) (*GoogleCalendar, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleCalendar{svc: svc, calendarID: calendarID}, nil
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, ev Event) error {
	_, err := g.svc.Events.Insert(g.calendarID, toCalendarEvent(ev)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("calendar insert: %w", err)
	}
	return nil
}

func toCalendarEvent(ev Event) *calendar.Event {
	return &calendar.Event{
		Summary: ev.Title,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.UTC().Format(eventTimeLayout),
			TimeZone: time.UTC.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.UTC().Format(eventTimeLayout),
			TimeZone: time.UTC.String(),
		},
	}
}
