// Package google builds OAuth2 HTTP clients for the Gmail and Calendar APIs
// from an installed-app credentials file and a previously issued token.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	gmail "google.golang.org/api/gmail/v1"
)

var Scopes = []string{
	gmail.GmailSendScope,
	calendar.CalendarEventsScope,
}

// NewClient returns an authorised client. base, when set, carries the
// transport (e.g. the SOCKS proxy) used for both token refresh and API calls.
func NewClient(ctx context.Context, credentialsPath, tokenPath string, base *http.Client) (*http.Client, error) {
	creds, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	cfg, err := oauthgoogle.ConfigFromJSON(creds, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	tok, err := loadToken(tokenPath)
	if err != nil {
		return nil, err
	}

	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}

	return cfg.Client(ctx, tok), nil
}

func loadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open token: %w", err)
	}
	defer f.Close()

	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	return &tok, nil
}
