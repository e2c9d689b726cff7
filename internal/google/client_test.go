package google

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const credentialsJSON = `{
  "installed": {
    "client_id": "id.apps.googleusercontent.com",
    "client_secret": "secret",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["http://localhost"]
  }
}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewClient(t *testing.T) {
	creds := writeFile(t, "credentials.json", credentialsJSON)
	token := writeFile(t, "token.json", `{"access_token": "a", "refresh_token": "r", "token_type": "Bearer"}`)

	client, err := NewClient(context.Background(), creds, token, nil)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClientMissingToken(t *testing.T) {
	creds := writeFile(t, "credentials.json", credentialsJSON)

	_, err := NewClient(context.Background(), creds, filepath.Join(t.TempDir(), "nope.json"), nil)
	assert.ErrorContains(t, err, "open token")
}

func TestNewClientBadCredentials(t *testing.T) {
	creds := writeFile(t, "credentials.json", `{"web": 1}`)
	token := writeFile(t, "token.json", `{}`)

	_, err := NewClient(context.Background(), creds, token, nil)
	assert.ErrorContains(t, err, "parse credentials")
}
