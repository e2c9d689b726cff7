package tts

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSpeaker struct{ log *[]string }

func (r recordingSpeaker) Speak(_ context.Context, text string) error {
	*r.log = append(*r.log, "speak:"+text)
	return nil
}

type recordingDucker struct {
	log *[]string
	err error
}

func (r recordingDucker) Duck(context.Context) error {
	*r.log = append(*r.log, "duck")
	return r.err
}

func (r recordingDucker) Restore(context.Context) error {
	*r.log = append(*r.log, "restore")
	return nil
}

func TestDuckingWrapsSpeech(t *testing.T) {
	var calls []string
	s := Ducking{Speaker: recordingSpeaker{&calls}, Ducker: recordingDucker{log: &calls}}

	require.NoError(t, s.Speak(context.Background(), "hello"))
	assert.Equal(t, []string{"duck", "speak:hello", "restore"}, calls)
}

func TestDuckingFailureStillSpeaks(t *testing.T) {
	var calls []string
	s := Ducking{Speaker: recordingSpeaker{&calls}, Ducker: recordingDucker{log: &calls, err: errors.New("no pactl")}}

	require.NoError(t, s.Speak(context.Background(), "hello"))
	assert.Contains(t, calls, "speak:hello")
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Console{W: &buf}.Speak(context.Background(), "Goodbye!"))
	assert.Equal(t, "jarvis: Goodbye!\n", buf.String())
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-espeak")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestClipRemovesTemporaryFile(t *testing.T) {
	var played string
	c := NewClip("en")
	c.Binary = writeScript(t, `while [ "$1" != "-w" ]; do shift; done; echo RIFF > "$2"`)
	c.play = func(_ context.Context, path string) error {
		played = path
		_, err := os.Stat(path)
		return err
	}

	require.NoError(t, c.Speak(context.Background(), "The answer is: 42"))
	require.NotEmpty(t, played)
	_, err := os.Stat(played)
	assert.True(t, os.IsNotExist(err))
}

func TestClipSynthFailure(t *testing.T) {
	c := NewClip("en")
	c.Binary = writeScript(t, "echo boom >&2; exit 3")
	c.play = func(context.Context, string) error { t.Fatal("must not play"); return nil }

	assert.Error(t, c.Speak(context.Background(), "hi"))
}
