package ipc

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) (*Server, string, chan error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "jarvis.sock")
	srv, err := Listen(path)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background()) }()

	return srv, path, done
}

func TestTriggerReachesLoop(t *testing.T) {
	srv, path, _ := startServer(t)

	got := make(chan struct{})
	go func() {
		<-srv.Triggers()
		close(got)
	}()

	require.Eventually(t, func() bool {
		select {
		case <-got:
			return true
		default:
			_ = SendCommand(path, CmdTrigger)
			return false
		}
	}, 2*time.Second, 20*time.Millisecond)
}

func TestSilentClientDoesNotBlockServer(t *testing.T) {
	old := readTimeout
	readTimeout = 50 * time.Millisecond
	t.Cleanup(func() { readTimeout = old })

	srv, path, done := startServer(t)

	idle, err := net.Dial("unix", path)
	require.NoError(t, err)
	defer idle.Close()

	require.NoError(t, SendCommand(path, CmdExit))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("silent client blocked the server")
	}

	_, ok := <-srv.Triggers()
	assert.False(t, ok)
}

func TestExitClosesTriggers(t *testing.T) {
	srv, path, done := startServer(t)

	require.NoError(t, SendCommand(path, CmdExit))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}

	_, ok := <-srv.Triggers()
	assert.False(t, ok)
}

func TestServeStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jarvis.sock")
	srv, err := Listen(path)
	require.NoError(t, err)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestSendCommandWithoutServer(t *testing.T) {
	assert.Error(t, SendCommand(filepath.Join(t.TempDir(), "none.sock"), CmdTrigger))
}
