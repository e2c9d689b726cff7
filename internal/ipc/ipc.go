package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"os"
	"time"
)

const DefaultSocketPath = "/tmp/jarvis.sock"

// readTimeout bounds how long a silent client can hold the accept loop.
var readTimeout = 2 * time.Second

const (
	CmdTrigger = "trigger"
	CmdExit    = "exit"
)

type ControlMessage struct {
	Cmd string `json:"cmd"`
}

// Server turns control messages into a trigger channel for the listen loop.
// An exit message closes the channel.
type Server struct {
	path    string
	ln      net.Listener
	trigger chan struct{}
	exit    chan struct{}
}

func Listen(path string) (*Server, error) {
	if path == "" {
		path = DefaultSocketPath
	}
	os.Remove(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	return &Server{
		path:    path,
		ln:      ln,
		trigger: make(chan struct{}),
		exit:    make(chan struct{}),
	}, nil
}

// Serve blocks until ctx is done or the listener is closed.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()

	defer close(s.trigger)

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Warn("Failed to accept control connection", "err", err)
			continue
		}

		msg, err := readMessage(conn)
		if err != nil {
			log.Warn("Bad control message", "err", err)
			continue
		}

		switch msg.Cmd {
		case CmdTrigger:
			select {
			case s.trigger <- struct{}{}:
			default:
				log.Debug("Busy, trigger dropped")
			}
		case CmdExit:
			return nil
		default:
			log.Warn("Unknown command", "cmd", msg.Cmd)
		}
	}
}

// Triggers is closed when Serve returns.
func (s *Server) Triggers() <-chan struct{} { return s.trigger }

func (s *Server) Close() error {
	err := s.ln.Close()
	os.Remove(s.path)
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func readMessage(conn net.Conn) (ControlMessage, error) {
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return ControlMessage{}, err
	}

	var msg ControlMessage
	err := json.NewDecoder(conn).Decode(&msg)
	return msg, err
}

func SendCommand(path, cmd string) error {
	if path == "" {
		path = DefaultSocketPath
	}

	conn, err := net.Dial("unix", path)
	if err != nil {
		return err
	}
	defer conn.Close()

	return json.NewEncoder(conn).Encode(ControlMessage{Cmd: cmd})
}
