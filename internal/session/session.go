// Package session holds the state that outlives a single command cycle.
package session

import (
	"sync"
	"time"
)

// Session owns the text extracted by the most recent screen capture.
// The capture handler is the only writer; answers read whatever is there,
// stale or not.
type Session struct {
	mu         sync.RWMutex
	extracted  string
	capturedAt time.Time
}

func New() *Session { return &Session{} }

func (s *Session) SetExtractedText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.extracted = text
	s.capturedAt = time.Now()
}

func (s *Session) ExtractedText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.extracted
}

// CapturedAt is the zero time until the first capture.
func (s *Session) CapturedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.capturedAt
}
