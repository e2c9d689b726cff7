package reasoning

import (
	"context"
	"errors"
)

// ErrService marks any failure of the reasoning service: transport errors,
// timeouts, rate limits or a response without usable text.
var ErrService = errors.New("reasoning service failure")

type Request struct {
	System      string
	User        string
	MaxTokens   int64
	Temperature float64
}

// Completer sends one system+user exchange and returns the model's text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
