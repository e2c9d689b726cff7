package listen

import (
	"context"
	"errors"
	"io"

	"github.com/chzyer/readline"
)

// Console reads typed commands, which is handy without a microphone.
type Console struct {
	rl *readline.Instance
}

func NewConsole(prompt string) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return &Console{rl: rl}, nil
}

func (c *Console) Listen(_ context.Context) (string, error) {
	line, err := c.rl.Readline()
	if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
		return "", ErrExhausted
	}
	if err != nil {
		return "", errors.Join(ErrUnavailable, err)
	}

	text := normalizeCommand(line)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

func (c *Console) Close() error {
	return c.rl.Close()
}
