// Package prompt asks the user for the structured fields an action needs.
package prompt

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// Form asks a single question and returns the trimmed answer.
type Form interface {
	Ask(label string, validate func(string) error) (string, error)
}

type Terminal struct{}

func (Terminal) Ask(label string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}

	out, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", label, err)
	}

	return strings.TrimSpace(out), nil
}

// Scripted replays fixed answers in order.
type Scripted struct {
	Answers []string
	asked   []string
}

func (s *Scripted) Ask(label string, validate func(string) error) (string, error) {
	s.asked = append(s.asked, label)
	if len(s.Answers) == 0 {
		return "", fmt.Errorf("prompt %q: no scripted answer left", label)
	}

	out := strings.TrimSpace(s.Answers[0])
	s.Answers = s.Answers[1:]

	if validate != nil {
		if err := validate(out); err != nil {
			return "", fmt.Errorf("prompt %q: %w", label, err)
		}
	}

	return out, nil
}

// Asked returns the labels asked so far.
func (s *Scripted) Asked() []string { return s.asked }
