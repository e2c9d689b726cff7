package intent

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"

	"jarvis/internal/reasoning"
)

const (
	classifyMaxTokens   = 5
	classifyTemperature = 0.0
)

var systemPrompt = fmt.Sprintf(`
You are the intent classifier of a voice assistant.
Your ONLY job is to map the user's command to exactly one action label.

LABELS:
- %s        (the user wants to write or send an email)
- %s      (the user wants to add a meeting, reminder or calendar event)
- %s              (the user wants to stop, quit or say goodbye)
- %s    (the user wants you to look at or read their screen)
- %s   (the user asks a question, including about what is on screen)

RULES:
1. Respond with ONE label from the list and nothing else.
2. No punctuation, no quotes, no explanations.
3. If none fits, respond with %s.
`, SendEmail, CreateEvent, Exit, LookAtScreen, AnswerQuestion, Unknown)

type Classifier struct {
	llm reasoning.Completer
}

func NewClassifier(llm reasoning.Completer) *Classifier {
	return &Classifier{llm: llm}
}

// Classify never fails: empty commands, service errors and out-of-set
// labels all resolve to Unknown.
func (c *Classifier) Classify(ctx context.Context, command string) Intent {
	command = strings.TrimSpace(command)
	if command == "" {
		return Unknown
	}

	raw, err := c.llm.Complete(ctx, reasoning.Request{
		System:      systemPrompt,
		User:        command,
		MaxTokens:   classifyMaxTokens,
		Temperature: classifyTemperature,
	})
	if err != nil {
		log.Warn("Failed to classify command", "command", command, "err", err)
		return Unknown
	}

	in := Parse(raw)
	if in == Unknown && !strings.EqualFold(strings.TrimSpace(raw), string(Unknown)) {
		log.Warn("Classifier answered outside the label set", "raw", raw)
	}

	log.Info("Intent interpreted", "intent", in)

	return in
}
