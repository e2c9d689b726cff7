package qa

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"unicode/utf8"

	"jarvis/internal/reasoning"
)

const (
	FailedAnswer     = "Failed to answer the question."
	NoQuestion       = "I didn't hear a question."
	answerPrefix     = "The answer is: "
	DefaultMaxTokens = 200
	DefaultMaxChars  = 800
)

const systemPrompt = "You are an assistant that can answer questions based on both the extracted text " +
	"from the user's screen and your own knowledge. Use the extracted text to guide your answer " +
	"and prefer it when it is relevant; otherwise fall back to your general knowledge. " +
	"Answer in a few short plain sentences suitable for being read aloud."

type Answerer struct {
	llm       reasoning.Completer
	maxTokens int64
	maxChars  int
}

func NewAnswerer(llm reasoning.Completer) *Answerer {
	return &Answerer{
		llm:       llm,
		maxTokens: DefaultMaxTokens,
		maxChars:  DefaultMaxChars,
	}
}

// Answer always returns something speakable; service failures become
// FailedAnswer.
func (a *Answerer) Answer(ctx context.Context, question, screenText string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return NoQuestion
	}

	log.Info("Processing question about screen", "question", question, "context_chars", len(screenText))

	reply, err := a.llm.Complete(ctx, reasoning.Request{
		System:    systemPrompt,
		User:      buildPrompt(question, screenText),
		MaxTokens: a.maxTokens,
	})
	if err != nil {
		log.Error("Failed to answer question", "err", err)
		return FailedAnswer
	}

	return answerPrefix + truncate(strings.TrimSpace(reply), a.maxChars)
}

func buildPrompt(question, screenText string) string {
	if screenText == "" {
		return fmt.Sprintf("No text was extracted from the screen. Using your general knowledge, answer the question: '%s'", question)
	}
	return fmt.Sprintf("Based on the following extracted text: '%s', and any other relevant knowledge, answer the question: '%s'", screenText, question)
}

// truncate cuts s to at most limit runes, preferring the last word boundary.
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}

	r := []rune(s)[:limit]
	cut := string(r)
	if i := strings.LastIndexAny(cut, " \n\t"); i > len(cut)/2 {
		cut = cut[:i]
	}

	return strings.TrimRight(cut, " ,;:") + "..."
}
