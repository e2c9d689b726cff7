package reasoning

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
)

type OpenAI struct {
	client  openai.Client
	model   openai.ChatModel
	timeout time.Duration
}

func NewOpenAI(client openai.Client, model string, timeout time.Duration) *OpenAI {
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}

	return &OpenAI{
		client:  client,
		model:   openai.ChatModel(model),
		timeout: timeout,
	}
}

func (o *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Model:       o.model,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(req.MaxTokens)
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %w", ErrService, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrService)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty message content", ErrService)
	}

	log.Debug("Completed", "model", o.model, "data", content)

	return content, nil
}
