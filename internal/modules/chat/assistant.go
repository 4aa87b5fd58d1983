// Package chat holds the conversational assistant and its per-session transcript.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/finwire/newsdesk/internal/modules/llm"
	"go.uber.org/zap"
)

type AssistantOptions struct {
	Persona  string
	Greeting string
	// HistoryWindow caps the prior turns sent to the model. 0 sends the whole transcript.
	HistoryWindow int
}

// Assistant answers a user turn given the prior transcript.
type Assistant struct {
	client llm.Client
	opts   AssistantOptions
	logger *zap.Logger
}

func NewAssistant(client llm.Client, opts AssistantOptions, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{client: client, opts: opts, logger: logger.Named("chat")}
}

// Seed writes the greeting into an empty transcript. Concurrent calls write it once.
func (a *Assistant) Seed(ctx context.Context, t Transcript) error {
	if a.opts.Greeting == "" {
		return nil
	}
	_, err := t.AppendFirst(ctx, Turn{Role: RoleAssistant, Text: a.opts.Greeting})
	return err
}

// Reply sends persona, prior turns and the new utterance to the model in one call, then appends
// the human turn and the reply to t in that order. A blank completion is appended as is; any
// other model error leaves t untouched.
func (a *Assistant) Reply(ctx context.Context, t Transcript, utterance string) (string, error) {
	history, err := t.Turns(ctx)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}

	req := a.buildRequest(history, utterance)
	reply, err := a.client.Complete(ctx, req)
	if errors.Is(err, llm.ErrEmptyResponse) {
		a.logger.Warn("chat completion was empty", zap.Int("history", len(history)))
		reply, err = "", nil
	}
	if err != nil {
		a.logger.Warn("chat completion failed", zap.Int("history", len(history)), zap.Error(err))
		return "", err
	}

	if err := t.Append(ctx,
		Turn{Role: RoleHuman, Text: utterance},
		Turn{Role: RoleAssistant, Text: reply},
	); err != nil {
		return "", fmt.Errorf("append transcript: %w", err)
	}
	return reply, nil
}

func (a *Assistant) buildRequest(history []Turn, utterance string) llm.Request {
	if w := a.opts.HistoryWindow; w > 0 && len(history) > w {
		history = history[len(history)-w:]
	}

	req := llm.Request{
		System:   a.opts.Persona,
		Messages: make([]llm.Message, 0, len(history)+1),
	}
	for _, turn := range history {
		switch turn.Role {
		case RoleHuman:
			req.Messages = append(req.Messages, llm.Message{Role: llm.RoleUser, Content: turn.Text})
		case RoleAssistant:
			req.Messages = append(req.Messages, llm.Message{Role: llm.RoleAssistant, Content: turn.Text})
		}
	}
	req.Messages = append(req.Messages, llm.Message{Role: llm.RoleUser, Content: utterance})
	return req
}
