// Package summary turns article text into an LLM summary of a chosen length.
package summary

import (
	"context"
	"strings"

	"github.com/finwire/newsdesk/internal/modules/llm"
	"go.uber.org/zap"
)

// Unavailable replaces a summary the model could not produce.
const Unavailable = "Summary not available."

type Summarizer struct {
	client llm.Client
	logger *zap.Logger
}

func NewSummarizer(client llm.Client, logger *zap.Logger) *Summarizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{client: client, logger: logger.Named("summary")}
}

// Summarize returns the model output verbatim, or Unavailable on failure. Successful
// results are memoized in cache; failures are not, so a later view tries again.
func (s *Summarizer) Summarize(ctx context.Context, cache Cache, text string, v Verbosity) string {
	prompt := BuildPrompt(v, text)
	key := Key{Text: text, Verbosity: v}

	if cache != nil {
		cached, ok, err := cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("summary cache read failed", zap.Error(err))
		} else if ok {
			return cached
		}
	}

	out, err := s.client.Complete(ctx, llm.Prompt(prompt))
	if err != nil {
		s.logger.Warn("summarize failed", zap.String("length", v.String()), zap.Error(err))
		return Unavailable
	}
	if strings.TrimSpace(out) == "" {
		return Unavailable
	}

	if cache != nil {
		if err := cache.Put(ctx, key, out); err != nil {
			s.logger.Warn("summary cache write failed", zap.Error(err))
		}
	}
	return out
}
