// Package dashboard drives one fetch cycle per page view and the chat panel for a session.
package dashboard

import (
	"context"
	"errors"
	"strings"

	"github.com/finwire/newsdesk/internal/modules/chat"
	"github.com/finwire/newsdesk/internal/modules/entity"
	"github.com/finwire/newsdesk/internal/modules/news"
	"github.com/finwire/newsdesk/internal/modules/sentiment"
	"github.com/finwire/newsdesk/internal/modules/session"
	"github.com/finwire/newsdesk/internal/modules/summary"
	"github.com/finwire/newsdesk/internal/pkg/markdown"
	"go.uber.org/zap"
)

// ErrEmptyMessage rejects a blank chat submission.
var ErrEmptyMessage = errors.New("message is empty")

// Fetcher matches news.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, count int) ([]news.Article, string)
}

// TextSource yields the summarizer input for an article.
type TextSource interface {
	TextFor(ctx context.Context, a news.Article) string
}

type Deps struct {
	Fetcher    Fetcher
	Extractor  *entity.Extractor
	Scorer     *sentiment.Scorer
	Summarizer *summary.Summarizer
	Assistant  *chat.Assistant
	// FullText is optional. When nil the description feeds the summarizer.
	FullText TextSource
	Options  Options
	Logger   *zap.Logger
}

type Service struct {
	deps   Deps
	logger *zap.Logger
}

func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{deps: deps, logger: logger.Named("dashboard")}
}

func (s *Service) Options() Options {
	return s.deps.Options
}

// Feed runs fetch, keyword filter and per-article enrichment sequentially, in feed order.
func (s *Service) Feed(ctx context.Context, sess *session.Session, q FeedQuery) FeedResult {
	articles, warning := s.deps.Fetcher.Fetch(ctx, q.Count)
	articles = news.FilterByKeyword(articles, q.Keyword)

	result := FeedResult{Warning: warning, Items: []Item{}}
	if len(articles) == 0 {
		result.Message = NoArticles
		return result
	}

	for i, a := range articles {
		if err := ctx.Err(); err != nil {
			s.logger.Debug("feed cancelled", zap.Int("done", i), zap.Error(err))
			break
		}
		result.Items = append(result.Items, s.enrich(ctx, sess, i+1, a, q.Verbosity))
	}
	if sess != nil {
		s.logger.Debug("feed ready",
			zap.String("sid", sess.ID),
			zap.Int("items", len(result.Items)),
			zap.Int("memo", sess.Summaries.Len(ctx)),
		)
	}
	return result
}

func (s *Service) enrich(ctx context.Context, sess *session.Session, index int, a news.Article, v summary.Verbosity) Item {
	text := a.Text()

	entities := s.deps.Extractor.Extract(ctx, text)

	input := text
	if s.deps.FullText != nil {
		input = s.deps.FullText.TextFor(ctx, a)
	}
	var cache summary.Cache
	if sess != nil {
		cache = sess.Summaries
	}
	sum := s.deps.Summarizer.Summarize(ctx, cache, input, v)

	mood := s.deps.Scorer.Score(ctx, text)

	return Item{
		Index:       index,
		Title:       a.Title,
		Description: text,
		URL:         a.URL,
		Source:      a.SourceName,
		Entities:    []string(entities),
		Sentiment:   newSentimentView(mood),
		Summary:     sum,
		SummaryHTML: markdown.ToHTML(sum),
	}
}

// Transcript returns the session's turns, seeding the greeting on first use.
func (s *Service) Transcript(ctx context.Context, sess *session.Session) ([]TurnView, error) {
	if err := s.deps.Assistant.Seed(ctx, sess.Transcript); err != nil {
		return nil, err
	}
	turns, err := sess.Transcript.Turns(ctx)
	if err != nil {
		return nil, err
	}
	return turnViews(turns, markdown.ToHTML), nil
}

// Chat answers one message. A session handles one message at a time; a concurrent call gets session.ErrBusy.
func (s *Service) Chat(ctx context.Context, sess *session.Session, message string) (ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return ChatResult{}, ErrEmptyMessage
	}
	if err := sess.TryBegin(); err != nil {
		return ChatResult{}, err
	}
	defer sess.End()

	if err := s.deps.Assistant.Seed(ctx, sess.Transcript); err != nil {
		return ChatResult{}, err
	}
	reply, err := s.deps.Assistant.Reply(ctx, sess.Transcript, message)
	if err != nil {
		return ChatResult{}, err
	}

	turns, err := sess.Transcript.Turns(ctx)
	if err != nil {
		return ChatResult{}, err
	}
	return ChatResult{
		Reply:     reply,
		ReplyHTML: markdown.ToHTML(reply),
		Turns:     turnViews(turns, markdown.ToHTML),
	}, nil
}
