package app

import (
	"fmt"

	"github.com/finwire/newsdesk/internal/config"
	"github.com/finwire/newsdesk/internal/modules/chat"
	"github.com/finwire/newsdesk/internal/modules/dashboard"
	"github.com/finwire/newsdesk/internal/modules/entity"
	"github.com/finwire/newsdesk/internal/modules/llm"
	"github.com/finwire/newsdesk/internal/modules/news"
	"github.com/finwire/newsdesk/internal/modules/sentiment"
	"github.com/finwire/newsdesk/internal/modules/summary"
	"go.uber.org/zap"
)

// Services are the process-wide, stateless components shared by every session.
type Services struct {
	Dashboard *dashboard.Service
	Assistant *chat.Assistant
	LLM       llm.Info
}

// NewServices wires the news, NLP and model backends selected by cfg.
func NewServices(cfg *config.AppConfig, logger *zap.Logger) (*Services, error) {
	client, info, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}

	defaultLength, err := summary.ParseVerbosity(cfg.Summary.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("summary.default_length: %w", err)
	}

	source := news.NewClient(news.ClientOptions{
		Endpoint: cfg.News.Endpoint,
		APIKey:   cfg.News.APIKey,
		Category: cfg.News.Category,
		Language: cfg.News.Language,
		Timeout:  cfg.News.Timeout,
	})

	var recognizer entity.Recognizer = entity.NewProseRecognizer()
	if cfg.NLP.Entities == config.BackendRemote {
		recognizer = entity.NewRemoteRecognizer(cfg.NLP.EntitiesEndpoint, cfg.NLP.Timeout)
	}
	var analyzer sentiment.Analyzer = sentiment.NewVaderAnalyzer()
	if cfg.NLP.Sentiment == config.BackendRemote {
		analyzer = sentiment.NewRemoteAnalyzer(cfg.NLP.SentimentEndpoint, cfg.NLP.Timeout)
	}

	assistant := chat.NewAssistant(client, chat.AssistantOptions{
		Persona:       cfg.Chat.Persona,
		Greeting:      cfg.Chat.Greeting,
		HistoryWindow: cfg.Chat.HistoryWindow,
	}, logger)

	deps := dashboard.Deps{
		Fetcher:    news.NewFetcher(source, cfg.News.MinCount, cfg.News.MaxCount, logger),
		Extractor:  entity.NewExtractor(recognizer, logger),
		Scorer:     sentiment.NewScorer(analyzer, logger),
		Summarizer: summary.NewSummarizer(client, logger),
		Assistant:  assistant,
		Options: dashboard.Options{
			Lengths:       summary.Labels(),
			DefaultLength: defaultLength.String(),
			MinCount:      cfg.News.MinCount,
			MaxCount:      cfg.News.MaxCount,
			DefaultCount:  cfg.News.DefaultCount,
		},
		Logger: logger,
	}
	if cfg.News.FullText {
		deps.FullText = news.NewFullTextReader(cfg.News.FullTextTimeout, logger)
	}

	logger.Info("services ready",
		zap.String("provider", info.Provider),
		zap.String("model", info.Model),
		zap.String("entities", cfg.NLP.Entities),
		zap.String("sentiment", cfg.NLP.Sentiment),
		zap.Bool("full_text", cfg.News.FullText),
	)
	return &Services{Dashboard: dashboard.NewService(deps), Assistant: assistant, LLM: info}, nil
}
