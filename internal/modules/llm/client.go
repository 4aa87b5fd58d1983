// Package llm wraps the language-model providers behind one request/response interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finwire/newsdesk/internal/config"
)

// Role tags a message in a model request.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ErrEmptyResponse is returned when the provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from AI")

// Message is one conversational turn sent to the model.
type Message struct {
	Role    Role
	Content string
}

// Request is a single completion call. Temperature overrides the client default when set.
type Request struct {
	System      string
	Messages    []Message
	Temperature *float64
}

// Prompt builds a request holding a single user message.
func Prompt(text string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: text}}}
}

// Client sends a request to a language model and returns the completion text.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Info describes the configured backend.
type Info struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Endpoint string `json:"endpoint,omitempty"`
}

// options are shared by every provider implementation.
type options struct {
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

func (o options) temperatureFor(req Request) float64 {
	if req.Temperature != nil {
		return *req.Temperature
	}
	return o.temperature
}

func (o options) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}

// New builds the client selected by cfg.Provider.
func New(cfg config.LLMConfig) (Client, Info, error) {
	opts := options{
		model:       strings.TrimSpace(cfg.Model),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
	}
	info := Info{Provider: cfg.Provider, Endpoint: strings.TrimSpace(cfg.Endpoint)}

	switch cfg.Provider {
	case config.ProviderOllama:
		if opts.model == "" {
			opts.model = defaultOllamaModel
		}
		info.Model = opts.model
		info.Endpoint = normalizeCompatibleEndpoint(cfg.Endpoint, defaultOllamaEndpoint)
		return newCompatibleClient(info.Endpoint, cfg.APIKey, opts), info, nil
	case config.ProviderOpenAICompatible:
		if opts.model == "" {
			opts.model = defaultOpenAIModel
		}
		info.Model = opts.model
		info.Endpoint = normalizeCompatibleEndpoint(cfg.Endpoint, defaultOpenAIEndpoint)
		return newCompatibleClient(info.Endpoint, cfg.APIKey, opts), info, nil
	case config.ProviderOpenAI, config.ProviderAnthropic:
		client, err := newSDKClient(cfg.Provider, cfg.APIKey, cfg.Endpoint, opts)
		if err != nil {
			return nil, info, err
		}
		info.Model = client.opts.model
		return client, info, nil
	default:
		return nil, info, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}
