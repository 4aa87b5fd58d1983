package llm

import (
	"context"
	"errors"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/finwire/newsdesk/internal/config"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
)

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
)

// sdkClient talks to OpenAI or Anthropic through the jetify language-model abstraction.
type sdkClient struct {
	model jetapi.LanguageModel
	opts  options
}

func newSDKClient(providerType, apiKey, endpoint string, opts options) (*sdkClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("AI provider api key is empty")
	}
	endpoint = strings.TrimSpace(endpoint)

	if providerType == config.ProviderAnthropic {
		if opts.model == "" {
			opts.model = defaultAnthropicModel
		}
		reqOpts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint != "" {
			reqOpts = append(reqOpts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
		}
		client := anthropicclient.NewClient(reqOpts...)
		model := jetanthropic.NewLanguageModel(opts.model, jetanthropic.WithClient(client))
		return &sdkClient{model: model, opts: opts}, nil
	}

	if opts.model == "" {
		opts.model = defaultOpenAIModel
	}
	reqOpts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(endpoint); normalized != "" {
		reqOpts = append(reqOpts, openaioption.WithBaseURL(normalized))
	}
	client := openaiclient.NewClient(reqOpts...)
	model := jetopenai.NewLanguageModel(opts.model, jetopenai.WithClient(client))
	return &sdkClient{model: model, opts: opts}, nil
}

func (c *sdkClient) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := c.opts.withTimeout(ctx)
	defer cancel()

	genOpts := []jetai.GenerateOption{
		jetai.WithModel(c.model),
		jetai.WithTemperature(c.opts.temperatureFor(req)),
	}
	if c.opts.maxTokens > 0 {
		genOpts = append(genOpts, jetai.WithMaxOutputTokens(c.opts.maxTokens))
	}
	resp, err := jetai.GenerateText(ctx, buildPromptMessages(req), genOpts...)
	if err != nil {
		return "", err
	}
	return extractText(resp)
}

func buildPromptMessages(req Request) []jetapi.Message {
	messages := make([]jetapi.Message, 0, len(req.Messages)+1)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, &jetapi.SystemMessage{Content: req.System})
	}
	for _, m := range req.Messages {
		switch m.Role {
		case RoleAssistant:
			messages = append(messages, &jetapi.AssistantMessage{Content: jetapi.ContentFromText(m.Content)})
		default:
			messages = append(messages, &jetapi.UserMessage{Content: jetapi.ContentFromText(m.Content)})
		}
	}
	return messages
}

func extractText(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}

	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
