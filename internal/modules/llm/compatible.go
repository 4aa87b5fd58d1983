package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	defaultOllamaModel    = "mistral"
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOpenAIEndpoint = "https://api.openai.com"
)

// compatibleClient speaks the OpenAI chat-completions wire format. Ollama serves the same route.
type compatibleClient struct {
	endpoint string
	apiKey   string
	opts     options
	http     *http.Client
}

func newCompatibleClient(endpoint, apiKey string, opts options) *compatibleClient {
	return &compatibleClient{
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(apiKey),
		opts:     opts,
		http:     &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *compatibleClient) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := c.opts.withTimeout(ctx)
	defer cancel()

	messages := make([]chatMessage, 0, len(req.Messages)+1)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		messages = append(messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	payload := map[string]interface{}{
		"model":       c.opts.model,
		"messages":    messages,
		"temperature": c.opts.temperatureFor(req),
		"stream":      false,
	}
	if c.opts.maxTokens > 0 {
		payload["max_tokens"] = c.opts.maxTokens
	}
	body, _ := json.Marshal(payload)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		if msg := gjson.GetBytes(respBody, "error.message").String(); msg != "" {
			return "", fmt.Errorf("openai-compatible error: %s", msg)
		}
		return "", fmt.Errorf("openai-compatible error: %s", strings.TrimSpace(string(respBody)))
	}
	if !gjson.ValidBytes(respBody) {
		return "", fmt.Errorf("openai-compatible error: invalid JSON response")
	}

	result := gjson.ParseBytes(respBody)
	if msg := strings.TrimSpace(result.Get("error.message").String()); msg != "" {
		return "", fmt.Errorf("openai-compatible error: %s", msg)
	}
	choices := result.Get("choices").Array()
	if len(choices) == 0 {
		if msg := strings.TrimSpace(result.Get("message").String()); msg != "" {
			return "", fmt.Errorf("openai-compatible error: %s", msg)
		}
		return "", ErrEmptyResponse
	}
	text := choices[0].Get("message.content").String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
