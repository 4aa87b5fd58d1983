// Package news fetches business headlines and narrows them by keyword.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Client calls a NewsAPI-compatible top-headlines endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	category   string
	language   string
	httpClient *http.Client
}

type ClientOptions struct {
	Endpoint string
	APIKey   string
	Category string
	Language string
	Timeout  time.Duration
}

func NewClient(opts ClientOptions) *Client {
	return &Client{
		endpoint:   strings.TrimSpace(opts.Endpoint),
		apiKey:     strings.TrimSpace(opts.APIKey),
		category:   opts.Category,
		language:   opts.Language,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// Fetch performs a single GET. There is no retry.
func (c *Client) Fetch(ctx context.Context, count int) ([]Article, error) {
	if c.apiKey == "" {
		return nil, errors.New("news api key is empty")
	}

	u, err := neturl.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("news endpoint: %w", err)
	}
	q := u.Query()
	if c.category != "" {
		q.Set("category", c.category)
	}
	if c.language != "" {
		q.Set("language", c.language)
	}
	q.Set("pageSize", strconv.Itoa(count))
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("news read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       gjson.GetBytes(body, "code").String(),
			Message:    gjson.GetBytes(body, "message").String(),
		}
	}

	var raw headlinesResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("news decode: %w", err)
	}

	articles := make([]Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		articles = append(articles, item.toArticle())
	}
	return articles, nil
}

type headlinesResponse struct {
	Status   string            `json:"status"`
	Articles []headlineArticle `json:"articles"`
}

type headlineArticle struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Source      *struct {
		Name *string `json:"name"`
	} `json:"source"`
}

func (h headlineArticle) toArticle() Article {
	a := Article{
		Title:      valueOr(h.Title, NoTitle),
		URL:        valueOr(h.URL, NoURL),
		SourceName: UnknownSource,
		untitled:   h.Title == nil || strings.TrimSpace(*h.Title) == "",
	}
	if h.Description != nil {
		a.Description = *h.Description
	}
	if h.Source != nil {
		a.SourceName = valueOr(h.Source.Name, UnknownSource)
	}
	return a
}

func valueOr(v *string, fallback string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fallback
	}
	return *v
}

// redactKey keeps the api key out of transport errors, which embed the request URL.
func redactKey(err error, key string) error {
	var urlErr *neturl.Error
	if key == "" || !errors.As(err, &urlErr) {
		return err
	}
	urlErr.URL = strings.ReplaceAll(urlErr.URL, key, "REDACTED")
	return urlErr
}
