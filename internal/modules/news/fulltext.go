package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

// FullTextReader downloads an article page and extracts its readable text.
type FullTextReader struct {
	httpClient *http.Client
	logger     *zap.Logger
}

func NewFullTextReader(timeout time.Duration, logger *zap.Logger) *FullTextReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FullTextReader{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("fulltext"),
	}
}

func (r *FullTextReader) Read(ctx context.Context, rawURL string) (string, error) {
	u, err := neturl.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("not an article url: %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; newsdesk)")
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("article page returned %d", resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, u)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", errors.New("no readable content")
	}
	return text, nil
}

// TextFor returns the page text of a, falling back to a.Text() when extraction fails.
func (r *FullTextReader) TextFor(ctx context.Context, a Article) string {
	text, err := r.Read(ctx, a.URL)
	if err != nil {
		r.logger.Debug("full text unavailable", zap.String("url", a.URL), zap.Error(err))
		return a.Text()
	}
	return text
}
