package news

import (
	"context"
	"fmt"
	"strings"
)

// Display fallbacks for fields the endpoint leaves empty.
const (
	NoTitle       = "No Title"
	NoURL         = "#"
	UnknownSource = "Unknown Source"
)

// Article is one headline from a single fetch cycle.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	SourceName  string `json:"source"`

	// untitled marks a Title that is the NoTitle fallback rather than endpoint text.
	untitled bool
}

// Text is the input used for entities, sentiment and summaries: the description, or the title when it is empty.
func (a Article) Text() string {
	if strings.TrimSpace(a.Description) != "" {
		return a.Description
	}
	return a.Title
}

// Source returns up to count articles in endpoint order.
type Source interface {
	Fetch(ctx context.Context, count int) ([]Article, error)
}

// APIError is a non-2xx answer from the headlines endpoint.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unexpected response"
	}
	if e.Code != "" {
		return fmt.Sprintf("news api %d (%s): %s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("news api %d: %s", e.StatusCode, msg)
}
