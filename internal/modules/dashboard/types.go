package dashboard

import (
	"html/template"

	"github.com/finwire/newsdesk/internal/modules/chat"
	"github.com/finwire/newsdesk/internal/modules/sentiment"
	"github.com/finwire/newsdesk/internal/modules/summary"
)

// NoArticles is shown when a fetch cycle leaves nothing to display.
const NoArticles = "No articles found with the given criteria."

// FeedQuery holds the sidebar inputs.
type FeedQuery struct {
	Count     int
	Keyword   string
	Verbosity summary.Verbosity
}

type SentimentView struct {
	Label    string  `json:"label"`
	Display  string  `json:"display"`
	Color    string  `json:"color"`
	Polarity float64 `json:"polarity"`
}

func newSentimentView(r sentiment.Result) SentimentView {
	return SentimentView{
		Label:    string(r.Label),
		Display:  r.Display(),
		Color:    string(r.Color),
		Polarity: r.Polarity,
	}
}

// Item is one rendered article of the feed.
type Item struct {
	Index       int           `json:"index"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	Source      string        `json:"source"`
	Entities    []string      `json:"entities"`
	Sentiment   SentimentView `json:"sentiment"`
	Summary     string        `json:"summary"`
	SummaryHTML template.HTML `json:"summary_html"`
}

type FeedResult struct {
	Warning string `json:"warning,omitempty"`
	Message string `json:"message,omitempty"`
	Items   []Item `json:"items"`
}

type TurnView struct {
	Role string        `json:"role"`
	Text string        `json:"text"`
	HTML template.HTML `json:"html"`
}

type ChatResult struct {
	Reply     string        `json:"reply"`
	ReplyHTML template.HTML `json:"reply_html"`
	Turns     []TurnView    `json:"turns"`
}

type Options struct {
	Lengths       []string `json:"lengths"`
	DefaultLength string   `json:"default_length"`
	MinCount      int      `json:"min_count"`
	MaxCount      int      `json:"max_count"`
	DefaultCount  int      `json:"default_count"`
}

type chatRequest struct {
	Message string `json:"message" form:"message"`
}

func turnViews(turns []chat.Turn, render func(string) template.HTML) []TurnView {
	out := make([]TurnView, 0, len(turns))
	for _, t := range turns {
		out = append(out, TurnView{Role: string(t.Role), Text: t.Text, HTML: render(t.Text)})
	}
	return out
}
