package commands

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/finwire/newsdesk/internal/modules/dashboard"
	"github.com/finwire/newsdesk/internal/modules/session"
	"github.com/finwire/newsdesk/internal/modules/summary"
	"github.com/finwire/newsdesk/internal/pkg/termrender"
	"github.com/go-playground/assert/v2"
)

var testOptions = dashboard.Options{
	Lengths:       summary.Labels(),
	DefaultLength: "Short",
	MinCount:      5,
	MaxCount:      20,
	DefaultCount:  10,
}

func plainRenderer(t *testing.T) *termrender.Renderer {
	t.Helper()
	md, err := termrender.New(termrender.Options{Width: 80, Style: "notty"})
	if err != nil {
		t.Fatal(err)
	}
	return md
}

func TestRootCommandWiring(t *testing.T) {
	assert.Equal(t, "newsdesk", rootCmd.Use)
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.Equal(t, true, names["serve"])
	assert.Equal(t, true, names["digest"])
	assert.Equal(t, true, names["chat"])
}

func TestDigestQuery(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		length  string
		want    dashboard.FeedQuery
		wantErr bool
	}{
		{name: "defaults", want: dashboard.FeedQuery{Count: 10, Verbosity: summary.Short}},
		{name: "explicit", count: 5, length: "very short", want: dashboard.FeedQuery{Count: 5, Verbosity: summary.VeryShort}},
		{name: "count too small", count: 4, wantErr: true},
		{name: "count too large", count: 21, wantErr: true},
		{name: "unknown length", length: "epic", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := digestQuery(testOptions, tt.count, "", tt.length)
			if tt.wantErr {
				assert.NotEqual(t, nil, err)
				return
			}
			assert.Equal(t, nil, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeFeeder struct {
	result dashboard.FeedResult
	got    dashboard.FeedQuery
}

func (f *fakeFeeder) Options() dashboard.Options { return testOptions }

func (f *fakeFeeder) Feed(_ context.Context, _ *session.Session, q dashboard.FeedQuery) dashboard.FeedResult {
	f.got = q
	return f.result
}

func TestPrintDigestItems(t *testing.T) {
	f := &fakeFeeder{result: dashboard.FeedResult{Items: []dashboard.Item{{
		Index:     1,
		Title:     "Acme beats estimates",
		URL:       "https://example.com/a",
		Source:    "Wire",
		Entities:  []string{"Acme", "Q3"},
		Sentiment: dashboard.SentimentView{Label: "Positive", Display: "Positive 😊", Color: "green"},
		Summary:   "Acme reported strong results.",
	}}}}
	var out bytes.Buffer
	q := dashboard.FeedQuery{Count: 5, Verbosity: summary.Medium}

	err := printDigest(context.Background(), &out, f, nil, q, plainRenderer(t))

	assert.Equal(t, nil, err)
	assert.Equal(t, q, f.got)
	text := out.String()
	assert.Equal(t, true, strings.Contains(text, "1. Acme beats estimates"))
	assert.Equal(t, true, strings.Contains(text, "Positive 😊"))
	assert.Equal(t, true, strings.Contains(text, "Acme reported strong results."))
	assert.Equal(t, true, strings.Contains(text, "https://example.com/a"))
}

func TestPrintDigestWarningAndEmpty(t *testing.T) {
	f := &fakeFeeder{result: dashboard.FeedResult{Warning: "Error fetching news: boom", Message: dashboard.NoArticles}}
	var out bytes.Buffer

	err := printDigest(context.Background(), &out, f, nil, dashboard.FeedQuery{Count: 5}, plainRenderer(t))

	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(out.String(), "Error fetching news: boom"))
	assert.Equal(t, true, strings.Contains(out.String(), dashboard.NoArticles))
}

type fakeChatter struct {
	greeting string
	sent     []string
	fail     error
}

func (f *fakeChatter) Transcript(context.Context, *session.Session) ([]dashboard.TurnView, error) {
	return []dashboard.TurnView{{Role: "assistant", Text: f.greeting}}, nil
}

func (f *fakeChatter) Chat(_ context.Context, _ *session.Session, msg string) (dashboard.ChatResult, error) {
	f.sent = append(f.sent, msg)
	if f.fail != nil {
		return dashboard.ChatResult{}, f.fail
	}
	return dashboard.ChatResult{Reply: "echo " + msg}, nil
}

func TestChatLoop(t *testing.T) {
	c := &fakeChatter{greeting: "Hello there"}
	in := strings.NewReader("what is a bond?\n\n  \nquit\nnever sent\n")
	var out bytes.Buffer

	err := chatLoop(context.Background(), in, &out, c, nil, plainRenderer(t))

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"what is a bond?"}, c.sent)
	assert.Equal(t, true, strings.Contains(out.String(), "Hello there"))
	assert.Equal(t, true, strings.Contains(out.String(), "echo what is a bond?"))
}

func TestChatLoopReportsFailureAndContinues(t *testing.T) {
	c := &fakeChatter{greeting: "Hi", fail: errors.New("model down")}
	in := strings.NewReader("first\nsecond\n")
	var out bytes.Buffer

	err := chatLoop(context.Background(), in, &out, c, nil, plainRenderer(t))

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"first", "second"}, c.sent)
	assert.Equal(t, true, strings.Contains(out.String(), "The assistant could not answer: model down"))
}
