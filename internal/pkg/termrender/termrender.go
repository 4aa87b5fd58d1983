// Package termrender renders markdown and sentiment badges for terminal output.
package termrender

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Options configures the markdown renderer.
type Options struct {
	Width int
	Style string
}

func DefaultOptions() Options {
	return Options{Width: TerminalWidth(), Style: "dark"}
}

// Renderer wraps a glamour renderer. Rendering falls back to the raw text on error.
type Renderer struct {
	tr *glamour.TermRenderer
}

func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Style == "" {
		opts.Style = "dark"
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithEmoji(),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{tr: tr}, nil
}

func (r *Renderer) Markdown(text string) string {
	out, err := r.tr.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

var (
	colorGreen = lipgloss.Color("#9ece6a")
	colorRed   = lipgloss.Color("#f7768e")
	colorGray  = lipgloss.Color("#565f89")
	colorBlue  = lipgloss.Color("#7aa2f7")
	colorText  = lipgloss.Color("#c0caf5")

	titleStyle   = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(colorGray)
	warnStyle    = lipgloss.NewStyle().Foreground(colorRed)
	entityStyle  = lipgloss.NewStyle().Foreground(colorText).Background(lipgloss.Color("#1e3a8a")).Padding(0, 1)
	userStyle    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	speakerStyle = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
)

// Sentiment colors text by the display color name used on the dashboard.
func Sentiment(text, color string) string {
	c := colorGray
	switch color {
	case "green":
		c = colorGreen
	case "red":
		c = colorRed
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(text)
}

func Title(text string) string   { return titleStyle.Render(text) }
func Dim(text string) string     { return dimStyle.Render(text) }
func Warning(text string) string { return warnStyle.Render(text) }
func You(text string) string     { return userStyle.Render(text) }
func Speaker(text string) string { return speakerStyle.Render(text) }

// Entities renders each entity as a badge.
func Entities(entities []string) string {
	badges := make([]string, 0, len(entities))
	for _, e := range entities {
		badges = append(badges, entityStyle.Render(e))
	}
	return strings.Join(badges, " ")
}

// TerminalWidth returns the stdout width, or 80 when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
