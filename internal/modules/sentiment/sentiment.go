// Package sentiment scores text polarity and maps it to a coarse label and display color.
package sentiment

import (
	"context"

	"go.uber.org/zap"
)

type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Gray  Color = "gray"
)

// Polarity thresholds. Values exactly on a threshold are Neutral.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// Result is the scored sentiment of one piece of text.
type Result struct {
	Label    Label   `json:"label"`
	Color    Color   `json:"color"`
	Polarity float64 `json:"polarity"`
}

// Emoji decorates the label for display.
func (r Result) Emoji() string {
	switch r.Label {
	case Positive:
		return "😊"
	case Negative:
		return "😞"
	default:
		return "😐"
	}
}

// Display returns the label with its emoji, e.g. "Positive 😊".
func (r Result) Display() string {
	return string(r.Label) + " " + r.Emoji()
}

// Analyzer returns a polarity in [-1, 1] for a piece of text.
type Analyzer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// Classify maps a polarity to its label and color.
func Classify(polarity float64) Result {
	switch {
	case polarity > PositiveThreshold:
		return Result{Label: Positive, Color: Green, Polarity: polarity}
	case polarity < NegativeThreshold:
		return Result{Label: Negative, Color: Red, Polarity: polarity}
	default:
		return Result{Label: Neutral, Color: Gray, Polarity: polarity}
	}
}

// Scorer classifies text with an Analyzer.
type Scorer struct {
	analyzer Analyzer
	logger   *zap.Logger
}

func NewScorer(analyzer Analyzer, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{analyzer: analyzer, logger: logger.Named("sentiment")}
}

// Score never fails: an analyzer error is logged and scored as Neutral.
func (s *Scorer) Score(ctx context.Context, text string) Result {
	polarity, err := s.analyzer.Polarity(ctx, text)
	if err != nil {
		s.logger.Warn("sentiment analysis failed", zap.Error(err))
		return Classify(0)
	}
	return Classify(polarity)
}
