package sentiment

import (
	"context"

	"github.com/jonreiter/govader"
)

// VaderAnalyzer scores text locally with the VADER lexicon. The compound score is the polarity.
type VaderAnalyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderAnalyzer) Polarity(_ context.Context, text string) (float64, error) {
	if text == "" {
		return 0, nil
	}
	return v.analyzer.PolarityScores(text).Compound, nil
}
