// Package entity extracts distinct named entities of interest from article text.
package entity

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Entity labels kept by the extractor. GPE covers countries, cities and states.
const (
	LabelOrg     = "ORG"
	LabelGPE     = "GPE"
	LabelMoney   = "MONEY"
	LabelProduct = "PRODUCT"
	LabelPerson  = "PERSON"
)

var allowedLabels = map[string]struct{}{
	LabelOrg:     {},
	LabelGPE:     {},
	LabelMoney:   {},
	LabelProduct: {},
	LabelPerson:  {},
}

// Span is one entity mention reported by a recognizer.
type Span struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Recognizer runs named-entity recognition over text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Span, error)
}

// Set holds distinct entity strings. Callers must not rely on its order.
type Set []string

func (s Set) Contains(text string) bool {
	for _, v := range s {
		if v == text {
			return true
		}
	}
	return false
}

// Extractor filters recognizer output to the allowed labels and drops duplicate texts.
type Extractor struct {
	recognizer Recognizer
	logger     *zap.Logger
}

func NewExtractor(recognizer Recognizer, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{recognizer: recognizer, logger: logger.Named("entity")}
}

// Extract never fails: a recognizer error is logged and yields an empty set.
func (e *Extractor) Extract(ctx context.Context, text string) Set {
	if strings.TrimSpace(text) == "" {
		return Set{}
	}
	spans, err := e.recognizer.Recognize(ctx, text)
	if err != nil {
		e.logger.Warn("entity recognition failed", zap.Error(err))
		return Set{}
	}
	return Filter(spans)
}

// Filter keeps spans with an allowed label and dedupes them by exact text.
func Filter(spans []Span) Set {
	out := Set{}
	seen := make(map[string]struct{}, len(spans))
	for _, span := range spans {
		if _, ok := allowedLabels[strings.ToUpper(span.Label)]; !ok {
			continue
		}
		text := strings.TrimSpace(span.Text)
		if text == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
	}
	return out
}
