package entity

import (
	"context"

	"github.com/jdkato/prose/v2"
)

// ProseRecognizer runs the prose tagger in-process. It reports PERSON and GPE spans.
type ProseRecognizer struct{}

func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

func (ProseRecognizer) Recognize(_ context.Context, text string) ([]Span, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}
	ents := doc.Entities()
	spans := make([]Span, 0, len(ents))
	for _, ent := range ents {
		spans = append(spans, Span{Text: ent.Text, Label: ent.Label})
	}
	return spans, nil
}
