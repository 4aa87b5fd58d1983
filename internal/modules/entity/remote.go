package entity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// RemoteRecognizer posts {"text": ...} to an NER service. The reply is either
// {"ents":[{"text","label"}]} or a bare array of the same objects.
type RemoteRecognizer struct {
	endpoint string
	client   *http.Client
}

func NewRemoteRecognizer(endpoint string, timeout time.Duration) *RemoteRecognizer {
	return &RemoteRecognizer{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: timeout},
	}
}

func (r *RemoteRecognizer) Recognize(ctx context.Context, text string) ([]Span, error) {
	body, _ := json.Marshal(map[string]string{"text": text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("entity service error: %d %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if !gjson.ValidBytes(respBody) {
		return nil, fmt.Errorf("entity service returned invalid JSON")
	}

	list := gjson.ParseBytes(respBody)
	if !list.IsArray() {
		list = list.Get("ents")
	}
	var spans []Span
	list.ForEach(func(_, v gjson.Result) bool {
		spans = append(spans, Span{Text: v.Get("text").String(), Label: v.Get("label").String()})
		return true
	})
	return spans, nil
}
