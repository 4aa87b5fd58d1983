package sentiment

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

// RemoteAnalyzer posts {"text": ...} to a scoring service and reads sentiment_score from the reply.
type RemoteAnalyzer struct {
	endpoint string
	client   *http.Client
}

func NewRemoteAnalyzer(endpoint string, timeout time.Duration) *RemoteAnalyzer {
	return &RemoteAnalyzer{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: timeout},
	}
}

func (r *RemoteAnalyzer) Polarity(ctx context.Context, text string) (float64, error) {
	body, _ := json.Marshal(map[string]string{"text": text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return 0, fmt.Errorf("sentiment service error: %d %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	score := gjson.GetBytes(respBody, "sentiment_score")
	if !score.Exists() {
		score = gjson.GetBytes(respBody, "polarity")
	}
	if score.Type != gjson.Number {
		return 0, fmt.Errorf("sentiment service returned no score")
	}
	polarity := score.Float()
	if polarity > 1 {
		polarity = 1
	} else if polarity < -1 {
		polarity = -1
	}
	return polarity, nil
}
