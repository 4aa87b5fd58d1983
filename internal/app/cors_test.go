package app

import (
	"testing"

	"github.com/finwire/newsdesk/internal/config"
	"github.com/go-playground/assert/v2"
)

func TestMatchOriginPattern(t *testing.T) {
	cases := []struct {
		pattern, host string
		want          bool
	}{
		{"news.example.com", "news.example.com", true},
		{"*.example.com", "desk.example.com", true},
		{"*.example.com", "example.org", false},
		{"localhost:*", "localhost:8501", true},
		{"localhost:*", "otherhost:8501", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchOriginPattern(tc.pattern, tc.host))
	}
}

func TestExtractOriginHost(t *testing.T) {
	assert.Equal(t, "desk.example.com:443", extractOriginHost("https://desk.example.com:443"))
	assert.Equal(t, "not a url", extractOriginHost("not a url"))
}

func TestCorsConfigRestrictsOriginsOutsideDev(t *testing.T) {
	cfg := &config.AppConfig{Env: "production", AllowedOrigins: []string{"*.example.com"}}
	c := corsConfig(cfg)
	assert.Equal(t, true, c.AllowOriginFunc("https://desk.example.com"))
	assert.Equal(t, false, c.AllowOriginFunc("https://evil.test"))

	cfg.Env = "development"
	assert.Equal(t, true, corsConfig(cfg).AllowOriginFunc("https://evil.test"))
}

func TestHumanizeDuration(t *testing.T) {
	assert.Equal(t, "42s", humanizeDuration(42_500_000_000))
	assert.Equal(t, "5m0s", humanizeDuration(5*60_000_000_000+3_000_000_000))
}
