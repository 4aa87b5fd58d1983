package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func envOf(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenDefaultFileMissing(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := LoadWithEnv("", envOf(nil))

	assert.Equal(t, nil, err)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "business", cfg.News.Category)
	assert.Equal(t, 10, cfg.News.DefaultCount)
	assert.Equal(t, 5, cfg.News.MinCount)
	assert.Equal(t, 20, cfg.News.MaxCount)
	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "mistral", cfg.LLM.Model)
	assert.Equal(t, "Short", cfg.Summary.DefaultLength)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yml"), envOf(nil))
	assert.NotEqual(t, nil, err)
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
port: 9000
news:
  default_count: 12
  timeout: 5s
  full_text: true
llm:
  provider: OpenAI_Compatible
  endpoint: http://localhost:11434
  temperature: 0.2
chat:
  history_window: 6
nlp:
  sentiment: remote
  sentiment_endpoint: http://nlp:8000/sentiment
`)
	cfg, err := LoadWithEnv(path, envOf(map[string]string{
		EnvNewsAPIKey:   "news-key",
		EnvOpenAIAPIKey: "sk-test",
		EnvPort:         "9100",
		EnvLLMModel:     "llama3",
	}))

	assert.Equal(t, nil, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 12, cfg.News.DefaultCount)
	assert.Equal(t, 5*time.Second, cfg.News.Timeout)
	assert.Equal(t, true, cfg.News.FullText)
	assert.Equal(t, ProviderOpenAICompatible, cfg.LLM.Provider)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, 0.2, cfg.LLM.Temperature)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "news-key", cfg.News.APIKey)
	assert.Equal(t, 6, cfg.Chat.HistoryWindow)
	assert.Equal(t, BackendRemote, cfg.NLP.Sentiment)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "prot: 80\n")
	_, err := LoadWithEnv(path, envOf(nil))
	assert.NotEqual(t, nil, err)
}

func TestLoadValidatesRanges(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "default count above max", body: "news:\n  default_count: 50\n"},
		{name: "unknown provider", body: "llm:\n  provider: gemini\n"},
		{name: "redis store without url", body: "session:\n  store: redis\n"},
		{name: "remote entities without endpoint", body: "nlp:\n  entities: remote\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithEnv(writeConfig(t, tt.body), envOf(nil))
			assert.NotEqual(t, nil, err)
		})
	}
}

func TestCheckSecrets(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		body    string
		missing []string
	}{
		{
			name:    "ollama only needs the news key",
			env:     map[string]string{EnvNewsAPIKey: "k"},
			missing: nil,
		},
		{
			name:    "news key missing",
			env:     map[string]string{},
			missing: []string{EnvNewsAPIKey},
		},
		{
			name:    "hosted provider without key",
			env:     map[string]string{EnvNewsAPIKey: "k"},
			body:    "llm:\n  provider: anthropic\n",
			missing: []string{EnvLLMAPIKey},
		},
		{
			name:    "anthropic key fallback",
			env:     map[string]string{EnvNewsAPIKey: "k", EnvAnthropicAPIKey: "a"},
			body:    "llm:\n  provider: anthropic\n",
			missing: nil,
		},
		{
			name:    "both missing",
			env:     map[string]string{},
			body:    "llm:\n  provider: openai\n",
			missing: []string{EnvNewsAPIKey, EnvLLMAPIKey},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadWithEnv(writeConfig(t, tt.body+"\n"), envOf(tt.env))
			assert.Equal(t, nil, err)

			err = cfg.CheckSecrets()
			if tt.missing == nil {
				assert.Equal(t, nil, err)
				return
			}
			var secretErr *MissingSecretError
			assert.Equal(t, true, errors.As(err, &secretErr))
			assert.Equal(t, tt.missing, secretErr.Names)
		})
	}
}

func TestMissingSecretErrorMessage(t *testing.T) {
	err := &MissingSecretError{Names: []string{EnvNewsAPIKey}}
	assert.Equal(t, "Please set NEWSAPI_KEY in the environment or the .env file", err.Error())
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("NEWSDESK_TEST_A=from-file\nNEWSDESK_TEST_B=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NEWSDESK_TEST_A", "from-env")

	err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, nil, err)
	assert.Equal(t, "from-env", os.Getenv("NEWSDESK_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("NEWSDESK_TEST_B"))
	os.Unsetenv("NEWSDESK_TEST_B")
}
