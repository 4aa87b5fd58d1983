package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads .env style files into the process environment. Variables that are
// already set win, and missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %q: %w", path, err)
		}
	}
	return nil
}

// Load reads the YAML config at configPath and applies environment overrides.
// A missing file is only an error when the path was given explicitly.
func Load(configPath string) (*AppConfig, error) {
	return LoadWithEnv(configPath, os.LookupEnv)
}

// LoadWithEnv is Load with a custom environment lookup.
func LoadWithEnv(configPath string, lookup LookupFunc) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		raw, err := decodeRaw(content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		applyRawAppConfig(&cfg, raw)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnv(&cfg, lookup)
	normalize(&cfg)
	if err := cfg.validateRanges(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

func decodeRaw(content []byte) (rawAppConfig, error) {
	raw := rawAppConfig{}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return raw, err
	}
	return raw, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:     defaultPort,
		Env:      defaultEnv,
		LogLevel: defaultLogLevel,
		News: NewsConfig{
			Endpoint:        defaultNewsEndpoint,
			Category:        defaultNewsCategory,
			Language:        defaultNewsLanguage,
			DefaultCount:    defaultNewsCount,
			MinCount:        defaultNewsMinCount,
			MaxCount:        defaultNewsMaxCount,
			Timeout:         defaultNewsTimeout,
			FullTextTimeout: defaultFullTextTimeout,
		},
		LLM: LLMConfig{
			Provider:    defaultLLMProvider,
			Model:       defaultLLMModel,
			Temperature: defaultLLMTemperature,
			MaxTokens:   defaultLLMMaxTokens,
			Timeout:     defaultLLMTimeout,
		},
		Summary: SummaryConfig{DefaultLength: defaultSummaryLength},
		Chat: ChatConfig{
			Persona:       defaultPersona,
			Greeting:      defaultGreeting,
			HistoryWindow: defaultHistoryWindow,
		},
		Session: SessionConfig{
			TTL:           defaultSessionTTL,
			Store:         defaultSessionStore,
			SweepInterval: defaultSweepInterval,
		},
		NLP: NLPConfig{
			Sentiment: defaultSentimentBackend,
			Entities:  defaultEntitiesBackend,
			Timeout:   defaultNLPTimeout,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if raw.AllowedOrigins != nil {
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	}
	if v := strings.TrimSpace(raw.SessionSecret); v != "" {
		cfg.SessionSecret = v
	}
	if v := strings.TrimSpace(raw.Redis.URL); v != "" {
		cfg.RedisURL = v
	}

	news := &cfg.News
	if v := strings.TrimSpace(raw.News.Endpoint); v != "" {
		news.Endpoint = v
	}
	if v := strings.TrimSpace(raw.News.Category); v != "" {
		news.Category = v
	}
	if v := strings.TrimSpace(raw.News.Language); v != "" {
		news.Language = v
	}
	if raw.News.DefaultCount != 0 {
		news.DefaultCount = raw.News.DefaultCount
	}
	if raw.News.MinCount != 0 {
		news.MinCount = raw.News.MinCount
	}
	if raw.News.MaxCount != 0 {
		news.MaxCount = raw.News.MaxCount
	}
	if raw.News.Timeout != 0 {
		news.Timeout = raw.News.Timeout
	}
	if raw.News.FullText != nil {
		news.FullText = *raw.News.FullText
	}
	if raw.News.FullTextTimeout != 0 {
		news.FullTextTimeout = raw.News.FullTextTimeout
	}

	llm := &cfg.LLM
	if v := strings.TrimSpace(raw.LLM.Provider); v != "" {
		llm.Provider = v
	}
	if v := strings.TrimSpace(raw.LLM.Endpoint); v != "" {
		llm.Endpoint = v
	}
	if v := strings.TrimSpace(raw.LLM.Model); v != "" {
		llm.Model = v
	}
	if raw.LLM.Temperature != nil {
		llm.Temperature = *raw.LLM.Temperature
	}
	if raw.LLM.MaxTokens != 0 {
		llm.MaxTokens = raw.LLM.MaxTokens
	}
	if raw.LLM.Timeout != 0 {
		llm.Timeout = raw.LLM.Timeout
	}

	if v := strings.TrimSpace(raw.Summary.DefaultLength); v != "" {
		cfg.Summary.DefaultLength = v
	}

	if v := strings.TrimSpace(raw.Chat.Persona); v != "" {
		cfg.Chat.Persona = v
	}
	if v := strings.TrimSpace(raw.Chat.Greeting); v != "" {
		cfg.Chat.Greeting = v
	}
	if raw.Chat.HistoryWindow != nil {
		cfg.Chat.HistoryWindow = *raw.Chat.HistoryWindow
	}

	if raw.Session.TTL != 0 {
		cfg.Session.TTL = raw.Session.TTL
	}
	if v := strings.TrimSpace(raw.Session.Store); v != "" {
		cfg.Session.Store = v
	}
	if raw.Session.SweepInterval != 0 {
		cfg.Session.SweepInterval = raw.Session.SweepInterval
	}

	nlp := &cfg.NLP
	if v := strings.TrimSpace(raw.NLP.Sentiment); v != "" {
		nlp.Sentiment = v
	}
	if v := strings.TrimSpace(raw.NLP.SentimentEndpoint); v != "" {
		nlp.SentimentEndpoint = v
	}
	if v := strings.TrimSpace(raw.NLP.Entities); v != "" {
		nlp.Entities = v
	}
	if v := strings.TrimSpace(raw.NLP.EntitiesEndpoint); v != "" {
		nlp.EntitiesEndpoint = v
	}
	if raw.NLP.Timeout != 0 {
		nlp.Timeout = raw.NLP.Timeout
	}
}

func applyEnv(cfg *AppConfig, lookup LookupFunc) {
	if lookup == nil {
		return
	}
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	cfg.News.APIKey = get(EnvNewsAPIKey)
	if v := get(EnvLLMProvider); v != "" {
		cfg.LLM.Provider = v
	}
	if v := get(EnvLLMModel); v != "" {
		cfg.LLM.Model = v
	}
	if v := get(EnvLLMEndpoint); v != "" {
		cfg.LLM.Endpoint = v
	}
	cfg.LLM.APIKey = get(EnvLLMAPIKey)
	if cfg.LLM.APIKey == "" {
		switch normalizeProvider(cfg.LLM.Provider) {
		case ProviderAnthropic:
			cfg.LLM.APIKey = get(EnvAnthropicAPIKey)
		case ProviderOpenAI, ProviderOpenAICompatible:
			cfg.LLM.APIKey = get(EnvOpenAIAPIKey)
		}
	}
	if v := get(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := get(EnvEnv); v != "" {
		cfg.Env = v
	}
	if v := get(EnvRedisURL); v != "" {
		cfg.RedisURL = v
	}
}

func normalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LLM.Provider = normalizeProvider(cfg.LLM.Provider)
	cfg.Session.Store = strings.ToLower(strings.TrimSpace(cfg.Session.Store))
	cfg.NLP.Sentiment = strings.ToLower(strings.TrimSpace(cfg.NLP.Sentiment))
	cfg.NLP.Entities = strings.ToLower(strings.TrimSpace(cfg.NLP.Entities))
	if cfg.Chat.HistoryWindow < 0 {
		cfg.Chat.HistoryWindow = 0
	}
}

func (c *AppConfig) validateRanges() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	n := c.News
	if n.MinCount < 1 || n.MaxCount < n.MinCount {
		return fmt.Errorf("news count bounds [%d, %d] are not a valid range", n.MinCount, n.MaxCount)
	}
	if n.DefaultCount < n.MinCount || n.DefaultCount > n.MaxCount {
		return fmt.Errorf("news.default_count %d outside [%d, %d]", n.DefaultCount, n.MinCount, n.MaxCount)
	}
	switch c.LLM.Provider {
	case ProviderOllama, ProviderOpenAI, ProviderOpenAICompatible, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}
	switch c.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("session.store is redis but redis.url is empty")
		}
	default:
		return fmt.Errorf("unknown session.store %q", c.Session.Store)
	}
	if err := validateBackend("nlp.sentiment", c.NLP.Sentiment, c.NLP.SentimentEndpoint); err != nil {
		return err
	}
	return validateBackend("nlp.entities", c.NLP.Entities, c.NLP.EntitiesEndpoint)
}

func validateBackend(name, kind, endpoint string) error {
	switch kind {
	case BackendLocal:
		return nil
	case BackendRemote:
		if strings.TrimSpace(endpoint) == "" {
			return fmt.Errorf("%s is remote but %s_endpoint is empty", name, name)
		}
		return nil
	default:
		return fmt.Errorf("unknown %s backend %q", name, kind)
	}
}

// CheckSecrets reports the secrets that must be present before any fetch or model call.
func (c *AppConfig) CheckSecrets() error {
	var missing []string
	if c.News.APIKey == "" {
		missing = append(missing, EnvNewsAPIKey)
	}
	if c.LLM.RequiresAPIKey() && c.LLM.APIKey == "" {
		missing = append(missing, EnvLLMAPIKey)
	}
	if len(missing) > 0 {
		return &MissingSecretError{Names: missing}
	}
	return nil
}

// RequiresAPIKey reports whether the provider is hosted and needs a key.
func (c LLMConfig) RequiresAPIKey() bool {
	return c.Provider != ProviderOllama
}

func (c *AppConfig) IsDev() bool {
	return c.Env == "development"
}

// LogDirPath returns the resolved log directory.
func (c *AppConfig) LogDirPath() string {
	if c == nil {
		return ResolveRuntimePath("", "logs")
	}
	return ResolveRuntimePath(c.LogDir, "logs")
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func normalizeProvider(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	if t == "openaicompatible" {
		return ProviderOpenAICompatible
	}
	return t
}
