package config

import "time"

// AppConfig holds runtime configuration loaded from YAML, .env and the process environment.
type AppConfig struct {
	Port           int
	Env            string
	LogDir         string
	LogLevel       string
	AllowedOrigins []string
	SessionSecret  string
	RedisURL       string
	News           NewsConfig
	LLM            LLMConfig
	Summary        SummaryConfig
	Chat           ChatConfig
	Session        SessionConfig
	NLP            NLPConfig
}

type NewsConfig struct {
	APIKey          string
	Endpoint        string
	Category        string
	Language        string
	DefaultCount    int
	MinCount        int
	MaxCount        int
	Timeout         time.Duration
	FullText        bool
	FullTextTimeout time.Duration
}

type LLMConfig struct {
	Provider    string // ollama | openai | openai-compatible | anthropic
	APIKey      string
	Endpoint    string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

type SummaryConfig struct {
	DefaultLength string
}

type ChatConfig struct {
	Persona       string
	Greeting      string
	HistoryWindow int // prior turns sent to the model; 0 = whole transcript
}

type SessionConfig struct {
	TTL           time.Duration
	Store         string // memory | redis
	SweepInterval time.Duration
}

type NLPConfig struct {
	Sentiment         string // local | remote
	SentimentEndpoint string
	Entities          string // local | remote
	EntitiesEndpoint  string
	Timeout           time.Duration
}

type rawAppConfig struct {
	Port           int              `yaml:"port"`
	Env            string           `yaml:"env"`
	LogDir         string           `yaml:"log_dir"`
	LogLevel       string           `yaml:"log_level"`
	AllowedOrigins []string         `yaml:"allowed_origins"`
	SessionSecret  string           `yaml:"session_secret"`
	Redis          rawRedisConfig   `yaml:"redis"`
	News           rawNewsConfig    `yaml:"news"`
	LLM            rawLLMConfig     `yaml:"llm"`
	Summary        rawSummaryConfig `yaml:"summary"`
	Chat           rawChatConfig    `yaml:"chat"`
	Session        rawSessionConfig `yaml:"session"`
	NLP            rawNLPConfig     `yaml:"nlp"`
}

type rawRedisConfig struct {
	URL string `yaml:"url"`
}

type rawNewsConfig struct {
	Endpoint        string        `yaml:"endpoint"`
	Category        string        `yaml:"category"`
	Language        string        `yaml:"language"`
	DefaultCount    int           `yaml:"default_count"`
	MinCount        int           `yaml:"min_count"`
	MaxCount        int           `yaml:"max_count"`
	Timeout         time.Duration `yaml:"timeout"`
	FullText        *bool         `yaml:"full_text"`
	FullTextTimeout time.Duration `yaml:"full_text_timeout"`
}

type rawLLMConfig struct {
	Provider    string        `yaml:"provider"`
	Endpoint    string        `yaml:"endpoint"`
	Model       string        `yaml:"model"`
	Temperature *float64      `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

type rawSummaryConfig struct {
	DefaultLength string `yaml:"default_length"`
}

type rawChatConfig struct {
	Persona       string `yaml:"persona"`
	Greeting      string `yaml:"greeting"`
	HistoryWindow *int   `yaml:"history_window"`
}

type rawSessionConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	Store         string        `yaml:"store"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type rawNLPConfig struct {
	Sentiment         string        `yaml:"sentiment"`
	SentimentEndpoint string        `yaml:"sentiment_endpoint"`
	Entities          string        `yaml:"entities"`
	EntitiesEndpoint  string        `yaml:"entities_endpoint"`
	Timeout           time.Duration `yaml:"timeout"`
}
