package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8501
	defaultEnv        = "production"
	defaultLogLevel   = "info"

	defaultNewsEndpoint     = "https://newsapi.org/v2/top-headlines"
	defaultNewsCategory     = "business"
	defaultNewsLanguage     = "en"
	defaultNewsCount        = 10
	defaultNewsMinCount     = 5
	defaultNewsMaxCount     = 20
	defaultNewsTimeout      = 15 * time.Second
	defaultFullTextTimeout  = 10 * time.Second
	defaultLLMProvider      = ProviderOllama
	defaultLLMModel         = "mistral"
	defaultLLMTemperature   = 0.7
	defaultLLMMaxTokens     = 1024
	defaultLLMTimeout       = 2 * time.Minute
	defaultSummaryLength    = "Short"
	defaultHistoryWindow    = 20
	defaultSessionTTL       = 2 * time.Hour
	defaultSweepInterval    = 5 * time.Minute
	defaultSessionStore     = StoreMemory
	defaultSentimentBackend = BackendLocal
	defaultEntitiesBackend  = BackendLocal
	defaultNLPTimeout       = 10 * time.Second

	defaultPersona  = "You are a helpful financial assistant. Answer the user's questions based on your knowledge."
	defaultGreeting = "Hello! I'm your financial assistant. Ask me anything about markets, companies or the economy."
)

// Environment variables read on top of the YAML file.
const (
	EnvNewsAPIKey      = "NEWSAPI_KEY"
	EnvLLMAPIKey       = "LLM_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvPort            = "NEWSDESK_PORT"
	EnvEnv             = "NEWSDESK_ENV"
	EnvRedisURL        = "NEWSDESK_REDIS_URL"
	EnvLLMProvider     = "LLM_PROVIDER"
	EnvLLMModel        = "LLM_MODEL"
	EnvLLMEndpoint     = "LLM_ENDPOINT"
)

// LLM provider types.
const (
	ProviderOllama           = "ollama"
	ProviderOpenAI           = "openai"
	ProviderOpenAICompatible = "openai-compatible"
	ProviderAnthropic        = "anthropic"
)

// Session store kinds.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// NLP backend kinds.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)
