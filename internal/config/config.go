package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	// Ingestion
	PollTimeoutSeconds int           `env:"POLL_TIMEOUT_SECONDS" envDefault:"30"`
	PollBatchLimit     int           `env:"POLL_BATCH_LIMIT" envDefault:"100"`
	RetryBackoff       time.Duration `env:"RETRY_BACKOFF" envDefault:"5s"`

	// Duplicate-gesture suppression window
	GuardTTL time.Duration `env:"GUARD_TTL" envDefault:"2s"`

	// Reminder scheduler
	SchedulerPeriod time.Duration `env:"SCHEDULER_PERIOD" envDefault:"5m"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel   string      `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// Storage
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/momenta.db"`

	// Defaults for first contact
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"ru"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
