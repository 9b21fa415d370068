package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	// Document store settings
	MongoURL string `envconfig:"MONGO_URL" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`

	// LLM provider settings
	OpenAIAPIKey     string `envconfig:"OPENAI_API_KEY" required:"true"`
	OpenAIBaseURL    string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	AITimeoutSeconds int    `envconfig:"AI_TIMEOUT_SECONDS" default:"30"`

	// External OAuth session exchange settings
	AuthProviderURL string `envconfig:"AUTH_PROVIDER_URL" required:"true"`
	SessionTTLHours int    `envconfig:"SESSION_TTL_HOURS" default:"168"`

	// Debug controls whether unclassified error details are exposed to clients.
	Debug bool `envconfig:"DEBUG" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
