package advisor

import "time"

const (
	defaultBaseURL = "https://api.langdock.com/openai/eu/v1"
	defaultModel   = "gpt-4o"
	defaultTimeout = 30 * time.Second
)

type Config struct {
	APIKey    string        `envconfig:"API_KEY"`
	BaseURL   string        `envconfig:"BASE_URL" default:"https://api.langdock.com/openai/eu/v1"`
	Model     string        `envconfig:"MODEL" default:"gpt-4o"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"30s"`
	MaxTokens int           `envconfig:"MAX_TOKENS" default:"700"`
}

// Enabled без ключа премиум получает текст о недоступности AI
func (c *Config) Enabled() bool {
	return c.APIKey != ""
}
