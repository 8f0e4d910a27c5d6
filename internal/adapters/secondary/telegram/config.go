package telegram

import (
	"strconv"
	"strings"
)

type Config struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`
	// строкой, чтобы пустое значение на хостинге не ломало запуск
	UseWebhook     string `envconfig:"USE_WEBHOOK"`
	WebhookURL     string `envconfig:"WEBHOOK_URL"`
	WebhookSecret  string `envconfig:"WEBHOOK_SECRET"`
	PollingTimeout int    `envconfig:"POLLING_TIMEOUT" default:"30"`
}

// IsWebhookEnabled всё, что не разбирается как true, считается polling
func (c *Config) IsWebhookEnabled() bool {
	enabled, err := strconv.ParseBool(strings.TrimSpace(c.UseWebhook))
	return err == nil && enabled
}
