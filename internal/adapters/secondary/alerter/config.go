package alerter

type Config struct {
	// BotToken пустой - алерты шлёт основной бот
	BotToken        string `envconfig:"BOT_TOKEN"`
	ChatID          int64  `envconfig:"CHAT_ID"`
	MessageThreadID *int64 `envconfig:"MESSAGE_THREAD_ID"`
	Mention         string `envconfig:"MENTION"` // кого тегнуть в алерте, например @oncall
}

// Enabled алерты выключены, пока не задан чат
func (c *Config) Enabled() bool {
	return c != nil && c.ChatID != 0
}
