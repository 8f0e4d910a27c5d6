package alerter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	ports "github.com/Npcprogramming/Taro2.0/internal/ports/telegram"
)

//согл, что чистота нарушена, но тут выбор в пользу делегирования ответственности другому адаптеру

// Client клиент для отправки алертов через Telegram
type Client struct {
	telegramClient  ports.IClient
	chatID          int64
	messageThreadID *int64
	mention         string
	log             *slog.Logger
}

// NewClient создаёт клиент алертов поверх уже собранного telegram клиента
func NewClient(cfg *Config, telegramClient ports.IClient, log *slog.Logger) *Client {
	if !cfg.Enabled() || telegramClient == nil {
		return nil
	}

	return &Client{
		telegramClient:  telegramClient,
		chatID:          cfg.ChatID,
		messageThreadID: cfg.MessageThreadID,
		mention:         cfg.Mention,
		log:             log,
	}
}

// SendAlert отправляет алерт в Telegram группу (или топик форума)
func (c *Client) SendAlert(ctx context.Context, message string) error {
	if c == nil || c.telegramClient == nil {
		return fmt.Errorf("alerter client is not initialized")
	}

	if c.mention != "" {
		message = message + "\n" + c.mention
	}

	_, err := c.telegramClient.SendMessage(ctx, c.chatID, message, &domain.MessageOptions{
		MessageThreadID: c.messageThreadID,
	})
	if err != nil {
		c.log.Warn("failed to send alert",
			"error", err,
			"chat_id", c.chatID,
			"message_thread_id", c.messageThreadID,
		)
		return fmt.Errorf("failed to send alert: %w", err)
	}

	c.log.Debug("alert sent successfully",
		"chat_id", c.chatID,
		"message_thread_id", c.messageThreadID,
	)

	return nil
}
