package telegram

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	ports "github.com/Npcprogramming/Taro2.0/internal/ports/telegram"
)

const (
	telegramAPIBaseURL  = "https://api.telegram.org/bot"
	telegramFileBaseURL = "https://api.telegram.org/file/bot"
	apiTimeout          = 30 * time.Second
)

// Client клиент для работы с Telegram Bot API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	fileBaseURL string
	token       string
	log         *slog.Logger
}

var _ ports.IClient = (*Client)(nil)

// NewClient создаёт новый клиент для Telegram Bot API
func NewClient(token string, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: apiTimeout,
		},
		baseURL:     telegramAPIBaseURL + token,
		fileBaseURL: telegramFileBaseURL + token,
		token:       token,
		log:         log,
	}
}

// SendMessageRequest запрос на отправку сообщения
type SendMessageRequest struct {
	ChatID          int64       `json:"chat_id"`
	Text            string      `json:"text"`
	ParseMode       string      `json:"parse_mode,omitempty"` // "HTML", "Markdown", "MarkdownV2"
	ReplyMarkup     interface{} `json:"reply_markup,omitempty"`
	MessageThreadID *int64      `json:"message_thread_id,omitempty"`
}

// MessageResult часть отправленного сообщения, которая нам нужна
type MessageResult struct {
	MessageID int64 `json:"message_id"`
}

// SendMessage отправляет текст и возвращает message_id
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, opts *domain.MessageOptions) (int64, error) {
	req := SendMessageRequest{
		ChatID: chatID,
		Text:   text,
	}
	if opts != nil {
		req.ParseMode = opts.ParseMode
		req.ReplyMarkup = replyMarkup(opts)
		req.MessageThreadID = opts.MessageThreadID
	}

	var result MessageResult
	if err := c.call(ctx, "sendMessage", req, &result); err != nil {
		c.log.Debug("failed to send message", "chat_id", chatID, "error", err)
		return 0, err
	}

	c.log.Debug("message sent successfully",
		"chat_id", chatID,
		"message_id", result.MessageID,
	)
	return result.MessageID, nil
}

// EditMessageTextRequest запрос на замену текста сообщения
type EditMessageTextRequest struct {
	ChatID      int64                 `json:"chat_id"`
	MessageID   int64                 `json:"message_id"`
	Text        string                `json:"text"`
	ReplyMarkup *inlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

func (c *Client) EditMessageText(ctx context.Context, chatID int64, messageID int64, text string, keyboard *domain.InlineKeyboard) error {
	req := EditMessageTextRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ReplyMarkup: toInlineMarkup(keyboard),
	}
	return c.call(ctx, "editMessageText", req, nil)
}

func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int64) error {
	req := struct {
		ChatID    int64 `json:"chat_id"`
		MessageID int64 `json:"message_id"`
	}{
		ChatID:    chatID,
		MessageID: messageID,
	}
	return c.call(ctx, "deleteMessage", req, nil)
}

// GetMe проверяет токен
func (c *Client) GetMe(ctx context.Context) error {
	var me struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	if err := c.call(ctx, "getMe", struct{}{}, &me); err != nil {
		return err
	}

	c.log.Info("bot info retrieved successfully", "bot_id", me.ID, "username", me.Username)
	return nil
}

// BotCommand представляет команду бота
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// SetMyCommands регистрирует команды бота в меню
func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	req := struct {
		Commands []BotCommand `json:"commands"`
	}{
		Commands: commands,
	}
	if err := c.call(ctx, "setMyCommands", req, nil); err != nil {
		return err
	}

	c.log.Info("bot commands registered", "count", len(commands))
	return nil
}

// SetWebhook регистрирует webhook; secret приходит обратно в X-Telegram-Bot-Api-Secret-Token
func (c *Client) SetWebhook(ctx context.Context, url string, secret string) error {
	req := struct {
		URL            string   `json:"url"`
		SecretToken    string   `json:"secret_token,omitempty"`
		AllowedUpdates []string `json:"allowed_updates"`
	}{
		URL:            url,
		SecretToken:    secret,
		AllowedUpdates: []string{"message", "callback_query"},
	}
	if err := c.call(ctx, "setWebhook", req, nil); err != nil {
		return err
	}

	c.log.Info("webhook set successfully", "url", url)
	return nil
}

// DeleteWebhook удаляет webhook (нужно вызывать перед запуском polling)
func (c *Client) DeleteWebhook(ctx context.Context) error {
	req := struct {
		DropPendingUpdates bool `json:"drop_pending_updates"`
	}{
		DropPendingUpdates: true,
	}
	if err := c.call(ctx, "deleteWebhook", req, nil); err != nil {
		return err
	}

	c.log.Info("webhook deleted successfully")
	return nil
}
