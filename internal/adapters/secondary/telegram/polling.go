package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

const (
	defaultPollingTimeout = 30
	pollRetryDelay        = 5 * time.Second
)

// UpdateHandler функция для обработки обновлений от Telegram
type UpdateHandler func(ctx context.Context, update *domain.Update) error

// Poller реализует long polling для получения обновлений от Telegram
type Poller struct {
	client       *Client
	timeout      int
	handler      UpdateHandler
	lastUpdateID int64
	log          *slog.Logger
	httpClient   *http.Client // отдельный HTTP клиент с увеличенным таймаутом для polling
}

func NewPoller(client *Client, config *Config, handler UpdateHandler, log *slog.Logger) *Poller {
	pollingTimeout := config.PollingTimeout
	if pollingTimeout <= 0 {
		pollingTimeout = defaultPollingTimeout
	}
	// HTTP таймаут = polling timeout + запас (10 секунд)
	httpTimeout := time.Duration(pollingTimeout+10) * time.Second

	return &Poller{
		client:  client,
		timeout: pollingTimeout,
		handler: handler,
		log:     log,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// Start крутит getUpdates до отмены контекста. Обновления обрабатываются по очереди.
func (p *Poller) Start(ctx context.Context) error {
	p.log.Info("starting telegram polling", "timeout", p.timeout)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("polling stopped")
			return ctx.Err()
		default:
		}

		updates, err := p.getUpdates(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				continue
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict {
				// другой экземпляр бота или активный webhook
				p.log.Warn("telegram API conflict - another bot instance or webhook is active",
					"description", apiErr.Description)
			} else {
				p.log.Error("failed to get updates", "error", err)
			}
			select {
			case <-ctx.Done():
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for i := range updates {
			update := &updates[i]
			if update.UpdateID >= p.lastUpdateID {
				p.lastUpdateID = update.UpdateID + 1
			}

			if err := p.handler(ctx, update); err != nil {
				p.log.Error("failed to handle update",
					"error", err,
					"update_id", update.UpdateID,
				)
			}
		}
	}
}

// getUpdates получает обновления от Telegram API
func (p *Poller) getUpdates(ctx context.Context) ([]domain.Update, error) {
	query := url.Values{}
	query.Set("offset", strconv.FormatInt(p.lastUpdateID, 10))
	query.Set("timeout", strconv.Itoa(p.timeout))
	query.Set("allowed_updates", `["message","callback_query"]`)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.client.baseURL+"/getUpdates?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var updates []domain.Update
	poll := &Client{httpClient: p.httpClient, baseURL: p.client.baseURL, log: p.log}
	if err := poll.do(httpReq, "getUpdates", &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// DecodeUpdate разбирает тело webhook запроса
func DecodeUpdate(body []byte) (*domain.Update, error) {
	var update domain.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, fmt.Errorf("failed to unmarshal update: %w", err)
	}
	return &update, nil
}
