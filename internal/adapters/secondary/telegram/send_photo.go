package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

// SendPhoto отправляет фото файлом (multipart) и возвращает message_id
func (c *Client) SendPhoto(ctx context.Context, chatID int64, photo []byte, filename string, caption string, opts *domain.MessageOptions) (int64, error) {
	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	fields := map[string]string{
		"chat_id": strconv.FormatInt(chatID, 10),
	}
	if caption != "" {
		fields["caption"] = caption
	}
	if opts != nil {
		if opts.ParseMode != "" {
			fields["parse_mode"] = opts.ParseMode
		}
		if opts.MessageThreadID != nil {
			fields["message_thread_id"] = strconv.FormatInt(*opts.MessageThreadID, 10)
		}
		if markup := replyMarkup(opts); markup != nil {
			raw, err := json.Marshal(markup)
			if err != nil {
				return 0, fmt.Errorf("failed to marshal reply markup: %w", err)
			}
			fields["reply_markup"] = string(raw)
		}
	}

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			c.log.Error("failed to write form field",
				"error", err,
				"field", name,
				"chat_id", chatID)
			return 0, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	photoPart, err := writer.CreateFormFile("photo", filename)
	if err != nil {
		c.log.Error("failed to create photo form file",
			"error", err,
			"filename", filename)
		return 0, fmt.Errorf("failed to create photo form file: %w", err)
	}

	if _, err := photoPart.Write(photo); err != nil {
		c.log.Error("failed to write photo data",
			"error", err,
			"filename", filename)
		return 0, fmt.Errorf("failed to write photo data: %w", err)
	}

	if err := writer.Close(); err != nil {
		c.log.Error("failed to close multipart writer",
			"error", err)
		return 0, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sendPhoto", &requestBody)
	if err != nil {
		return 0, fmt.Errorf("telegram create request failed [chat_id=%d]: %w", chatID, err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	c.log.Debug("sending photo to Telegram",
		"chat_id", chatID,
		"filename", filename,
		"photo_size", len(photo))

	var result MessageResult
	if err := c.do(httpReq, "sendPhoto", &result); err != nil {
		return 0, err
	}

	c.log.Debug("photo sent successfully",
		"chat_id", chatID,
		"message_id", result.MessageID,
		"filename", filename)

	return result.MessageID, nil
}
