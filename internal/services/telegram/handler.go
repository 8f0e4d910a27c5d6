package telegram

import (
	"context"
	"fmt"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

const privateChat = "private"

// HandleUpdate Основной метод для обработки всех типов обновлений.
// Ошибки, о которых пользователь уже узнал, наружу не отдаются.
func (s *Service) HandleUpdate(ctx context.Context, update *domain.Update) error {
	if update == nil {
		return fmt.Errorf("update is nil")
	}

	var err error
	switch {
	case update.Message != nil:
		err = s.HandleMessage(ctx, update.Message, update.UpdateID)
	case update.CallbackQuery != nil:
		err = s.HandleCallbackQuery(ctx, update.CallbackQuery, update.UpdateID)
	default:
		s.Metrics.IncUpdate("other")
		s.Log.Debug("ignoring unsupported update", "update_id", update.UpdateID)
		return nil
	}

	if domain.IsBusinessError(err) {
		s.Log.Debug("update handled with business error",
			"error", err,
			"update_id", update.UpdateID,
		)
		return nil
	}
	if err != nil {
		s.Metrics.IncError("telegram_handler")
	}
	return err
}

// HandleMessage обрабатывает входящее сообщение - роутинг в usecase
func (s *Service) HandleMessage(ctx context.Context, message *domain.Message, updateID int64) error {
	if message.From == nil || message.From.IsBot {
		s.Log.Debug("ignoring message from bot", "update_id", updateID)
		return nil
	}

	if message.Chat == nil || message.Chat.Type != privateChat {
		s.Log.Warn("ignoring message from group/chat",
			"update_id", updateID,
			"user_id", message.From.ID,
		)
		return nil
	}

	sender := domain.NewSender(message.From, message.Chat.ID)

	switch {
	case message.Text != nil:
		s.Metrics.IncUpdate("text")
		cmd := domain.ParseCommand(*message.Text)
		s.Log.Debug("incoming text",
			"update_id", updateID,
			"user_id", sender.UserID,
			"slash", cmd.Slash,
			"command", cmd.Name,
		)
		return s.BotService.HandleCommand(ctx, sender, cmd)

	case len(message.Photo) > 0:
		s.Metrics.IncUpdate("photo")
		photo := message.LargestPhoto()
		return s.BotService.HandlePhoto(ctx, sender, domain.PhotoUpload{
			FileID:    photo.FileID,
			MessageID: message.MessageID,
		})

	case message.Document.IsImage():
		// чек прислан файлом, просим фото
		s.Metrics.IncUpdate("document")
		return s.BotService.HandlePhoto(ctx, sender, domain.PhotoUpload{MessageID: message.MessageID})

	default:
		s.Metrics.IncUpdate("other")
		s.Log.Debug("ignoring message without text or photo",
			"update_id", updateID,
			"user_id", sender.UserID,
		)
		return nil
	}
}

// HandleCallbackQuery нажатие inline кнопки
func (s *Service) HandleCallbackQuery(ctx context.Context, query *domain.CallbackQuery, updateID int64) error {
	if query.From == nil || query.From.IsBot {
		s.Log.Debug("ignoring callback from bot", "update_id", updateID)
		return nil
	}
	// у слишком старых сообщений Telegram не присылает message
	if query.Message == nil || query.Message.Chat == nil {
		s.Log.Warn("callback without message",
			"update_id", updateID,
			"user_id", query.From.ID,
		)
		return nil
	}
	if query.Message.Chat.Type != privateChat {
		return nil
	}

	s.Metrics.IncUpdate("callback")

	data := ""
	if query.Data != nil {
		data = *query.Data
	}

	sender := domain.NewSender(query.From, query.Message.Chat.ID)
	return s.BotService.HandleCallback(ctx, sender, domain.CallbackEvent{
		ID:        query.ID,
		MessageID: query.Message.MessageID,
		Callback:  domain.ParseCallback(data),
	})
}
