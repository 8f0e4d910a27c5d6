package tarot

import (
	"context"
	"strings"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/usecases/tarot/texts"
)

// HandleFeedback пересылает отзыв первому админу
func (s *Service) HandleFeedback(ctx context.Context, sender domain.Sender, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.sendMessage(ctx, sender.ChatID, texts.FeedbackEmpty, nil)
	}

	adminID, ok := s.mainAdmin()
	if !ok {
		s.Log.Warn("feedback dropped, no admins configured", "user_id", sender.UserID)
		return s.sendMessage(ctx, sender.ChatID, texts.FeedbackThanks, nil)
	}

	from := sender.Username
	if from == "" {
		from = sender.DisplayName()
	}
	if _, err := s.TelegramClient.SendMessage(ctx, adminID, texts.FormatFeedback(from, sender.UserID, text), nil); err != nil {
		s.Log.Error("failed to forward feedback",
			"error", err,
			"user_id", sender.UserID,
			"admin_id", adminID,
		)
		return s.reply(ctx, sender.ChatID, texts.GenericError, nil, err)
	}

	s.Log.Info("feedback forwarded", "user_id", sender.UserID)
	return s.sendMessage(ctx, sender.ChatID, texts.FeedbackThanks, nil)
}
