package tarot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

// sendMessage отправляет сообщение пользователю через Telegram Client
func (s *Service) sendMessage(ctx context.Context, chatID int64, text string, opts *domain.MessageOptions) error {
	if _, err := s.TelegramClient.SendMessage(ctx, chatID, text, opts); err != nil {
		s.Log.Error("failed to send message",
			"error", err,
			"chat_id", chatID,
		)
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// sendMarkdown отправляет текст с Markdown; если Telegram не смог разобрать разметку
// (ник или текст AI с непарной * или _), повторяет без неё
func (s *Service) sendMarkdown(ctx context.Context, chatID int64, text string, opts *domain.MessageOptions) error {
	markdown := domain.MessageOptions{}
	if opts != nil {
		markdown = *opts
	}
	markdown.ParseMode = domain.ParseModeMarkdown

	_, err := s.TelegramClient.SendMessage(ctx, chatID, text, &markdown)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrRecipientUnavailable) {
		return fmt.Errorf("failed to send message: %w", err)
	}

	s.Log.Warn("markdown message rejected, resending as plain text",
		"error", err,
		"chat_id", chatID,
	)
	markdown.ParseMode = ""
	return s.sendMessage(ctx, chatID, text, &markdown)
}

// reply отвечает пользователю и помечает ошибку бизнес-логики, о которой он уже узнал
func (s *Service) reply(ctx context.Context, chatID int64, text string, opts *domain.MessageOptions, cause error) error {
	if err := s.sendMessage(ctx, chatID, text, opts); err != nil {
		return err
	}
	return domain.WrapBusinessError(cause)
}

// loadSession сессия пользователя; при сбое хранилища работаем с пустой
func (s *Service) loadSession(ctx context.Context, userID int64) *domain.Session {
	session, err := s.Sessions.Get(ctx, userID)
	if err != nil || session == nil {
		s.Log.Warn("failed to load session, using empty one",
			"error", err,
			"user_id", userID,
		)
		return &domain.Session{}
	}
	return session
}

func (s *Service) saveSession(ctx context.Context, userID int64, session *domain.Session) {
	if err := s.Sessions.Save(ctx, userID, session); err != nil {
		s.Log.Warn("failed to save session",
			"error", err,
			"user_id", userID,
		)
	}
}
