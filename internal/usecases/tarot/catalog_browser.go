package tarot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/usecases/tarot/texts"
)

const (
	suitsPerRow = 2
	cardsPerRow = 3
)

// HandleCardSearch открывает поиск карты: сверху заглушка под карту, снизу выбор масти
func (s *Service) HandleCardSearch(ctx context.Context, sender domain.Sender) error {
	displayID, err := s.TelegramClient.SendMessage(ctx, sender.ChatID, texts.BrowserPlaceholder, nil)
	if err != nil {
		return fmt.Errorf("failed to send card placeholder: %w", err)
	}

	session := s.loadSession(ctx, sender.UserID)
	session.DisplayMessageID = displayID
	s.saveSession(ctx, sender.UserID, session)

	return s.sendMessage(ctx, sender.ChatID, texts.BrowserChooseSuit, &domain.MessageOptions{Inline: s.suitsKeyboard()})
}

// HandleCallback нажатия inline кнопок поиска карты
func (s *Service) HandleCallback(ctx context.Context, sender domain.Sender, event domain.CallbackEvent) error {
	unlock := s.locks.Lock(sender.UserID)
	defer unlock()

	if err := s.TelegramClient.AnswerCallbackQuery(ctx, event.ID, "", false); err != nil {
		s.Log.Warn("failed to answer callback query",
			"error", err,
			"user_id", sender.UserID,
		)
	}

	switch event.Callback.Kind {
	case domain.CallbackCategory:
		return s.showCategory(ctx, sender, event.MessageID, event.Callback.Category)
	case domain.CallbackBack:
		return s.editSelector(ctx, sender.ChatID, event.MessageID, texts.BrowserChooseSuit, s.suitsKeyboard())
	case domain.CallbackItem:
		return s.showCard(ctx, sender, event.Callback.Item)
	default:
		s.Log.Warn("unknown callback", "user_id", sender.UserID)
		return nil
	}
}

func (s *Service) showCategory(ctx context.Context, sender domain.Sender, selectorID int64, suit domain.Suit) error {
	category, ok := s.Catalog.Category(suit)
	if !ok {
		return s.editSelector(ctx, sender.ChatID, selectorID, texts.BrowserChooseSuit, s.suitsKeyboard())
	}

	keyboard := &domain.InlineKeyboard{}
	var row []domain.InlineButton
	for _, name := range category.Cards {
		row = append(row, domain.InlineButton{Text: name, CallbackData: domain.ItemCallbackData(name)})
		if len(row) == cardsPerRow {
			keyboard.Rows = append(keyboard.Rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		keyboard.Rows = append(keyboard.Rows, row)
	}
	keyboard.Rows = append(keyboard.Rows, []domain.InlineButton{
		{Text: texts.BrowserBackToSuits, CallbackData: domain.CallbackBackToken},
	})

	return s.editSelector(ctx, sender.ChatID, selectorID, texts.FormatChooseCard(category.Name), keyboard)
}

// editSelector нижнее сообщение всегда правится на месте
func (s *Service) editSelector(ctx context.Context, chatID, messageID int64, text string, keyboard *domain.InlineKeyboard) error {
	if err := s.TelegramClient.EditMessageText(ctx, chatID, messageID, text, keyboard); err != nil {
		s.Log.Error("failed to edit selector",
			"error", err,
			"chat_id", chatID,
			"message_id", messageID,
		)
		return fmt.Errorf("failed to edit selector: %w", err)
	}
	return nil
}

// showCard верхнее сообщение заменяется целиком: текст нельзя превратить в фото редактированием
func (s *Service) showCard(ctx context.Context, sender domain.Sender, name string) error {
	card, ok := s.Catalog.Card(name)
	if !ok {
		return s.reply(ctx, sender.ChatID, texts.FormatCardNotFound(name), nil, domain.ErrCardNotFound)
	}

	caption := texts.FormatCardDetails(card.Name, card.Description, card.Advice)
	session := s.loadSession(ctx, sender.UserID)

	if session.DisplayMessageID != 0 {
		if err := s.TelegramClient.DeleteMessage(ctx, sender.ChatID, session.DisplayMessageID); err != nil {
			s.Log.Warn("failed to delete previous card message",
				"error", err,
				"chat_id", sender.ChatID,
				"message_id", session.DisplayMessageID,
			)
		}
	}

	displayID, err := s.sendCardDisplay(ctx, sender.ChatID, card, caption)
	if err != nil {
		return err
	}

	session.DisplayMessageID = displayID
	s.saveSession(ctx, sender.UserID, session)
	return nil
}

func (s *Service) sendCardDisplay(ctx context.Context, chatID int64, card *domain.Card, caption string) (int64, error) {
	image, err := s.Images.Load(ctx, card.ImageFile)
	if err == nil {
		id, err := s.TelegramClient.SendPhoto(ctx, chatID, image, card.ImageFile, caption, nil)
		if err == nil {
			return id, nil
		}
		if errors.Is(err, domain.ErrRecipientUnavailable) {
			return 0, fmt.Errorf("failed to send card photo: %w", err)
		}
		s.Log.Warn("failed to send card photo, sending text",
			"error", err,
			"card", card.Name,
		)
	} else if !errors.Is(err, domain.ErrImageNotFound) {
		s.Log.Warn("failed to load card image",
			"error", err,
			"card", card.Name,
		)
	}

	id, err := s.TelegramClient.SendMessage(ctx, chatID, caption, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to send card details: %w", err)
	}
	return id, nil
}

func (s *Service) suitsKeyboard() *domain.InlineKeyboard {
	keyboard := &domain.InlineKeyboard{}
	var row []domain.InlineButton
	for _, category := range s.Catalog.Categories() {
		row = append(row, domain.InlineButton{Text: category.Title, CallbackData: domain.CategoryCallbackData(category.Suit)})
		if len(row) == suitsPerRow {
			keyboard.Rows = append(keyboard.Rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		keyboard.Rows = append(keyboard.Rows, row)
	}
	return keyboard
}
