package tarot

import (
	"context"
	"errors"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/usecases/tarot/texts"
)

// HandleHistory последние карты пользователя, новые сверху
func (s *Service) HandleHistory(ctx context.Context, sender domain.Sender) error {
	entries, err := s.HistoryRepo.ListRecent(ctx, sender.UserID, domain.HistoryLimit)
	if err != nil {
		s.Log.Error("failed to list history",
			"error", err,
			"user_id", sender.UserID,
		)
		return s.reply(ctx, sender.ChatID, texts.HistoryError, nil, err)
	}
	if len(entries) == 0 {
		return s.sendMessage(ctx, sender.ChatID, texts.HistoryEmpty, nil)
	}

	items := make([]texts.HistoryItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, texts.HistoryItem{
			DrawnAt:     entry.DrawnAt.In(s.Cfg.Location),
			Card:        entry.Card,
			Orientation: entry.Orientation().Label(),
			// карты могло не остаться в каталоге, тогда совет пустой
			Advice: s.Catalog.Advice(entry.Card),
		})
	}

	return s.sendMessage(ctx, sender.ChatID, texts.FormatHistory(items), nil)
}

// HandlePersonalAccount профиль, статистика и статус подписки
func (s *Service) HandlePersonalAccount(ctx context.Context, sender domain.Sender) error {
	menu := s.mainMenu(ctx, sender.UserID)

	profile, err := s.ProfileRepo.GetByUserID(ctx, sender.UserID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return s.sendMessage(ctx, sender.ChatID, texts.NoProfile, menu)
	}
	if err != nil {
		s.Log.Error("failed to load profile for account",
			"error", err,
			"user_id", sender.UserID,
		)
		return s.reply(ctx, sender.ChatID, texts.GenericError, menu, err)
	}

	info := texts.AccountInfo{
		UserID:          profile.UserID,
		Nickname:        profile.Nickname,
		BirthDate:       profile.BirthDate,
		ZodiacSign:      profile.Zodiac(),
		TotalCards:      profile.TotalCards,
		StraightCards:   profile.StraightCards,
		ReversedCards:   profile.ReversedCards,
		ConsecutiveDays: profile.ConsecutiveDays,
	}
	if sub := s.subscription(ctx, sender.UserID); sub.IsActive(s.now()) {
		info.PremiumUntil = sub.ExpiresAt
	}

	return s.sendMarkdown(ctx, sender.ChatID, texts.FormatAccount(info), menu)
}
