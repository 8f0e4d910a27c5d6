package tarot

import (
	"context"
	"errors"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

// mainMenu главная клавиатура; кнопка премиума только для тех, у кого его нет
func (s *Service) mainMenu(ctx context.Context, userID int64) *domain.MessageOptions {
	rows := [][]string{
		{domain.ButtonDailyCard, domain.ButtonHistory},
		{domain.ButtonNews, domain.ButtonSettings},
		{domain.ButtonCardSearch},
	}
	if !s.isPremium(ctx, userID) {
		rows = append(rows, []string{domain.ButtonPremium})
	}
	rows = append(rows, []string{domain.ButtonPersonalAccount})

	return &domain.MessageOptions{Reply: &domain.ReplyKeyboard{Rows: rows, Resize: true}}
}

func settingsMenu() *domain.MessageOptions {
	return &domain.MessageOptions{Reply: &domain.ReplyKeyboard{
		Rows: [][]string{
			{domain.ButtonSubscribe, domain.ButtonHelp},
			{domain.ButtonFeedback},
			{domain.ButtonBack},
		},
		Resize: true,
	}}
}

// subscription запись подписки или nil; ошибки чтения логируются и считаются отсутствием
func (s *Service) subscription(ctx context.Context, userID int64) *domain.Subscription {
	sub, err := s.SubscriptionRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrSubscriptionNotFound) {
			s.Log.Warn("failed to check subscription, treating as free",
				"error", err,
				"user_id", userID,
			)
		}
		return nil
	}
	return sub
}

func (s *Service) isPremium(ctx context.Context, userID int64) bool {
	return s.subscription(ctx, userID).IsActive(s.now())
}
