package tarot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/usecases/tarot/texts"
)

// HandleSubscribe записывает желание получать карту дня; выданный премиум не трогает
func (s *Service) HandleSubscribe(ctx context.Context, sender domain.Sender) error {
	created, err := s.SubscriptionRepo.CreateIfAbsent(ctx, sender.UserID)
	if err != nil {
		return s.reply(ctx, sender.ChatID, texts.SubscribeError, nil, err)
	}

	s.Log.Info("user subscribed",
		"user_id", sender.UserID,
		"created", created,
	)

	message := texts.Subscribed
	if !s.isPremium(ctx, sender.UserID) {
		message += texts.SubscribedNeedPremium
	}
	return s.sendMessage(ctx, sender.ChatID, message, nil)
}

func (s *Service) HandlePremium(ctx context.Context, sender domain.Sender) error {
	message := texts.FormatPremiumInfo(s.Cfg.PremiumPrice, s.Cfg.PaymentDetails, s.Cfg.Contact)
	return s.sendMarkdown(ctx, sender.ChatID, message, nil)
}

// GrantSubscription выдаёт премиум на SubscriptionDays дней от сегодня, прошлое состояние не важно
func (s *Service) GrantSubscription(ctx context.Context, userID int64) (time.Time, error) {
	expiresAt := domain.GrantExpiry(s.now())
	if err := s.SubscriptionRepo.Upsert(ctx, userID, expiresAt); err != nil {
		return time.Time{}, fmt.Errorf("failed to grant subscription: %w", err)
	}

	s.Log.Info("subscription granted",
		"user_id", userID,
		"expires_at", expiresAt.Format(domain.DateLayout),
	)
	return expiresAt, nil
}

// HandleActivate /activate <user_id>, только для админов
func (s *Service) HandleActivate(ctx context.Context, sender domain.Sender, args string) error {
	if !s.isAdmin(sender.UserID) {
		s.Log.Warn("activate denied", "user_id", sender.UserID)
		return s.reply(ctx, sender.ChatID, texts.NotEnoughRights, nil, domain.ErrNotAdmin)
	}

	fields := strings.Fields(args)
	if len(fields) == 0 {
		return s.sendMessage(ctx, sender.ChatID, texts.ActivateUsage, nil)
	}
	targetID, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || targetID <= 0 {
		return s.sendMessage(ctx, sender.ChatID, texts.ActivateUsage, nil)
	}

	expiresAt, err := s.GrantSubscription(ctx, targetID)
	if err != nil {
		s.Log.Error("failed to activate subscription",
			"error", err,
			"admin_id", sender.UserID,
			"user_id", targetID,
		)
		return s.reply(ctx, sender.ChatID, texts.ActivateError, nil, err)
	}

	if err := s.sendMessage(ctx, sender.ChatID, texts.FormatActivated(expiresAt), nil); err != nil {
		return err
	}

	// пользователь мог заблокировать бота, выдача от этого не откатывается
	if _, err := s.TelegramClient.SendMessage(ctx, targetID, texts.FormatActivatedNotify(expiresAt), s.mainMenu(ctx, targetID)); err != nil {
		s.Log.Warn("failed to notify user about activation",
			"error", err,
			"user_id", targetID,
		)
	}
	return nil
}

// HandleAdminPanel список подписчиков с датой окончания
func (s *Service) HandleAdminPanel(ctx context.Context, sender domain.Sender) error {
	if !s.isAdmin(sender.UserID) {
		s.Log.Warn("admin panel denied", "user_id", sender.UserID)
		return s.reply(ctx, sender.ChatID, texts.AccessDenied, nil, domain.ErrNotAdmin)
	}

	subscribers, err := s.SubscriptionRepo.ListSubscribers(ctx)
	if err != nil {
		return s.reply(ctx, sender.ChatID, texts.GenericError, nil, err)
	}
	if len(subscribers) == 0 {
		return s.sendMessage(ctx, sender.ChatID, texts.NoSubscribers, nil)
	}

	rows := make([]texts.SubscriberRow, 0, len(subscribers))
	for _, sub := range subscribers {
		row := texts.SubscriberRow{UserID: sub.UserID}
		if sub.Nickname != nil {
			row.Nickname = *sub.Nickname
		}
		if sub.ZodiacSign != nil {
			row.ZodiacSign = *sub.ZodiacSign
		}
		if sub.ExpiresAt != nil {
			row.ExpiresAt = *sub.ExpiresAt
		}
		rows = append(rows, row)
	}

	return s.sendMessage(ctx, sender.ChatID, texts.FormatSubscribers(rows), nil)
}

// NotifyExpiredSubscriptions сообщает тем, у кого премиум закончился вчера
func (s *Service) NotifyExpiredSubscriptions(ctx context.Context) error {
	yesterday := s.now().AddDate(0, 0, -1)
	userIDs, err := s.SubscriptionRepo.ListExpiredOn(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to list expired subscriptions: %w", err)
	}

	notified := 0
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.TelegramClient.SendMessage(ctx, userID, texts.SubscriptionExpired, s.mainMenu(ctx, userID)); err != nil {
			s.Log.Warn("failed to notify about expired subscription",
				"error", err,
				"user_id", userID,
			)
			continue
		}
		notified++
	}

	s.Log.Info("expired subscriptions notified",
		"expired", len(userIDs),
		"notified", notified,
	)
	return nil
}
