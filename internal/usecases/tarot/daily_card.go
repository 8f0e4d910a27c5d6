package tarot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/usecases/tarot/texts"
)

// DrawResult вытянутая карта дня и всё, что нужно для ответа
type DrawResult struct {
	Card        *domain.Card
	Orientation domain.Orientation
	Profile     *domain.Profile
	Premium     bool
	Degraded    bool   // AI не ответил, вместо совета запасной текст
	AIText      string // пусто для бесплатного пользователя
	DrawnAt     time.Time
}

// Caption текст сообщения с картой дня
func (r *DrawResult) Caption() string {
	if r.Premium {
		return texts.FormatPremiumCaption(r.Profile.Nickname, r.Card.Name, r.Orientation.Label(), r.AIText)
	}
	return texts.FormatFreeCaption(
		r.Profile.Nickname,
		r.Card.Name,
		r.Orientation.Label(),
		r.Card.DescriptionFor(r.Orientation),
		r.Card.Advice,
	)
}

// DrawDailyCard тянет карту дня пользователю, не более одной за календарный день.
// Общий для кнопки в чате и утренней рассылки. displayName нужен только тем, у кого нет профиля.
// Возвращает domain.ErrAlreadyDrawn, если карта за сегодня уже есть.
func (s *Service) DrawDailyCard(ctx context.Context, userID int64, displayName string) (*DrawResult, error) {
	// AI-совет запрашивается уже после, чтобы не держать блокировку на время запроса
	unlock := s.locks.Lock(userID)
	result, err := s.drawAndRecord(ctx, userID, displayName)
	unlock()
	if err != nil {
		return nil, err
	}

	s.completeDraw(ctx, result)
	return result, nil
}

// drawDailyCardLocked то же, что DrawDailyCard, для обработчиков, уже держащих блокировку пользователя
func (s *Service) drawDailyCardLocked(ctx context.Context, userID int64, displayName string) (*DrawResult, error) {
	result, err := s.drawAndRecord(ctx, userID, displayName)
	if err != nil {
		return nil, err
	}

	s.completeDraw(ctx, result)
	return result, nil
}

func (s *Service) completeDraw(ctx context.Context, result *DrawResult) {
	userID := result.Profile.UserID
	result.Premium = s.isPremium(ctx, userID)
	if result.Premium {
		result.AIText, result.Degraded = s.advise(ctx, result)
	}

	s.Metrics.IncDraw(result.Orientation.String(), result.Premium)
	s.publishDraw(ctx, result)

	s.Log.Info("daily card drawn",
		"user_id", userID,
		"card", result.Card.Name,
		"orientation", result.Orientation.String(),
		"premium", result.Premium,
		"degraded", result.Degraded,
		"streak", result.Profile.ConsecutiveDays,
	)
}

// drawAndRecord проверка "уже тянул" и запись. Вызывать под блокировкой пользователя.
func (s *Service) drawAndRecord(ctx context.Context, userID int64, displayName string) (*DrawResult, error) {
	now := s.now()
	session := s.loadSession(ctx, userID)
	if session.DrewOn(now) {
		return nil, domain.ErrAlreadyDrawn
	}

	profile, persisted, err := s.profileForDraw(ctx, userID, displayName)
	if err != nil {
		return nil, err
	}

	drewToday := profile.DrewOn(now)
	if !persisted {
		drewToday, err = s.guestDrewOn(ctx, userID, now)
		if err != nil {
			return nil, err
		}
	}
	if drewToday {
		s.markDrawn(ctx, userID, now)
		return nil, domain.ErrAlreadyDrawn
	}

	card := s.Catalog.At(s.IntN(s.Catalog.Len()))
	orientation := domain.OrientationFromReversed(s.IntN(2) == 1)

	profile.RegisterDraw(orientation, now)
	profile.UpdatedAt = now

	if persisted {
		updated, err := s.ProfileRepo.RecordDraw(ctx, profile)
		if err != nil {
			return nil, fmt.Errorf("failed to record draw: %w", err)
		}
		if !updated {
			s.markDrawn(ctx, userID, now)
			return nil, domain.ErrAlreadyDrawn
		}
	}

	entry := domain.NewDailyCardEntry(userID, card.Name, orientation, now)
	if err := s.HistoryRepo.Append(ctx, entry); err != nil {
		// история не откатывает уже записанную статистику
		s.Log.Error("failed to append history",
			"error", err,
			"user_id", userID,
			"card", card.Name,
		)
		s.Metrics.IncError("history")
	}

	s.markDrawn(ctx, userID, now)

	return &DrawResult{
		Card:        card,
		Orientation: orientation,
		Profile:     profile,
		DrawnAt:     now,
	}, nil
}

// profileForDraw профиль из БД или временный для того, кто не проходил онбординг
func (s *Service) profileForDraw(ctx context.Context, userID int64, displayName string) (*domain.Profile, bool, error) {
	profile, err := s.ProfileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, true, nil
	}
	if errors.Is(err, domain.ErrProfileNotFound) {
		return domain.NewGuestProfile(userID, displayName), false, nil
	}
	return nil, false, fmt.Errorf("failed to load profile: %w", err)
}

// guestDrewOn у гостя нет строки в users, поэтому смотрим последнюю запись истории
func (s *Service) guestDrewOn(ctx context.Context, userID int64, now time.Time) (bool, error) {
	entries, err := s.HistoryRepo.ListRecent(ctx, userID, 1)
	if err != nil {
		return false, fmt.Errorf("failed to check guest history: %w", err)
	}
	if len(entries) == 0 {
		return false, nil
	}
	return domain.SameDate(entries[0].DrawnAt.In(s.Cfg.Location), now), nil
}

// markDrawn перечитывает сессию и меняет только дату карты, остальные поля не затираются
func (s *Service) markDrawn(ctx context.Context, userID int64, now time.Time) {
	session := s.loadSession(ctx, userID)
	session.MarkDrawn(now)
	s.saveSession(ctx, userID, session)
}

// advise AI-совет для премиума; при любой ошибке запасной текст и degraded=true
func (s *Service) advise(ctx context.Context, result *DrawResult) (string, bool) {
	fallback := texts.FormatAdvisorFallback(result.Card.Advice)
	if s.Advisor == nil {
		return fallback, true
	}

	started := time.Now()
	text, err := s.Advisor.Advise(ctx, domain.AdviceRequest{
		CardName:    result.Card.Name,
		Description: result.Card.DescriptionFor(result.Orientation),
		ZodiacSign:  result.Profile.Zodiac(),
		Orientation: result.Orientation,
	})
	if err != nil {
		s.Metrics.ObserveAdvisor("error", time.Since(started))
		s.Log.Warn("advisor failed, using static advice",
			"error", err,
			"user_id", result.Profile.UserID,
			"card", result.Card.Name,
		)
		return fallback, true
	}

	s.Metrics.ObserveAdvisor("ok", time.Since(started))
	return text, false
}

func (s *Service) publishDraw(ctx context.Context, result *DrawResult) {
	if s.Publisher == nil {
		return
	}

	event := &domain.DrawEvent{
		ID:          uuid.New(),
		UserID:      result.Profile.UserID,
		Card:        result.Card.Name,
		Orientation: result.Orientation.String(),
		Premium:     result.Premium,
		Degraded:    result.Degraded,
		Streak:      result.Profile.ConsecutiveDays,
		DrawnAt:     result.DrawnAt,
	}
	if err := s.Publisher.PublishDraw(ctx, event); err != nil {
		s.Log.Warn("failed to publish draw event",
			"error", err,
			"user_id", event.UserID,
		)
		s.Metrics.IncError("kafka")
	}
}

// HandleDailyCard кнопка "Карта дня"
// Вызывается из HandleCommand, который уже держит блокировку пользователя.
func (s *Service) HandleDailyCard(ctx context.Context, sender domain.Sender) error {
	result, err := s.drawDailyCardLocked(ctx, sender.UserID, sender.DisplayName())
	if errors.Is(err, domain.ErrAlreadyDrawn) {
		return s.reply(ctx, sender.ChatID, texts.AlreadyDrawn, s.mainMenu(ctx, sender.UserID), err)
	}
	if err != nil {
		s.Log.Error("failed to draw daily card",
			"error", err,
			"user_id", sender.UserID,
		)
		return s.reply(ctx, sender.ChatID, texts.GenericError, nil, err)
	}

	return s.deliverDailyCard(ctx, sender.ChatID, result)
}

// deliverDailyCard сначала картинка (если есть), потом текст с разметкой
func (s *Service) deliverDailyCard(ctx context.Context, chatID int64, result *DrawResult) error {
	image, err := s.Images.Load(ctx, result.Card.ImageFile)
	switch {
	case err == nil:
		if _, err := s.TelegramClient.SendPhoto(ctx, chatID, image, result.Card.ImageFile, "", nil); err != nil {
			if errors.Is(err, domain.ErrRecipientUnavailable) {
				return fmt.Errorf("failed to send card image: %w", err)
			}
			s.Log.Warn("failed to send card image, sending text only",
				"error", err,
				"chat_id", chatID,
				"card", result.Card.Name,
			)
		}
	case errors.Is(err, domain.ErrImageNotFound):
		s.Log.Warn("card image not found",
			"card", result.Card.Name,
			"image", result.Card.ImageFile,
		)
	default:
		s.Log.Warn("failed to load card image",
			"error", err,
			"card", result.Card.Name,
		)
	}

	return s.sendMarkdown(ctx, chatID, result.Caption(), nil)
}

// SendDailyCards утренняя рассылка карты дня активным подписчикам.
// Ошибки по отдельным пользователям считаются и логируются, job падает только если не получили список.
func (s *Service) SendDailyCards(ctx context.Context) error {
	today := s.now()
	userIDs, err := s.SubscriptionRepo.ListActiveUserIDs(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list active subscribers: %w", err)
	}

	s.Log.Info("starting daily card push", "recipients", len(userIDs))

	var sent, skipped, blocked, failed int
	for i, userID := range userIDs {
		if i > 0 && s.Cfg.PushPause > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.Cfg.PushPause):
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		status := s.pushDailyCard(ctx, userID)
		s.Metrics.IncBroadcast(status)
		switch status {
		case pushSent:
			sent++
		case pushSkipped:
			skipped++
		case pushBlocked:
			blocked++
		default:
			failed++
		}
	}

	s.Log.Info("daily card push finished",
		"sent", sent,
		"skipped", skipped,
		"blocked", blocked,
		"failed", failed,
	)
	return nil
}

const (
	pushSent    = "sent"
	pushSkipped = "skipped"
	pushBlocked = "blocked"
	pushFailed  = "error"
)

func (s *Service) pushDailyCard(ctx context.Context, userID int64) string {
	result, err := s.DrawDailyCard(ctx, userID, "")
	if errors.Is(err, domain.ErrAlreadyDrawn) {
		return pushSkipped
	}
	if err != nil {
		s.Log.Error("failed to draw daily card for push",
			"error", err,
			"user_id", userID,
		)
		return pushFailed
	}

	// в личке chat_id совпадает с user_id
	if err := s.deliverDailyCard(ctx, userID, result); err != nil {
		if errors.Is(err, domain.ErrRecipientUnavailable) {
			s.Log.Warn("push recipient unavailable", "user_id", userID)
			return pushBlocked
		}
		s.Log.Error("failed to deliver daily card push",
			"error", err,
			"user_id", userID,
		)
		return pushFailed
	}
	return pushSent
}
