package tarot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/usecases/tarot/texts"
)

// HandleStart существующего пользователя приветствует, нового ведёт в онбординг
func (s *Service) HandleStart(ctx context.Context, sender domain.Sender) error {
	session := s.loadSession(ctx, sender.UserID)

	profile, err := s.ProfileRepo.GetByUserID(ctx, sender.UserID)
	switch {
	case err == nil:
		session.Onboarding = domain.OnboardingComplete
		session.PendingNickname = ""
		s.saveSession(ctx, sender.UserID, session)
		return s.sendMessage(ctx, sender.ChatID, texts.FormatWelcomeBack(profile.Nickname), s.mainMenu(ctx, sender.UserID))
	case !errors.Is(err, domain.ErrProfileNotFound):
		s.Log.Error("failed to load profile on start",
			"error", err,
			"user_id", sender.UserID,
		)
		return s.reply(ctx, sender.ChatID, texts.GenericError, nil, err)
	}

	session.Onboarding = domain.OnboardingAwaitingNickname
	session.PendingNickname = ""
	s.saveSession(ctx, sender.UserID, session)

	if err := s.sendMessage(ctx, sender.ChatID, texts.StartGreeting, &domain.MessageOptions{RemoveKeyboard: true}); err != nil {
		return err
	}
	return s.sendMessage(ctx, sender.ChatID, texts.AskNickname, nil)
}

// HandleCancel прерывает онбординг без создания профиля
func (s *Service) HandleCancel(ctx context.Context, sender domain.Sender, session *domain.Session) error {
	session.Onboarding = domain.OnboardingComplete
	session.PendingNickname = ""
	s.saveSession(ctx, sender.UserID, session)

	s.Log.Info("onboarding cancelled", "user_id", sender.UserID)
	return s.sendMessage(ctx, sender.ChatID, texts.Cancelled, s.mainMenu(ctx, sender.UserID))
}

func (s *Service) handleOnboardingText(ctx context.Context, sender domain.Sender, session *domain.Session, text string) error {
	switch session.Onboarding {
	case domain.OnboardingAwaitingNickname:
		return s.handleNickname(ctx, sender, session, text)
	case domain.OnboardingAwaitingBirthDate:
		return s.handleBirthDate(ctx, sender, session, text)
	default:
		return fmt.Errorf("unexpected onboarding state %s", session.Onboarding)
	}
}

func (s *Service) handleNickname(ctx context.Context, sender domain.Sender, session *domain.Session, text string) error {
	nickname := strings.TrimSpace(text)
	if nickname == "" {
		return s.sendMessage(ctx, sender.ChatID, texts.NicknameIsRequired, nil)
	}

	session.PendingNickname = nickname
	session.Onboarding = domain.OnboardingAwaitingBirthDate
	s.saveSession(ctx, sender.UserID, session)

	return s.sendMessage(ctx, sender.ChatID, texts.AskBirthDate, nil)
}

func (s *Service) handleBirthDate(ctx context.Context, sender domain.Sender, session *domain.Session, text string) error {
	birthDate, err := domain.ParseBirthDate(text)
	if err != nil {
		// остаёмся в том же состоянии, пользователь пробует ещё раз
		return s.reply(ctx, sender.ChatID, texts.InvalidBirthDate, nil, err)
	}

	nickname := session.PendingNickname
	if nickname == "" {
		nickname = sender.DisplayName()
	}

	profile := domain.NewProfile(sender.UserID, nickname, birthDate, s.now())
	if err := s.ProfileRepo.Save(ctx, profile); err != nil {
		s.Log.Error("failed to save profile",
			"error", err,
			"user_id", sender.UserID,
		)
		return s.reply(ctx, sender.ChatID, texts.ProfileSaveFailed, nil, err)
	}

	session.Onboarding = domain.OnboardingComplete
	session.PendingNickname = ""
	s.saveSession(ctx, sender.UserID, session)

	s.Log.Info("profile created",
		"user_id", sender.UserID,
		"zodiac_sign", profile.Zodiac(),
	)

	return s.sendMessage(ctx, sender.ChatID,
		texts.FormatProfileSaved(profile.Nickname, *profile.BirthDate, profile.Zodiac()),
		s.mainMenu(ctx, sender.UserID),
	)
}
