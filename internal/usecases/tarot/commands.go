package tarot

import (
	"context"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/usecases/tarot/texts"
)

// HandleCommand точка входа для текстовых сообщений, уже разобранных в domain.Command.
// Обработчики одного пользователя идут по очереди: сессия читается и пишется целиком.
func (s *Service) HandleCommand(ctx context.Context, sender domain.Sender, cmd domain.Command) error {
	unlock := s.locks.Lock(sender.UserID)
	defer unlock()

	session := s.loadSession(ctx, sender.UserID)

	// во время онбординга любой текст без слэша - ответ на вопрос, даже если совпал с кнопкой
	if session.InOnboarding() {
		switch {
		case cmd.Kind == domain.CommandCancel:
			return s.HandleCancel(ctx, sender, session)
		case cmd.Kind == domain.CommandStart:
			return s.HandleStart(ctx, sender)
		case !cmd.Slash:
			return s.handleOnboardingText(ctx, sender, session, cmd.Text)
		}
	}

	switch cmd.Kind {
	case domain.CommandStart:
		return s.HandleStart(ctx, sender)
	case domain.CommandHelp:
		return s.sendMessage(ctx, sender.ChatID, texts.Help, nil)
	case domain.CommandNews:
		return s.sendMessage(ctx, sender.ChatID, texts.News, nil)
	case domain.CommandSettings:
		return s.sendMessage(ctx, sender.ChatID, texts.SettingsMenu, settingsMenu())
	case domain.CommandMainMenu:
		return s.sendMessage(ctx, sender.ChatID, texts.MainMenu, s.mainMenu(ctx, sender.UserID))
	case domain.CommandDailyCard:
		return s.HandleDailyCard(ctx, sender)
	case domain.CommandHistory:
		return s.HandleHistory(ctx, sender)
	case domain.CommandPersonalAccount:
		return s.HandlePersonalAccount(ctx, sender)
	case domain.CommandCardSearch:
		return s.HandleCardSearch(ctx, sender)
	case domain.CommandSubscribe:
		return s.HandleSubscribe(ctx, sender)
	case domain.CommandPremium:
		return s.HandlePremium(ctx, sender)
	case domain.CommandRequestFeedback:
		return s.sendMessage(ctx, sender.ChatID, texts.FeedbackPrompt, nil)
	case domain.CommandFeedback:
		return s.HandleFeedback(ctx, sender, cmd.Args)
	case domain.CommandActivate:
		return s.HandleActivate(ctx, sender, cmd.Args)
	case domain.CommandAdminPanel:
		return s.HandleAdminPanel(ctx, sender)
	case domain.CommandText:
		return s.sendMessage(ctx, sender.ChatID, texts.UnknownText, s.mainMenu(ctx, sender.UserID))
	default:
		// сюда же /cancel вне онбординга
		return s.sendMessage(ctx, sender.ChatID, texts.UnknownCommand, s.mainMenu(ctx, sender.UserID))
	}
}
