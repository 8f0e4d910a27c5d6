package domain

import "time"

// OnboardingState шаг диалога знакомства
type OnboardingState int

const (
	OnboardingStart OnboardingState = iota
	OnboardingAwaitingNickname
	OnboardingAwaitingBirthDate
	OnboardingComplete
)

func (s OnboardingState) String() string {
	switch s {
	case OnboardingAwaitingNickname:
		return "awaiting_nickname"
	case OnboardingAwaitingBirthDate:
		return "awaiting_birth_date"
	case OnboardingComplete:
		return "complete"
	default:
		return "start"
	}
}

// Session недолговечное состояние диалога с пользователем
type Session struct {
	Onboarding       OnboardingState `json:"onboarding"`
	PendingNickname  string          `json:"pending_nickname,omitempty"`
	DisplayMessageID int64           `json:"display_message_id,omitempty"`
	LastDrawDate     string          `json:"last_draw_date,omitempty"` // DateLayout
}

// InOnboarding ждём ли от пользователя ник или дату рождения
func (s *Session) InOnboarding() bool {
	return s.Onboarding == OnboardingAwaitingNickname || s.Onboarding == OnboardingAwaitingBirthDate
}

// DrewOn кэшированная отметка о карте дня за этот день
func (s *Session) DrewOn(today time.Time) bool {
	return s.LastDrawDate != "" && s.LastDrawDate == DateOf(today).Format(DateLayout)
}

func (s *Session) MarkDrawn(today time.Time) {
	s.LastDrawDate = DateOf(today).Format(DateLayout)
}
