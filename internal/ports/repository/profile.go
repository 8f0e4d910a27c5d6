package repository

import (
	"context"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

// IProfileRepo профили пользователей и статистика карт дня
type IProfileRepo interface {
	// Save создаёт профиль после онбординга; повторный онбординг меняет ник и дату, статистику не трогает
	Save(ctx context.Context, profile *domain.Profile) error
	// GetByUserID возвращает domain.ErrProfileNotFound, если профиля нет
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	// RecordDraw пишет счётчики и дату карты одним UPDATE, если за этот день карта ещё не записана.
	// false - строка не обновлена (карта уже есть или профиля нет).
	RecordDraw(ctx context.Context, profile *domain.Profile) (bool, error)
}
