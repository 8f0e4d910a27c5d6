package cache

import (
	"context"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

// ISessionStore состояние диалога по пользователю
type ISessionStore interface {
	// Get никогда не возвращает nil-сессию без ошибки; отсутствие - пустая сессия
	Get(ctx context.Context, userID int64) (*domain.Session, error)
	Save(ctx context.Context, userID int64, session *domain.Session) error
}
