package repository

import (
	"context"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

// ISubscriptionRepo премиум-подписки
type ISubscriptionRepo interface {
	// Get возвращает domain.ErrSubscriptionNotFound, если записи нет
	Get(ctx context.Context, userID int64) (*domain.Subscription, error)
	// Upsert выставляет дату окончания независимо от прошлого состояния
	Upsert(ctx context.Context, userID int64, expiresAt time.Time) error
	// CreateIfAbsent заводит запись без даты окончания; true - запись создана
	CreateIfAbsent(ctx context.Context, userID int64) (bool, error)
	// ListActiveUserIDs пользователи с expires_at >= today
	ListActiveUserIDs(ctx context.Context, today time.Time) ([]int64, error)
	// ListSubscribers все подписчики с датой окончания для админ-панели
	ListSubscribers(ctx context.Context) ([]domain.Subscriber, error)
	// ListExpiredOn пользователи с expires_at == date
	ListExpiredOn(ctx context.Context, date time.Time) ([]int64, error)
}
