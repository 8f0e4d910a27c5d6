package subscriptionRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/ports/persistence"
	ports "github.com/Npcprogramming/Taro2.0/internal/ports/repository"
)

type subscriptionColumns struct {
	TableName string
	UserID    string
	ExpiresAt string
}

type Repository struct {
	db           persistence.Persistence
	Log          *slog.Logger
	columns      subscriptionColumns
	profileTable string
}

// New создаёт репозиторий подписок
func New(db persistence.Persistence, log *slog.Logger) ports.ISubscriptionRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: subscriptionColumns{
			TableName: "subscriptions",
			UserID:    "user_id",
			ExpiresAt: "expires_at",
		},
		profileTable: "users",
	}
}

func (r *Repository) Get(ctx context.Context, userID int64) (*domain.Subscription, error) {
	var sub domain.Subscription
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		r.columns.UserID,
		r.columns.ExpiresAt,
		r.columns.TableName,
		r.columns.UserID)

	err := r.db.Get(ctx, &sub, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user_id=%d", domain.ErrSubscriptionNotFound, userID)
		}
		r.Log.Error("failed to get subscription",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

// Upsert выставляет дату окончания, перезаписывая прошлую
func (r *Repository) Upsert(ctx context.Context, userID int64, expiresAt time.Time) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s`,
		r.columns.TableName,
		r.columns.UserID,
		r.columns.ExpiresAt,
		r.columns.UserID,
		r.columns.ExpiresAt, r.columns.ExpiresAt)

	if err := r.db.Exec(ctx, query, userID, domain.DateOf(expiresAt)); err != nil {
		r.Log.Error("failed to upsert subscription",
			"error", err,
			"user_id", userID)
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	r.Log.Info("subscription upserted",
		"user_id", userID,
		"expires_at", expiresAt.Format(domain.DateLayout))
	return nil
}

// CreateIfAbsent запись без даты окончания, существующую не трогает
func (r *Repository) CreateIfAbsent(ctx context.Context, userID int64) (bool, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) ON CONFLICT (%s) DO NOTHING`,
		r.columns.TableName,
		r.columns.UserID,
		r.columns.UserID)

	rows, err := r.db.ExecWithResult(ctx, query, userID)
	if err != nil {
		r.Log.Error("failed to create subscription",
			"error", err,
			"user_id", userID)
		return false, fmt.Errorf("failed to create subscription: %w", err)
	}
	return rows > 0, nil
}

func (r *Repository) ListActiveUserIDs(ctx context.Context, today time.Time) ([]int64, error) {
	var ids []int64
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s >= $1 ORDER BY %s`,
		r.columns.UserID,
		r.columns.TableName,
		r.columns.ExpiresAt,
		r.columns.UserID)

	if err := r.db.Select(ctx, &ids, query, domain.DateOf(today)); err != nil {
		r.Log.Error("failed to list active subscribers", "error", err)
		return nil, fmt.Errorf("failed to list active subscribers: %w", err)
	}
	return ids, nil
}

// ListSubscribers подписки с датой окончания и ником, свежие сверху
func (r *Repository) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	var subscribers []domain.Subscriber
	query := fmt.Sprintf(`SELECT s.%s, u.nickname, u.zodiac_sign, s.%s
		FROM %s s
		LEFT JOIN %s u ON u.user_id = s.%s
		WHERE s.%s IS NOT NULL
		ORDER BY s.%s DESC, s.%s`,
		r.columns.UserID,
		r.columns.ExpiresAt,
		r.columns.TableName,
		r.profileTable,
		r.columns.UserID,
		r.columns.ExpiresAt,
		r.columns.ExpiresAt,
		r.columns.UserID)

	if err := r.db.Select(ctx, &subscribers, query); err != nil {
		r.Log.Error("failed to list subscribers", "error", err)
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subscribers, nil
}

// ListExpiredOn пользователи, у которых премиум закончился ровно в этот день
func (r *Repository) ListExpiredOn(ctx context.Context, date time.Time) ([]int64, error) {
	var ids []int64
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		r.columns.UserID,
		r.columns.TableName,
		r.columns.ExpiresAt,
		r.columns.UserID)

	if err := r.db.Select(ctx, &ids, query, domain.DateOf(date)); err != nil {
		r.Log.Error("failed to list expired subscriptions",
			"error", err,
			"date", date.Format(domain.DateLayout))
		return nil, fmt.Errorf("failed to list expired subscriptions: %w", err)
	}
	return ids, nil
}
