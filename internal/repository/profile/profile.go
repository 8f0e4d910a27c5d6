package profileRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/ports/persistence"
	ports "github.com/Npcprogramming/Taro2.0/internal/ports/repository"
)

type profileColumns struct {
	TableName       string
	UserID          string
	Nickname        string
	BirthDate       string
	ZodiacSign      string
	TotalCards      string
	StraightCards   string
	ReversedCards   string
	ConsecutiveDays string
	LastCardDate    string
	CreatedAt       string
	UpdatedAt       string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns profileColumns
}

// New создаёт репозиторий профилей
func New(db persistence.Persistence, log *slog.Logger) ports.IProfileRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: profileColumns{
			TableName:       "users",
			UserID:          "user_id",
			Nickname:        "nickname",
			BirthDate:       "birth_date",
			ZodiacSign:      "zodiac_sign",
			TotalCards:      "total_cards",
			StraightCards:   "straight_cards",
			ReversedCards:   "reversed_cards",
			ConsecutiveDays: "consecutive_days",
			LastCardDate:    "last_card_date",
			CreatedAt:       "created_at",
			UpdatedAt:       "updated_at",
		},
	}
}

func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.UserID,
		r.columns.Nickname,
		r.columns.BirthDate,
		r.columns.ZodiacSign,
		r.columns.TotalCards,
		r.columns.StraightCards,
		r.columns.ReversedCards,
		r.columns.ConsecutiveDays,
		r.columns.LastCardDate,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)
}

// Save создаёт профиль или обновляет ник, дату рождения и знак. Счётчики не перезаписываются.
func (r *Repository) Save(ctx context.Context, profile *domain.Profile) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s`,
		r.columns.TableName,
		r.columns.UserID,
		r.columns.Nickname,
		r.columns.BirthDate,
		r.columns.ZodiacSign,
		r.columns.CreatedAt,
		r.columns.UpdatedAt,
		r.columns.UserID,
		r.columns.Nickname, r.columns.Nickname,
		r.columns.BirthDate, r.columns.BirthDate,
		r.columns.ZodiacSign, r.columns.ZodiacSign,
		r.columns.UpdatedAt, r.columns.UpdatedAt)

	err := r.db.Exec(ctx, query,
		profile.UserID,
		profile.Nickname,
		profile.BirthDate,
		profile.ZodiacSign,
		profile.CreatedAt,
		profile.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to save profile",
			"error", err,
			"user_id", profile.UserID)
		return fmt.Errorf("failed to save profile: %w", err)
	}

	r.Log.Debug("profile saved", "user_id", profile.UserID)
	return nil
}

// GetByUserID получает профиль по Telegram ID
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var profile domain.Profile
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID)

	err := r.db.Get(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Debug("profile not found", "user_id", userID)
			return nil, fmt.Errorf("%w: user_id=%d", domain.ErrProfileNotFound, userID)
		}
		r.Log.Error("failed to get profile",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// RecordDraw условный UPDATE: второй конкурентный запрос за тот же день не затронет строку
func (r *Repository) RecordDraw(ctx context.Context, profile *domain.Profile) (bool, error) {
	if profile.LastCardDate == nil {
		return false, fmt.Errorf("record draw: last card date is not set for user %d", profile.UserID)
	}

	query := fmt.Sprintf(`UPDATE %s SET
		%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1 AND %s IS DISTINCT FROM $6`,
		r.columns.TableName,
		r.columns.TotalCards,
		r.columns.StraightCards,
		r.columns.ReversedCards,
		r.columns.ConsecutiveDays,
		r.columns.LastCardDate,
		r.columns.UpdatedAt,
		r.columns.UserID,
		r.columns.LastCardDate)

	rows, err := r.db.ExecWithResult(ctx, query,
		profile.UserID,
		profile.TotalCards,
		profile.StraightCards,
		profile.ReversedCards,
		profile.ConsecutiveDays,
		*profile.LastCardDate,
		profile.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to record draw",
			"error", err,
			"user_id", profile.UserID)
		return false, fmt.Errorf("failed to record draw: %w", err)
	}

	if rows == 0 {
		r.Log.Warn("draw not recorded, already drawn or no profile",
			"user_id", profile.UserID,
			"date", profile.LastCardDate.Format(domain.DateLayout))
		return false, nil
	}

	r.Log.Debug("draw recorded",
		"user_id", profile.UserID,
		"total_cards", profile.TotalCards,
		"consecutive_days", profile.ConsecutiveDays)
	return true, nil
}
