package historyRepo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/ports/persistence"
	ports "github.com/Npcprogramming/Taro2.0/internal/ports/repository"
)

type historyColumns struct {
	TableName  string
	ID         string
	UserID     string
	DrawnAt    string
	Card       string
	IsReversed string
	Type       string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns historyColumns
}

func New(db persistence.Persistence, log *slog.Logger) ports.IHistoryRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: historyColumns{
			TableName:  "history",
			ID:         "id",
			UserID:     "user_id",
			DrawnAt:    "drawn_at",
			Card:       "card",
			IsReversed: "is_reversed",
			Type:       "type",
		},
	}
}

func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.UserID,
		r.columns.DrawnAt,
		r.columns.Card,
		r.columns.IsReversed,
		r.columns.Type)
}

func (r *Repository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.columns.TableName,
		r.allColumns())

	err := r.db.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.DrawnAt,
		entry.Card,
		entry.IsReversed,
		entry.Type)
	if err != nil {
		r.Log.Error("failed to append history",
			"error", err,
			"user_id", entry.UserID,
			"card", entry.Card)
		return fmt.Errorf("failed to append history: %w", err)
	}

	r.Log.Debug("history appended", "user_id", entry.UserID, "card", entry.Card)
	return nil
}

func (r *Repository) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = domain.HistoryLimit
	}
	entries := make([]domain.HistoryEntry, 0, limit)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID,
		r.columns.DrawnAt)

	if err := r.db.Select(ctx, &entries, query, userID, limit); err != nil {
		r.Log.Error("failed to list history",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}
