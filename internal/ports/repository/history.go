package repository

import (
	"context"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

// IHistoryRepo журнал вытянутых карт
type IHistoryRepo interface {
	Append(ctx context.Context, entry *domain.HistoryEntry) error
	// ListRecent последние записи, новые первыми
	ListRecent(ctx context.Context, userID int64, limit int) ([]domain.HistoryEntry, error)
}
