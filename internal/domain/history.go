package domain

import (
	"time"

	"github.com/google/uuid"
)

type HistoryType string

const (
	HistoryTypeDailyCard HistoryType = "daily_card"
)

// HistoryLimit сколько последних карт показываем в истории
const HistoryLimit = 30

// HistoryEntry запись журнала вытянутых карт, только добавляется
type HistoryEntry struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	UserID     int64       `json:"user_id" db:"user_id"`
	DrawnAt    time.Time   `json:"drawn_at" db:"drawn_at"`
	Card       string      `json:"card" db:"card"`
	IsReversed bool        `json:"is_reversed" db:"is_reversed"`
	Type       HistoryType `json:"type" db:"type"`
}

func NewDailyCardEntry(userID int64, card string, orientation Orientation, drawnAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		ID:         uuid.New(),
		UserID:     userID,
		DrawnAt:    drawnAt,
		Card:       card,
		IsReversed: orientation.IsReversed(),
		Type:       HistoryTypeDailyCard,
	}
}

func (h *HistoryEntry) Orientation() Orientation {
	return OrientationFromReversed(h.IsReversed)
}

// DrawEvent событие о вытянутой карте для внешних потребителей (аналитика)
type DrawEvent struct {
	ID          uuid.UUID `json:"id"`
	UserID      int64     `json:"user_id"`
	Card        string    `json:"card"`
	Orientation string    `json:"orientation"`
	Premium     bool      `json:"premium"`
	Degraded    bool      `json:"degraded"`
	Streak      int       `json:"streak"`
	DrawnAt     time.Time `json:"drawn_at"`
}
