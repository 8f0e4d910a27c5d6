package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/ports/service"
)

const dailyCardPushName = "daily-card-push"

// DefaultPushHour по умолчанию рассылка в полдень
const DefaultPushHour = 12

// DailyCardPush рассылает карту дня подписчикам раз в сутки
type DailyCardPush struct {
	broadcaster service.IBroadcaster
	location    *time.Location
	hour        int
	minute      int
	log         *slog.Logger
}

func NewDailyCardPush(
	broadcaster service.IBroadcaster,
	location *time.Location,
	hour, minute int,
	log *slog.Logger,
) *DailyCardPush {
	if location == nil {
		location = time.UTC
	}
	return &DailyCardPush{
		broadcaster: broadcaster,
		location:    location,
		hour:        hour,
		minute:      minute,
		log:         log,
	}
}

func (j *DailyCardPush) Name() string {
	return dailyCardPushName
}

// NextRun каждый день в hour:minute по времени бота
func (j *DailyCardPush) NextRun(now time.Time) time.Time {
	return dailyAt(now, j.location, j.hour, j.minute)
}

func (j *DailyCardPush) Run(ctx context.Context) error {
	j.log.Info("daily card push started")
	return j.broadcaster.SendDailyCards(ctx)
}
