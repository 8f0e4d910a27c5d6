package jobs

import (
	"context"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/ports/service"
)

const expiryNotifierName = "subscription-expiry-notifier"

// ExpiryNotifier сообщает пользователям, что премиум закончился вчера. Каждый день в 10:00
type ExpiryNotifier struct {
	broadcaster service.IBroadcaster
	location    *time.Location
}

func NewExpiryNotifier(broadcaster service.IBroadcaster, location *time.Location) *ExpiryNotifier {
	if location == nil {
		location = time.UTC
	}
	return &ExpiryNotifier{
		broadcaster: broadcaster,
		location:    location,
	}
}

func (j *ExpiryNotifier) Name() string {
	return expiryNotifierName
}

func (j *ExpiryNotifier) NextRun(now time.Time) time.Time {
	return dailyAt(now, j.location, 10, 0)
}

func (j *ExpiryNotifier) Run(ctx context.Context) error {
	return j.broadcaster.NotifyExpiredSubscriptions(ctx)
}
