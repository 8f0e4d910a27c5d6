package service

import "context"

// IBroadcaster рассылки, которые запускают джобы
type IBroadcaster interface {
	SendDailyCards(ctx context.Context) error
	NotifyExpiredSubscriptions(ctx context.Context) error
}
