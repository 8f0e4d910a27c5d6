package service

import (
	"context"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

// IDrawPublisher публикует события о вытянутых картах
type IDrawPublisher interface {
	PublishDraw(ctx context.Context, event *domain.DrawEvent) error
}
