package service

import (
	"context"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

// IBotService бизнес-логика бота, получает уже разобранные события
type IBotService interface {
	HandleCommand(ctx context.Context, sender domain.Sender, cmd domain.Command) error
	HandleCallback(ctx context.Context, sender domain.Sender, event domain.CallbackEvent) error
	HandlePhoto(ctx context.Context, sender domain.Sender, photo domain.PhotoUpload) error
}
