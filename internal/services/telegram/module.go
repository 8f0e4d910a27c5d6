package telegram

import (
	"log/slog"

	"github.com/Npcprogramming/Taro2.0/internal/pkg/metrics"
	"github.com/Npcprogramming/Taro2.0/internal/ports/service"
)

// Service разбирает входящие обновления Telegram и передаёт их в бизнес-логику
type Service struct {
	BotService service.IBotService
	Metrics    *metrics.Metrics
	Log        *slog.Logger
}

func New(
	botService service.IBotService,
	m *metrics.Metrics,
	log *slog.Logger,
) *Service {
	return &Service{
		BotService: botService,
		Metrics:    m,
		Log:        log,
	}
}
