package alerter

import (
	"context"
	"sync"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/adapters/secondary/alerter"
	"github.com/Npcprogramming/Taro2.0/internal/ports/service"
)

// DefaultCooldown один и тот же алерт повторно не шлём раньше этого срока
const DefaultCooldown = 15 * time.Minute

type sender interface {
	SendAlert(ctx context.Context, message string) error
}

// Service помечает алерты именем сервиса и глушит одинаковые подряд
type Service struct {
	client   sender
	source   string
	cooldown time.Duration
	now      func() time.Time

	mu   sync.Mutex
	sent map[string]time.Time
}

// New nil-клиент - алерты выключены, вернётся nil
func New(client *alerter.Client, source string) service.IAlerterService {
	if client == nil {
		return nil
	}
	return newService(client, source, DefaultCooldown)
}

func newService(client sender, source string, cooldown time.Duration) *Service {
	return &Service{
		client:   client,
		source:   source,
		cooldown: cooldown,
		now:      time.Now,
		sent:     make(map[string]time.Time),
	}
}

func (s *Service) SendAlert(ctx context.Context, message string) error {
	if !s.reserve(message) {
		return nil
	}

	text := message
	if s.source != "" {
		text = "[" + s.source + "] " + message
	}

	if err := s.client.SendAlert(ctx, text); err != nil {
		// не доставили - следующая попытка не должна заглушиться
		s.release(message)
		return err
	}
	return nil
}

// reserve false, если такой же алерт уже ушёл в пределах cooldown
func (s *Service) reserve(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if at, ok := s.sent[message]; ok && now.Sub(at) < s.cooldown {
		return false
	}

	for key, at := range s.sent {
		if now.Sub(at) >= s.cooldown {
			delete(s.sent, key)
		}
	}
	s.sent[message] = now
	return true
}

func (s *Service) release(message string) {
	s.mu.Lock()
	delete(s.sent, message)
	s.mu.Unlock()
}
